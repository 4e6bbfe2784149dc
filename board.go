package main

import (
	"sync"
)

// board is the peripheral handle: everything on the accessory board,
// opened in one go and closed in reverse. Buttons and LEDs are required,
// the display and strip may be absent for the whole session.
type board struct {
	mu      sync.Mutex
	rt      runtimeConfig
	buttons buttons
	leds    led
	display optional[display]
	strip   optional[strip]
	closed  bool
}

// openBoard opens buttons, LEDs, display then strip. A button or LED
// failure closes what was opened and returns a fatal init error.
func openBoard(rt runtimeConfig) (*board, error) {
	b := &board{rt: rt.withLogger("Board")}
	settings := rt.settings

	if err := rt.buttons.initButtons(settings); err != nil {
		return nil, fatalInit("open buttons", err)
	}
	if err := rt.buttons.setupButtons(buttonPins(settings), rt); err != nil {
		rt.buttons.closeButtons()
		return nil, fatalInit("setup buttons", err)
	}
	b.buttons = rt.buttons

	if err := rt.led.open(ledPins(settings)); err != nil {
		b.closeButtons()
		return nil, fatalInit("open leds", err)
	}
	b.leds = rt.led

	b.display = b.openDisplay(rt.display)
	b.strip = b.openStrip(rt.strip)

	b.rt.logger.Printf("board open, display present %v, strip present %v",
		b.display.isPresent(), b.strip.isPresent())
	return b, nil
}

func (b *board) degrade(op string, err error) {
	err = degraded(op, err)
	b.rt.logger.Printf("%v", err)
	b.rt.metrics.failure(err)
}

func (b *board) openDisplay(d display) optional[display] {
	settings := b.rt.settings
	if err := d.OpenDisplay(settings); err != nil {
		b.degrade("open display", err)
		return absent[display]()
	}
	d.DebugDump(settings.GetBool(sDebug))

	err := d.DisplayOn(true)
	if err == nil {
		err = d.SetBrightness(settings.GetByte(sDisplayBrightness))
	}
	if err != nil {
		d.Close()
		b.degrade("start display", err)
		return absent[display]()
	}
	return present(d)
}

func (b *board) openStrip(s strip) optional[strip] {
	if err := s.OpenStrip(b.rt.settings); err != nil {
		b.degrade("open strip", err)
		return absent[strip]()
	}
	return present(s)
}

// close runs strip, display, LEDs then buttons. Errors are logged, the
// rest still gets closed. Safe to call twice.
func (b *board) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	if s, ok := b.strip.get(); ok {
		frame := render(0, 1, b.rt.settings.GetInt(sStripLength))
		b.logErr("blank strip", s.Write(frame))
		b.logErr("close strip", s.Close())
	}

	if d, ok := b.display.get(); ok {
		b.logErr("clear display", d.ClearDisplay())
		b.logErr("display off", d.DisplayOn(false))
		b.logErr("close display", d.Close())
	}

	if b.leds != nil {
		for _, pin := range ledPins(b.rt.settings) {
			b.logErr("led off", b.leds.set(pin, false))
		}
		b.logErr("close leds", b.leds.close())
	}

	b.closeButtons()
	b.rt.logger.Println("board closed")
}

func (b *board) closeButtons() {
	if b.buttons != nil {
		b.buttons.closeButtons()
	}
}

func (b *board) logErr(op string, err error) {
	if err != nil {
		b.rt.logger.Printf("%s: %v", op, err)
	}
}
