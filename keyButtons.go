package main

import (
	"time"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// keyButtons simulates the buttons on a terminal: a key press is a
// button press, the next poll without that key is the release
type keyButtons struct {
	buttons map[string]button
	open    bool
}

func (sb *keyButtons) getButtons() *map[string]button {
	return &sb.buttons
}

func (sb *keyButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	sb.buttons = make(map[string]button)

	now := rt.clock.Now()
	for k, v := range pins {
		if v.key == "" {
			return errors.New("no simulator key for " + k)
		}
		var btn button
		btn.button = v
		btn.state = pressState{pressed: false, start: now}
		sb.buttons[k] = btn
	}
	return nil
}

func (sb *keyButtons) checkKeyboard(rt runtimeConfig) (map[string]rpio.State, error) {
	ret := make(map[string]rpio.State)

	// poll with quick timeout
	// no key means "no change"
	go func() {
		rt.clock.Sleep(100 * time.Millisecond)
		termbox.Interrupt()
	}()

	var ev termbox.Event
	waitForInterrupt := true
	for waitForInterrupt {
		evTemp := termbox.PollEvent()
		switch evTemp.Type {
		case termbox.EventKey:
			// add an exit key
			if evTemp.Key == termbox.KeyCtrlC {
				return ret, errors.New("Exit termbox loop")
			}
			ev = evTemp
		// wait for the interrupt to fire
		default:
			waitForInterrupt = false
		}
	}

	// the key held "down" for this poll only
	for k, v := range sb.buttons {
		pressed := ev.Ch != 0 && v.button.key[0] == byte(ev.Ch)
		down, up := rpio.Low, rpio.High
		if !v.button.pullup {
			down, up = rpio.High, rpio.Low
		}
		if pressed {
			ret[k] = down
		} else {
			ret[k] = up
		}
	}

	return ret, nil
}

func (sb *keyButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	// simulated mode we check it all at once or we wait a lot
	return sb.checkKeyboard(rt)
}

func (sb *keyButtons) initButtons(settings configSettings) error {
	err := termbox.Init()
	if err != nil {
		return err
	}
	sb.open = true

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	// close it later
	return nil
}

func (sb *keyButtons) closeButtons() {
	if !sb.open {
		return
	}
	sb.open = false
	termbox.Close()
}
