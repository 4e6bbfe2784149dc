package main

import (
	"sync"

	"github.com/pkg/errors"
	// gpio lib
	"github.com/stianeikeland/go-rpio"
)

// rpio maps /dev/gpiomem once for the whole process, buttons and LEDs share it
var rpioMu sync.Mutex
var rpioUsers int

func rpioAcquire() error {
	rpioMu.Lock()
	defer rpioMu.Unlock()
	if rpioUsers == 0 {
		if err := rpio.Open(); err != nil {
			return errors.Wrap(err, "rpio open")
		}
	}
	rpioUsers++
	return nil
}

func rpioRelease() error {
	rpioMu.Lock()
	defer rpioMu.Unlock()
	if rpioUsers == 0 {
		return nil
	}
	rpioUsers--
	if rpioUsers == 0 {
		return rpio.Close()
	}
	return nil
}

type rpioButtons struct {
	buttons map[string]button
	open    bool
}

func (rb *rpioButtons) getButtons() *map[string]button {
	return &rb.buttons
}

func (rb *rpioButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	rb.buttons = make(map[string]button)
	now := rt.clock.Now()

	for k, v := range pins {
		if v.pinNum <= 0 {
			return errors.Errorf("button %s has no pin", k)
		}
		var btn button
		btn.button = v
		btn.rpin = rpio.Pin(v.pinNum)

		btn.rpin.Input() // Input mode
		if v.pullup {
			btn.rpin.PullUp() // GND => button press
		} else {
			btn.rpin.PullDown() // +V -> button press
		}

		btn.state = pressState{pressed: false, start: now}
		rb.buttons[k] = btn
	}

	return nil
}

func (rb *rpioButtons) initButtons(settings configSettings) error {
	if err := rpioAcquire(); err != nil {
		return err
	}
	rb.open = true
	return nil
}

func (rb *rpioButtons) closeButtons() {
	if !rb.open {
		return
	}
	rb.open = false
	// leave the lines as inputs without pulls
	for _, v := range rb.buttons {
		v.rpin.PullOff()
	}
	rpioRelease()
}

func (rb *rpioButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	ret := make(map[string]rpio.State)
	for k, v := range rb.buttons {
		ret[k] = v.rpin.Read() // Read state from pin (High / Low)
	}

	return ret, nil
}
