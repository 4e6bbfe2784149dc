package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// rpioLed drives active-high LEDs on GPIO lines
type rpioLed struct {
	pins map[int]rpio.Pin
}

func (rpi *rpioLed) open(pins []int) error {
	if err := rpioAcquire(); err != nil {
		return err
	}
	rpi.pins = make(map[int]rpio.Pin)
	for _, p := range pins {
		if p <= 0 {
			rpi.pins = nil
			rpioRelease()
			return errors.Errorf("bad LED pin %d", p)
		}
		pin := rpio.Pin(p)
		// out, initially low
		pin.Output()
		pin.Low()
		rpi.pins[p] = pin
	}
	return nil
}

func (rpi *rpioLed) set(pinNum int, on bool) error {
	pin, ok := rpi.pins[pinNum]
	if !ok {
		return errors.Errorf("LED pin %d is not open", pinNum)
	}
	if on {
		pin.High()
	} else {
		pin.Low()
	}
	return nil
}

func (rpi *rpioLed) close() error {
	if rpi.pins == nil {
		return nil
	}
	for _, pin := range rpi.pins {
		pin.Low()
	}
	rpi.pins = nil
	return rpioRelease()
}
