package main

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

type logLed struct {
	mu         sync.Mutex
	leds       map[int]bool
	audit      []string
	disableLog bool
	openFail   bool
	setFail    bool
	logger     flogger
}

func (ll *logLed) open(pins []int) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if ll.openFail {
		return errors.New("Bad LED open")
	}
	ll.leds = make(map[int]bool)
	ll.audit = make([]string, 0)
	for _, p := range pins {
		ll.leds[p] = false
	}
	ll.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (ll *logLed) set(pinNum int, on bool) error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if ll.setFail {
		return errors.New("Bad LED write")
	}
	if _, ok := ll.leds[pinNum]; !ok {
		return errors.Errorf("LED pin %d is not open", pinNum)
	}
	ll.leds[pinNum] = on
	if !ll.disableLog {
		ll.logger.Printf("Set LED %v to %v", pinNum, on)
	}
	ll.audit = append(ll.audit, fmt.Sprintf("Set LED %v to %v", pinNum, on))
	return nil
}

func (ll *logLed) close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if ll.leds == nil {
		return nil
	}
	ll.audit = append(ll.audit, "Close")
	ll.leds = nil
	return nil
}

func (ll *logLed) get(pinNum int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[pinNum]
}

func (ll *logLed) getAudit() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return append([]string{}, ll.audit...)
}
