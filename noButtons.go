package main

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// noButtons has no hardware behind it, the states only change when
// set() is called. Used for headless setups and tests.
type noButtons struct {
	mu       sync.Mutex
	buttons  map[string]button
	states   map[string]rpio.State
	initFail bool
	readFail bool
	closed   int
}

func (nb *noButtons) getButtons() *map[string]button {
	return &nb.buttons
}

func (nb *noButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if nb.readFail {
		return nil, errors.New("Bad button read")
	}
	ret := make(map[string]rpio.State)
	for k, v := range nb.states {
		ret[k] = v
	}
	return ret, nil
}

func (nb *noButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.buttons = make(map[string]button)
	nb.states = make(map[string]rpio.State)

	now := rt.clock.Now()
	for k, v := range pins {
		nb.buttons[k] = button{button: v, state: pressState{start: now}}
		nb.states[k] = nb.upState(v)
	}
	return nil
}

func (nb *noButtons) upState(bm buttonMap) rpio.State {
	if bm.pullup {
		return rpio.High
	}
	return rpio.Low
}

func (nb *noButtons) initButtons(settings configSettings) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if nb.initFail {
		return errors.New("Bad button init")
	}
	return nil
}

func (nb *noButtons) closeButtons() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.closed++
}

func (nb *noButtons) set(btns map[string]rpio.State) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	for k, v := range btns {
		nb.states[k] = v
	}
}

// press puts a button in the electrical state that reads as pressed
func (nb *noButtons) press(name string) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if nb.upState(nb.buttons[name].button) == rpio.High {
		nb.states[name] = rpio.Low
	} else {
		nb.states[name] = rpio.High
	}
}

func (nb *noButtons) clear() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	for k, v := range nb.buttons {
		nb.states[k] = nb.upState(v.button)
	}
}

func (nb *noButtons) closeCount() int {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.closed
}
