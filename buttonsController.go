package main

import (
	"time"

	"github.com/stianeikeland/go-rpio"
)

// check the press state, and return the press state
type pressState struct {
	pressed bool      // is it pressed?
	start   time.Time // when did this state start?
	changed bool      // did it change on the last check?
}

type button struct {
	button buttonMap
	rpin   rpio.Pin
	state  pressState
}

const (
	btnDown = 0
	btnUp   = 1
)

// edgeHandler receives the pressed/released edges the watcher detects
type edgeHandler interface {
	pressed(name string)
	released(name string)
}

func buttonPins(settings configSettings) map[string]buttonMap {
	pins := make(map[string]buttonMap)
	for _, name := range settings.GetAllButtonNames() {
		pins[name] = settings.GetButtonMap(name)
	}
	return pins
}

func checkButtons(rt runtimeConfig) (map[string]button, error) {
	now := rt.clock.Now()

	btns := rt.buttons.getButtons()
	results, err := rt.buttons.readButtons(rt)
	if err != nil {
		return nil, err
	}

	for k, v := range *btns {
		res, ok := results[k]
		if !ok {
			continue
		}

		btn := v
		btn.state.changed = false

		// interpret the high/low state into btnUp or btnDown
		// based on the pullup value
		var btnState int
		if v.button.pullup {
			// 0 is pressed, 1 is not
			if res == rpio.High {
				btnState = btnUp
			} else {
				btnState = btnDown
			}
		} else {
			// 1 is pressed, 0 is not
			if res == rpio.Low {
				btnState = btnUp
			} else {
				btnState = btnDown
			}
		}

		pressed := btnState == btnDown
		if pressed != btn.state.pressed {
			btn.state = pressState{pressed: pressed, start: now, changed: true}
			rt.logger.Printf("button %s changed state: pressed=%v after %v", k, pressed, now.Sub(v.state.start))
		}
		(*btns)[k] = btn
	}

	return *btns, nil
}

// runWatchButtons polls the buttons and forwards edges until quit closes.
// The buttons must already be set up, the board owns them.
func runWatchButtons(rt runtimeConfig, handler edgeHandler) {
	defer func() {
		rt.logger.Println("exiting runWatchButtons")
	}()

	comms := rt.comms
	sleep := rt.settings.GetDuration(sButtonSleep)

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runWatchButtons")
			return
		default:
		}

		newButtons, err := checkButtons(rt)
		if err != nil {
			// the keyboard sim reports ctrl-c this way, we're done
			rt.logger.Printf("button read failed, shutting down: %v", err)
			comms.shutdown()
			return
		}

		for k, v := range newButtons {
			if !v.state.changed {
				continue
			}
			if v.state.pressed {
				handler.pressed(k)
			} else {
				handler.released(k)
			}
		}

		rt.clock.Sleep(sleep)
	}
}
