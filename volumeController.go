package main

import (
	"sync"
)

type command int

const (
	cmdVolumeUp command = iota
	cmdVolumeDown
	cmdMuteToggle
)

func (c command) String() string {
	switch c {
	case cmdVolumeUp:
		return "VolumeUp"
	case cmdVolumeDown:
		return "VolumeDown"
	case cmdMuteToggle:
		return "MuteToggle"
	default:
		return "Unknown"
	}
}

const muteText = "MUTE"

type volumeState struct {
	level    int
	maxLevel int
	muted    bool
}

// audible is what actually comes out of the speaker
func (s volumeState) audible() int {
	if s.muted {
		return 0
	}
	return s.level
}

type commandHandler interface {
	handle(cmd command) volumeState
}

// volumeController applies volume commands to the mixer and refreshes the
// strip and the display after each one.
type volumeController struct {
	mu      sync.Mutex
	rt      runtimeConfig
	state   volumeState
	mixer   mixer
	display *displayController
	strip   optional[strip]
	length  int
	station string
}

func newVolumeController(rt runtimeConfig, mix mixer, dc *displayController, s optional[strip]) *volumeController {
	vc := &volumeController{
		rt:      rt.withLogger("Volume"),
		mixer:   mix,
		display: dc,
		strip:   s,
		length:  rt.settings.GetInt(sStripLength),
		station: rt.settings.GetString(sStationName),
	}

	vc.state.maxLevel = mix.MaxLevel()
	level, err := mix.Level()
	if err != nil {
		vc.ioFailed("read level", err)
	}
	vc.state.level = clamp(level, 0, vc.state.maxLevel)
	muted, err := mix.Muted()
	if err != nil {
		vc.ioFailed("read mute", err)
	}
	vc.state.muted = muted
	vc.rt.metrics.setVolume(vc.state)
	return vc
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (vc *volumeController) displayText() string {
	if vc.state.audible() > 0 {
		return vc.station
	}
	return muteText
}

func (vc *volumeController) ioFailed(op string, err error) {
	err = transientIO("mixer "+op, err)
	vc.rt.logger.Printf("%v", err)
	vc.rt.metrics.failure(err)
}

// refresh pushes the current state to the strip and the display
func (vc *volumeController) refresh() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.push(true)
}

// push needs vc.mu
func (vc *volumeController) push(transition bool) {
	pushFrame(vc.rt, vc.strip, render(vc.state.audible(), vc.state.maxLevel, vc.length))

	// other writers share the display, compare with what it shows now
	text := vc.displayText()
	if transition || text != vc.display.current() {
		vc.display.show(text)
	}
	vc.rt.metrics.setVolume(vc.state)
}

func (vc *volumeController) handle(cmd command) volumeState {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	transition := false
	switch cmd {
	case cmdVolumeUp:
		if vc.state.level < vc.state.maxLevel {
			if err := vc.mixer.SetLevel(vc.state.level + 1); err != nil {
				vc.ioFailed("set level", err)
				break
			}
			vc.state.level++
			// coming up from silence
			transition = vc.state.level == 1
		}
	case cmdVolumeDown:
		if vc.state.level > 0 {
			if err := vc.mixer.SetLevel(vc.state.level - 1); err != nil {
				vc.ioFailed("set level", err)
				break
			}
			vc.state.level--
			transition = vc.state.level == 0
		}
	case cmdMuteToggle:
		if err := vc.mixer.ToggleMute(); err != nil {
			vc.ioFailed("toggle mute", err)
		}
		// the mixer owns the mute bit, ask it what happened
		muted, err := vc.mixer.Muted()
		if err != nil {
			vc.ioFailed("read mute", err)
		} else {
			vc.state.muted = muted
		}
		transition = true
	default:
		vc.rt.logger.Printf("unknown command %d", cmd)
		return vc.state
	}

	vc.rt.logger.Printf("%v: level %d/%d muted %v", cmd, vc.state.level, vc.state.maxLevel, vc.state.muted)
	vc.push(transition)
	return vc.state
}

func (vc *volumeController) current() volumeState {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.state
}
