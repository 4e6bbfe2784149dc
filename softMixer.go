package main

import (
	"sync"

	"github.com/pkg/errors"
)

// softMixer keeps the volume in memory, for simulated hardware and tests
type softMixer struct {
	mu        sync.Mutex
	max       int
	level     int
	muted     bool
	setFail   bool
	muteFail  bool
	readFail  bool
	setCalls  int
	muteCalls int
}

func newSoftMixer(max int, level int) *softMixer {
	if max <= 0 {
		max = 1
	}
	return &softMixer{max: max, level: clamp(level, 0, max)}
}

func (sm *softMixer) MaxLevel() int {
	return sm.max
}

func (sm *softMixer) Level() (int, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.readFail {
		return 0, errors.New("Bad mixer read")
	}
	return sm.level, nil
}

func (sm *softMixer) SetLevel(level int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.setCalls++
	if sm.setFail {
		return errors.New("Bad mixer write")
	}
	sm.level = clamp(level, 0, sm.max)
	return nil
}

func (sm *softMixer) ToggleMute() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muteCalls++
	if sm.muteFail {
		return errors.New("Bad mixer toggle")
	}
	sm.muted = !sm.muted
	return nil
}

func (sm *softMixer) Muted() (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.readFail {
		return false, errors.New("Bad mixer read")
	}
	return sm.muted, nil
}
