package main

import (
	"sync"
)

// noPlayer goes through the session motions without making a sound
type noPlayer struct {
	mu           sync.Mutex
	url          string
	playing      bool
	onPrepared   func()
	onCompletion func()
	sourceErr    error
	prepareErr   error
	startErr     error
	prepareCnt   int
	startCnt     int
	stopCnt      int
	resetCnt     int
	releaseCnt   int
}

func (np *noPlayer) SetDataSource(url string) error {
	np.mu.Lock()
	defer np.mu.Unlock()
	if np.sourceErr != nil {
		return np.sourceErr
	}
	np.url = url
	return nil
}

func (np *noPlayer) SetOnPrepared(f func()) {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.onPrepared = f
}

func (np *noPlayer) SetOnCompletion(f func()) {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.onCompletion = f
}

func (np *noPlayer) Prepare() error {
	np.mu.Lock()
	np.prepareCnt++
	err := np.prepareErr
	cb := np.onPrepared
	np.mu.Unlock()

	if err != nil {
		return err
	}
	if cb != nil {
		cb()
	}
	return nil
}

func (np *noPlayer) Start() error {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.startCnt++
	if np.startErr != nil {
		return np.startErr
	}
	np.playing = true
	return nil
}

func (np *noPlayer) Stop() error {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.stopCnt++
	np.playing = false
	return nil
}

func (np *noPlayer) Reset() error {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.resetCnt++
	np.playing = false
	np.url = ""
	return nil
}

func (np *noPlayer) Release() error {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.releaseCnt++
	np.playing = false
	return nil
}

// complete ends the stream as if the server hung up
func (np *noPlayer) complete() {
	np.mu.Lock()
	np.playing = false
	cb := np.onCompletion
	np.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (np *noPlayer) isPlaying() bool {
	np.mu.Lock()
	defer np.mu.Unlock()
	return np.playing
}

func (np *noPlayer) counts() (prepare, start, stop, reset int) {
	np.mu.Lock()
	defer np.mu.Unlock()
	return np.prepareCnt, np.startCnt, np.stopCnt, np.resetCnt
}
