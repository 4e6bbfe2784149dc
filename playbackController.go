package main

import (
	"sync"
)

type streamState int

const (
	streamIdle streamState = iota
	streamPreparing
	streamPlaying
	streamStopped
	streamFailed
)

var allStreamStates = []streamState{streamIdle, streamPreparing, streamPlaying, streamStopped, streamFailed}

func (s streamState) String() string {
	switch s {
	case streamIdle:
		return "Idle"
	case streamPreparing:
		return "Preparing"
	case streamPlaying:
		return "Playing"
	case streamStopped:
		return "Stopped"
	case streamFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

const waitText = "WAIT"

// playbackController owns the stream session. Failures are logged and
// left alone, nothing here retries.
type playbackController struct {
	mu      sync.Mutex
	rt      runtimeConfig
	player  mediaPlayer
	display *displayController
	station string
	url     string
	state   streamState
	reason  error
}

func newPlaybackController(rt runtimeConfig, player mediaPlayer, dc *displayController) *playbackController {
	pc := &playbackController{
		rt:      rt.withLogger("Playback"),
		player:  player,
		display: dc,
		station: rt.settings.GetString(sStationName),
		state:   streamIdle,
	}
	pc.rt.metrics.setStreamState(streamIdle)
	return pc
}

func (pc *playbackController) setState(state streamState, reason error) {
	pc.mu.Lock()
	pc.state = state
	pc.reason = reason
	pc.mu.Unlock()
	pc.rt.metrics.setStreamState(state)
}

func (pc *playbackController) status() (streamState, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.state, pc.reason
}

// start shows WAIT and prepares the stream in the background. The channel
// gets the outcome of the preparation, nil or a stream failure.
func (pc *playbackController) start(url string) <-chan error {
	pc.mu.Lock()
	pc.url = url
	pc.state, pc.reason = streamPreparing, nil
	pc.mu.Unlock()

	return pc.launch(url)
}

// restart runs start again with the last url, unless the session is busy.
// The check and the move to Preparing happen under one lock.
func (pc *playbackController) restart() (<-chan error, bool) {
	pc.mu.Lock()
	state, url := pc.state, pc.url
	if state == streamPreparing || state == streamPlaying || url == "" {
		pc.mu.Unlock()
		return nil, false
	}
	pc.state, pc.reason = streamPreparing, nil
	pc.mu.Unlock()

	pc.rt.logger.Printf("manual restart from %v", state)
	return pc.launch(url), true
}

// launch needs the state already set to Preparing
func (pc *playbackController) launch(url string) <-chan error {
	result := make(chan error, 1)
	pc.rt.metrics.setStreamState(streamPreparing)

	pc.display.show(waitText)
	go func() {
		result <- pc.prepare(url)
	}()
	return result
}

func (pc *playbackController) prepare(url string) error {
	err := pc.player.SetDataSource(url)
	if err == nil {
		pc.player.SetOnPrepared(pc.onPrepared)
		pc.player.SetOnCompletion(pc.onCompletion)
		err = pc.player.Prepare()
	}
	if err != nil {
		err = streamFailure("prepare "+url, err)
		pc.fail(err)
	}

	// the station name goes back up either way, failures only show in the log
	pc.display.show(pc.station)
	if err == nil {
		// a failed start in onPrepared is still a failure
		if state, reason := pc.status(); state == streamFailed {
			return reason
		}
	}
	return err
}

func (pc *playbackController) fail(err error) {
	pc.rt.logger.Printf("%v", err)
	pc.rt.metrics.failure(err)
	pc.setState(streamFailed, err)
}

func (pc *playbackController) onPrepared() {
	if err := pc.player.Start(); err != nil {
		pc.fail(streamFailure("start", err))
		return
	}
	pc.rt.logger.Println("playing")
	pc.setState(streamPlaying, nil)
}

func (pc *playbackController) onCompletion() {
	pc.rt.logger.Println("stream completed")
	if err := pc.player.Stop(); err != nil {
		pc.rt.logger.Printf("stop: %v", err)
	}
	if err := pc.player.Reset(); err != nil {
		pc.rt.logger.Printf("reset: %v", err)
	}
	pc.setState(streamStopped, nil)
}

func (pc *playbackController) close() {
	if err := pc.player.Release(); err != nil {
		pc.rt.logger.Printf("release: %v", err)
	}
	pc.setState(streamStopped, nil)
}
