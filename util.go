// utility functions
package main

import (
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
)

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
}

// shutdown closes quit, any goroutine may call it
func (c commChannels) shutdown() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

type runtimeConfig struct {
	comms         commChannels
	clock         clockwork.Clock
	logger        flogger
	settings      configSettings
	buttons       buttons
	led           led
	display       display
	strip         strip
	mixer         mixer
	player        mediaPlayer
	statusService statusService
	metrics       *metrics
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
	}
}

func initRuntime(settings configSettings) runtimeConfig {
	sim := settings.GetBool(sSimulated)

	var btns buttons
	switch settings.GetString(sButtonInput) {
	case inputKeyboard:
		btns = &keyButtons{}
	case inputNone:
		btns = &noButtons{}
	default:
		btns = &rpioButtons{}
	}

	var leds led = &rpioLed{}
	var ledStrip strip = &apaStrip{}
	var mix mixer
	if sim {
		leds = &logLed{}
		ledStrip = &logStrip{}
		mix = newSoftMixer(settings.GetInt(sMaxVolume), settings.GetInt(sInitialVolume))
	} else {
		mix = newAlsaMixer(settings.GetString(sMixerControl), settings.GetInt(sMaxVolume))
	}

	var player mediaPlayer = &noPlayer{}
	if settings.GetString(sPlayerCommand) != "" {
		player = newExecPlayer(
			settings.GetString(sPlayerCommand),
			strings.Fields(settings.GetString(sPlayerArgs)),
			settings.GetDuration(sPrepareTimeout))
	}

	return runtimeConfig{
		comms:         initCommChannels(),
		clock:         clockwork.NewRealClock(),
		logger:        &ThreadLogger{name: "Main"},
		settings:      settings,
		buttons:       btns,
		led:           leds,
		display:       &alphaDisplay{},
		strip:         ledStrip,
		mixer:         mix,
		player:        player,
		statusService: &httpStatusService{},
		metrics:       newMetrics(),
	}
}

// withLogger gives a goroutine its own tagged logger
func (rt runtimeConfig) withLogger(name string) runtimeConfig {
	rt.logger = &ThreadLogger{name: name}
	return rt
}
