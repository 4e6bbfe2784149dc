package main

import (
	"image/color"

	"github.com/stianeikeland/go-rpio"
)

type buttons interface {
	readButtons(rt runtimeConfig) (map[string]rpio.State, error)
	setupButtons(pins map[string]buttonMap, rt runtimeConfig) error
	initButtons(settings configSettings) error
	closeButtons()
	getButtons() *map[string]button
}

type led interface {
	open(pins []int) error
	set(pin int, on bool) error
	close() error
}

type display interface {
	OpenDisplay(settings configSettings) error
	DebugDump(on bool)
	SetBrightness(b uint8) error
	DisplayOn(on bool) error
	Print(s string) error
	ClearDisplay() error
	Close() error
}

type strip interface {
	OpenStrip(settings configSettings) error
	Write(frame []color.NRGBA) error
	Close() error
}

// mixer is the output volume of the audio system. Level is kept while
// muted, Muted reads the mute bit back from the mixer itself.
type mixer interface {
	MaxLevel() int
	Level() (int, error)
	SetLevel(level int) error
	ToggleMute() error
	Muted() (bool, error)
}

// mediaPlayer is one streaming session. The prepared callback fires once
// Prepare succeeds, completion fires when the stream ends on its own.
type mediaPlayer interface {
	SetDataSource(url string) error
	SetOnPrepared(f func())
	SetOnCompletion(f func())
	Prepare() error
	Start() error
	Stop() error
	Reset() error
	Release() error
}

type statusService interface {
	launch(handler *apiHandler, addr string)
	stop()
}
