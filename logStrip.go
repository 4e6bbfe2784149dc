package main

import (
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type logStrip struct {
	mu        sync.Mutex
	length    int
	open      bool
	openFail  bool
	writeFail bool
	debugDump bool
	frames    [][]color.NRGBA
}

func (ls *logStrip) OpenStrip(settings configSettings) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.openFail {
		return errors.New("Bad strip open")
	}
	ls.length = settings.GetInt(sStripLength)
	ls.debugDump = settings.GetBool(sDebug)
	ls.frames = nil
	ls.open = true
	return nil
}

func (ls *logStrip) Write(frame []color.NRGBA) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.writeFail {
		return errors.New("Bad strip write")
	}
	ls.frames = append(ls.frames, append([]color.NRGBA{}, frame...))
	if ls.debugDump {
		// one character per pixel, '*' is lit
		var sb strings.Builder
		for _, c := range frame {
			if c == colorOff {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('*')
			}
		}
		log.Printf("strip: [%s]", sb.String())
	}
	return nil
}

func (ls *logStrip) Close() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.open = false
	return nil
}

func (ls *logStrip) lastFrame() []color.NRGBA {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if len(ls.frames) == 0 {
		return nil
	}
	return ls.frames[len(ls.frames)-1]
}

func (ls *logStrip) frameCount() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.frames)
}
