package main

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var colorOff = color.NRGBA{A: 0xff}

// render maps a level to a bar of lit pixels. The top litCount positions
// are lit, each with its own hue around the color wheel.
func render(level int, maxLevel int, length int) []color.NRGBA {
	if length <= 0 {
		return []color.NRGBA{}
	}
	frame := make([]color.NRGBA, length)
	for i := range frame {
		frame[i] = colorOff
	}
	if maxLevel <= 0 {
		return frame
	}
	if level < 0 {
		level = 0
	} else if level > maxLevel {
		level = maxLevel
	}

	// integer math is floor(level/maxLevel*length) without float rounding
	litCount := level * length / maxLevel
	for i := length - litCount; i < length; i++ {
		hue := float64(i) * 360 / float64(length)
		r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
		frame[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return frame
}

func countLit(frame []color.NRGBA) int {
	n := 0
	for _, c := range frame {
		if c != colorOff {
			n++
		}
	}
	return n
}

// pushFrame writes a frame to the strip when there is one
func pushFrame(rt runtimeConfig, s optional[strip], frame []color.NRGBA) {
	st, ok := s.get()
	if !ok {
		return
	}
	if err := st.Write(frame); err != nil {
		err = transientIO("strip write", err)
		rt.logger.Printf("%v", err)
		rt.metrics.failure(err)
		return
	}
	rt.metrics.stripFrames.Inc()
}
