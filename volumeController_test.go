package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"
)

type volumeFixture struct {
	rt    runtimeConfig
	vc    *volumeController
	mixer *softMixer
	disp  *logDisplay
	strip *logStrip
}

func testVolumeController(t *testing.T, level int) volumeFixture {
	rt, _, _ := testRuntime()
	mix := newSoftMixer(10, level)
	ld := rt.display.(*logDisplay)
	assert.NilError(t, ld.OpenDisplay(rt.settings))
	ls := rt.strip.(*logStrip)
	assert.NilError(t, ls.OpenStrip(rt.settings))

	dc := newDisplayController(rt, present[display](ld))
	vc := newVolumeController(rt, mix, dc, present[strip](ls))
	// the radio always starts with one, so tests do too
	vc.refresh()
	return volumeFixture{rt: rt, vc: vc, mixer: mix, disp: ld, strip: ls}
}

func TestVolumeDownToMute(t *testing.T) {
	f := testVolumeController(t, 3)

	levels := []int{2, 1, 0, 0, 0}
	for i, want := range levels {
		state := f.vc.handle(cmdVolumeDown)
		assert.Equal(t, state.level, want, "step %d", i)
		assert.Equal(t, countLit(f.strip.lastFrame()), want*7/10, "step %d", i)
	}
	assert.Equal(t, f.strip.frameCount(), 6)

	// only the drop to silence changes the text
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK", muteText})
	lvl, _ := f.mixer.Level()
	assert.Equal(t, lvl, 0)
	// the no-ops never reach the mixer
	assert.Equal(t, f.mixer.setCalls, 3)
}

func TestVolumeUpClamps(t *testing.T) {
	f := testVolumeController(t, 10)

	state := f.vc.handle(cmdVolumeUp)
	assert.Equal(t, state.level, 10)
	assert.Equal(t, f.mixer.setCalls, 0)
	assert.Equal(t, countLit(f.strip.lastFrame()), 7)
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK"})
}

func TestVolumeUpFromSilence(t *testing.T) {
	f := testVolumeController(t, 0)

	state := f.vc.handle(cmdVolumeUp)
	assert.Equal(t, state.level, 1)
	assert.DeepEqual(t, f.disp.getAudit(), []string{muteText, "ROCK"})
	assert.Equal(t, countLit(f.strip.lastFrame()), 0)

	f.vc.handle(cmdVolumeUp)
	assert.Equal(t, countLit(f.strip.lastFrame()), 1)
	// same text, no rewrite
	assert.DeepEqual(t, f.disp.getAudit(), []string{muteText, "ROCK"})
	assert.Equal(t, testutil.ToFloat64(f.rt.metrics.volume), 2.0)
}

func TestMuteToggleReadBack(t *testing.T) {
	f := testVolumeController(t, 5)

	state := f.vc.handle(cmdMuteToggle)
	assert.Equal(t, state.muted, true)
	assert.Equal(t, state.level, 5)
	assert.Equal(t, countLit(f.strip.lastFrame()), 0)
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK", muteText})
	assert.Equal(t, testutil.ToFloat64(f.rt.metrics.muted), 1.0)

	// volume changes while muted are remembered, nothing is heard
	state = f.vc.handle(cmdVolumeUp)
	assert.Equal(t, state.level, 6)
	assert.Equal(t, countLit(f.strip.lastFrame()), 0)

	state = f.vc.handle(cmdMuteToggle)
	assert.Equal(t, state.muted, false)
	assert.Equal(t, countLit(f.strip.lastFrame()), 6*7/10)
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK", muteText, "ROCK"})
}

func TestMuteToggleAtZero(t *testing.T) {
	f := testVolumeController(t, 0)

	// unmuting at zero still shows MUTE
	state := f.vc.handle(cmdMuteToggle)
	assert.Equal(t, state.muted, true)
	state = f.vc.handle(cmdMuteToggle)
	assert.Equal(t, state.muted, false)
	assert.DeepEqual(t, f.disp.getAudit(), []string{muteText, muteText, muteText})
}

func TestMuteToggleFailure(t *testing.T) {
	f := testVolumeController(t, 5)
	f.mixer.muteFail = true

	state := f.vc.handle(cmdMuteToggle)
	assert.Equal(t, state.muted, false)
	assert.Equal(t, testutil.ToFloat64(f.rt.metrics.failures.WithLabelValues("transient_io")), 1.0)
	// the display is refreshed with what the mixer says
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK", "ROCK"})
}

func TestSetLevelFailure(t *testing.T) {
	f := testVolumeController(t, 5)
	f.mixer.setFail = true

	state := f.vc.handle(cmdVolumeDown)
	assert.Equal(t, state.level, 5)
	assert.Equal(t, f.vc.current().level, 5)
	assert.Equal(t, testutil.ToFloat64(f.rt.metrics.failures.WithLabelValues("transient_io")), 1.0)
	// the strip still shows the unchanged level
	assert.Equal(t, countLit(f.strip.lastFrame()), 5*7/10)
}

func TestVolumeReadFailure(t *testing.T) {
	rt, _, _ := testRuntime()
	mix := newSoftMixer(10, 4)
	mix.readFail = true

	vc := newVolumeController(rt, mix, newDisplayController(rt, absent[display]()), absent[strip]())
	assert.Equal(t, vc.current().level, 0)
	assert.Equal(t, vc.current().maxLevel, 10)
	assert.Equal(t, testutil.ToFloat64(rt.metrics.failures.WithLabelValues("transient_io")), 2.0)
}

func TestVolumeNoPeripherals(t *testing.T) {
	rt, _, _ := testRuntime()
	mix := newSoftMixer(10, 1)
	vc := newVolumeController(rt, mix, newDisplayController(rt, absent[display]()), absent[strip]())

	state := vc.handle(cmdVolumeDown)
	assert.Equal(t, state.level, 0)
	assert.Equal(t, vc.display.current(), muteText)
	assert.Equal(t, testutil.ToFloat64(rt.metrics.stripFrames), 0.0)
}

func TestRefresh(t *testing.T) {
	f := testVolumeController(t, 7)

	assert.Equal(t, f.strip.frameCount(), 1)
	assert.Equal(t, countLit(f.strip.lastFrame()), 7*7/10)
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK"})
}

func TestMuteTextComesBackAfterOtherWriter(t *testing.T) {
	f := testVolumeController(t, 5)
	f.vc.handle(cmdMuteToggle)
	assert.Equal(t, f.disp.getDisplay(), muteText)

	// playback puts the station up while still muted
	f.vc.display.show("ROCK")

	// a plain volume step is no transition, MUTE still has to return
	f.vc.handle(cmdVolumeUp)
	assert.Equal(t, f.disp.getDisplay(), muteText)
	assert.DeepEqual(t, f.disp.getAudit(), []string{"ROCK", muteText, "ROCK", muteText})

	// and once it is back, further steps leave it alone
	f.vc.handle(cmdVolumeUp)
	assert.Equal(t, len(f.disp.getAudit()), 4)
}
