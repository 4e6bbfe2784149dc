package main

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"
)

type recordingHandler struct {
	mu   sync.Mutex
	cmds []command
}

func (r *recordingHandler) handle(cmd command) volumeState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return volumeState{}
}

func (r *recordingHandler) got() []command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command{}, r.cmds...)
}

func testDispatcher(t *testing.T) (*inputDispatcher, *recordingHandler, *logLed) {
	rt, _, _ := testRuntime()
	ll := rt.led.(*logLed)
	assert.NilError(t, ll.open(ledPins(rt.settings)))
	h := &recordingHandler{}
	return newInputDispatcher(rt, h, ll), h, ll
}

func TestDispatchCommands(t *testing.T) {
	d, h, _ := testDispatcher(t)

	d.pressed(sBtnVolumeUp)
	d.released(sBtnVolumeUp)
	d.pressed(sBtnVolumeDown)
	d.released(sBtnVolumeDown)
	d.pressed(sBtnMute)
	d.released(sBtnMute)

	assert.DeepEqual(t, h.got(), []command{cmdVolumeUp, cmdVolumeDown, cmdMuteToggle})
	assert.Equal(t, testutil.ToFloat64(d.rt.metrics.buttonPresses.WithLabelValues(sBtnMute)), 1.0)
}

func TestDispatchLEDFollowsButton(t *testing.T) {
	d, h, ll := testDispatcher(t)
	up := d.rt.settings.GetInt(sLedVolumeUp)
	down := d.rt.settings.GetInt(sLedVolumeDown)
	mute := d.rt.settings.GetInt(sLedMute)

	d.pressed(sBtnVolumeUp)
	assert.Equal(t, ll.get(up), true)
	assert.Equal(t, ll.get(down), false)
	assert.Equal(t, ll.get(mute), false)

	// a second button leaves the first one's LED alone
	d.pressed(sBtnMute)
	assert.Equal(t, ll.get(up), true)
	assert.Equal(t, ll.get(mute), true)

	d.released(sBtnVolumeUp)
	assert.Equal(t, ll.get(up), false)
	assert.Equal(t, ll.get(mute), true)

	// release never issues a command
	assert.Equal(t, len(h.got()), 2)
}

func TestDispatchUnknownButton(t *testing.T) {
	d, h, ll := testDispatcher(t)

	d.pressed("btnPower")
	d.released("btnPower")
	assert.Equal(t, len(h.got()), 0)
	assert.Equal(t, len(ll.getAudit()), 0)
	assert.Equal(t, d.click("btnPower"), false)
}

func TestDispatchLEDFailure(t *testing.T) {
	d, h, ll := testDispatcher(t)
	ll.setFail = true

	d.pressed(sBtnVolumeDown)
	assert.DeepEqual(t, h.got(), []command{cmdVolumeDown})
	assert.Equal(t, testutil.ToFloat64(d.rt.metrics.failures.WithLabelValues("transient_io")), 1.0)
}

func TestDispatchClick(t *testing.T) {
	d, h, ll := testDispatcher(t)
	pin := d.rt.settings.GetInt(sLedMute)

	assert.Equal(t, d.click(sBtnMute), true)
	assert.DeepEqual(t, h.got(), []command{cmdMuteToggle})
	assert.Equal(t, ll.get(pin), false)
	assert.Equal(t, len(ll.getAudit()), 2)
}
