package main

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"
)

// closeOrder wraps the doubles so the close sequence lands in one list
type closeOrder struct {
	calls []string
}

type orderedButtons struct {
	*noButtons
	order *closeOrder
}

func (o orderedButtons) closeButtons() {
	o.order.calls = append(o.order.calls, "buttons")
	o.noButtons.closeButtons()
}

type orderedLed struct {
	*logLed
	order *closeOrder
}

func (o orderedLed) close() error {
	o.order.calls = append(o.order.calls, "leds")
	return o.logLed.close()
}

type orderedDisplay struct {
	*logDisplay
	order *closeOrder
}

func (o orderedDisplay) Close() error {
	o.order.calls = append(o.order.calls, "display")
	return o.logDisplay.Close()
}

type orderedStrip struct {
	*logStrip
	order *closeOrder
}

func (o orderedStrip) Write(frame []color.NRGBA) error {
	o.order.calls = append(o.order.calls, "strip off")
	return o.logStrip.Write(frame)
}

func (o orderedStrip) Close() error {
	o.order.calls = append(o.order.calls, "strip")
	return o.logStrip.Close()
}

func TestOpenBoard(t *testing.T) {
	rt, _, _ := testRuntime()
	b := testOpenBoard(t, rt)

	assert.Assert(t, b.display.isPresent())
	assert.Assert(t, b.strip.isPresent())

	ld := rt.display.(*logDisplay)
	assert.Equal(t, ld.isOn(), true)
	assert.Equal(t, ld.brightness, rt.settings.GetByte(sDisplayBrightness))

	ll := rt.led.(*logLed)
	for _, pin := range ledPins(rt.settings) {
		assert.Equal(t, ll.get(pin), false)
	}
	assert.Equal(t, len(*rt.buttons.getButtons()), 3)
}

func TestOpenBoardButtonsFatal(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.buttons.(*noButtons).initFail = true

	b, err := openBoard(rt)
	assert.Assert(t, b == nil)
	assert.Assert(t, errors.Is(err, errFatalInit))
	assert.Equal(t, kindLabel(err), "fatal_init")

	// nothing after the buttons was touched
	assert.Assert(t, rt.led.(*logLed).leds == nil)
	assert.Equal(t, rt.display.(*logDisplay).open, false)
	assert.Equal(t, rt.strip.(*logStrip).open, false)
}

func TestOpenBoardLedsFatal(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.led.(*logLed).openFail = true

	_, err := openBoard(rt)
	assert.Assert(t, errors.Is(err, errFatalInit))

	// the buttons were opened, so they get closed again
	assert.Equal(t, rt.buttons.(*noButtons).closeCount(), 1)
	assert.Equal(t, rt.display.(*logDisplay).open, false)
	assert.Equal(t, rt.strip.(*logStrip).open, false)
}

func TestOpenBoardDisplayDegraded(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.display.(*logDisplay).openFail = true

	b, err := openBoard(rt)
	assert.NilError(t, err)
	assert.Equal(t, b.display.isPresent(), false)
	assert.Equal(t, b.strip.isPresent(), true)
	assert.Equal(t, testutil.ToFloat64(rt.metrics.failures.WithLabelValues("degraded")), 1.0)

	// closing skips what never opened
	b.close()
}

func TestOpenBoardStripDegraded(t *testing.T) {
	rt, _, _ := testRuntime()
	rt.strip.(*logStrip).openFail = true

	b, err := openBoard(rt)
	assert.NilError(t, err)
	assert.Equal(t, b.display.isPresent(), true)
	assert.Equal(t, b.strip.isPresent(), false)
	assert.Equal(t, testutil.ToFloat64(rt.metrics.failures.WithLabelValues("degraded")), 1.0)
	b.close()
}

func TestBoardCloseOrder(t *testing.T) {
	rt, _, _ := testRuntime()
	order := &closeOrder{}
	nb := rt.buttons.(*noButtons)
	ll := rt.led.(*logLed)
	ld := rt.display.(*logDisplay)
	ls := rt.strip.(*logStrip)
	rt.buttons = orderedButtons{nb, order}
	rt.led = orderedLed{ll, order}
	rt.display = orderedDisplay{ld, order}
	rt.strip = orderedStrip{ls, order}

	b := testOpenBoard(t, rt)
	// light one so close has something to turn off
	assert.NilError(t, b.leds.set(rt.settings.GetInt(sLedMute), true))

	b.close()
	assert.DeepEqual(t, order.calls, []string{"strip off", "strip", "display", "leds", "buttons"})

	assert.Equal(t, countLit(ls.lastFrame()), 0)
	assert.Equal(t, ld.isOn(), false)
	audit := ll.getAudit()
	assert.Equal(t, audit[len(audit)-1], "Close")
	assert.Equal(t, nb.closeCount(), 1)

	// twice is fine, nothing is closed again
	b.close()
	assert.Equal(t, len(order.calls), 5)
	assert.Equal(t, nb.closeCount(), 1)
}
