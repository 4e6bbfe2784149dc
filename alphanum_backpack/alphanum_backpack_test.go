package alphanum_backpack

import (
	"testing"

	"github.com/jferrao/things-rockfm/i2c"
	"gotest.tools/assert"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func setup(t *testing.T) (*Alphanum, *i2ctest.Record) {
	rec := &i2ctest.Record{}
	display, err := New(i2c.New(rec, 0x70))
	assert.NilError(t, err)
	return display, rec
}

func lastWrite(rec *i2ctest.Record) []byte {
	return rec.Ops[len(rec.Ops)-1].W
}

func TestOpenSequence(t *testing.T) {
	display, rec := setup(t)

	// oscillator, then full brightness
	assert.Equal(t, len(rec.Ops), 2)
	assert.DeepEqual(t, rec.Ops[0].W, []byte{0x21})
	assert.DeepEqual(t, rec.Ops[1].W, []byte{0xEF})

	assert.NilError(t, display.DisplayOn(true))
	assert.DeepEqual(t, lastWrite(rec), []byte{0x81})
}

func TestPrint(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.Print("MUTE"))
	assert.DeepEqual(t, lastWrite(rec), []byte{
		0x00,
		0x36, 0x05, // M
		0x3E, 0x00, // U
		0x01, 0x12, // T
		0xF9, 0x00, // E
	})
	assert.Equal(t, display.Text(), "MUTE")
}

func TestPrintShortLeftJustified(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.Print("O "))
	assert.DeepEqual(t, lastWrite(rec), []byte{
		0x00,
		0x3F, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
	})
}

func TestPrintLowerCase(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.Print("wait"))
	upper := lastWrite(rec)
	assert.NilError(t, display.Print("WAIT"))
	// same segments, so nothing new was written
	assert.DeepEqual(t, lastWrite(rec), upper)
	assert.Equal(t, len(rec.Ops), 3)
}

func TestPrintDecimal(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.Print("1.2.34"))
	w := lastWrite(rec)
	assert.Equal(t, getDigit([displaySize]uint8(w), 0), uint16(0x0006|LED_DECIMAL_MASK))
	assert.Equal(t, getDigit([displaySize]uint8(w), 1), uint16(0x00DB|LED_DECIMAL_MASK))
	assert.Equal(t, getDigit([displaySize]uint8(w), 3), uint16(0x00E6))
}

func TestPrintTooLong(t *testing.T) {
	display, rec := setup(t)

	err := display.Print("ROCK FM")
	assert.ErrorContains(t, err, "Too many characters")
	// nothing written past the open sequence
	assert.Equal(t, len(rec.Ops), 2)
}

func TestPrintBadChar(t *testing.T) {
	display, _ := setup(t)

	err := display.Print("~")
	assert.ErrorContains(t, err, "Bad value")
}

func TestClearAfterOpen(t *testing.T) {
	display, rec := setup(t)

	// the first clear always reaches the chip
	assert.NilError(t, display.ClearDisplay())
	assert.Equal(t, len(rec.Ops), 3)
	assert.DeepEqual(t, lastWrite(rec), make([]byte, displaySize))

	// the second one is a no-op
	assert.NilError(t, display.ClearDisplay())
	assert.Equal(t, len(rec.Ops), 3)
}

func TestBlinkAndBrightness(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.SetBlinkRate(BLINK_1HZ))
	assert.DeepEqual(t, lastWrite(rec), []byte{0x81 | BLINK_1HZ<<1})
	assert.ErrorContains(t, display.SetBlinkRate(4), "Bad blink rate")

	assert.NilError(t, display.SetBrightness(1))
	assert.DeepEqual(t, lastWrite(rec), []byte{0xE1})
	assert.ErrorContains(t, display.SetBrightness(16), "Bad brightness level")
}

func TestClose(t *testing.T) {
	display, rec := setup(t)

	assert.NilError(t, display.DisplayOn(true))
	assert.NilError(t, display.Close())
	n := len(rec.Ops)
	assert.DeepEqual(t, rec.Ops[n-2].W, []byte{0x80})
	assert.DeepEqual(t, rec.Ops[n-1].W, []byte{0x20})

	// writes after close fail
	assert.Assert(t, display.Print("A") != nil)
}
