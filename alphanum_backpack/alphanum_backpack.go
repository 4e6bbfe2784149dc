package alphanum_backpack

import (
	"fmt"
	"log"

	"github.com/jferrao/things-rockfm/i2c"
	"github.com/pkg/errors"
)

// HT16K33 commands
const i2cOSC_ON = 0x21
const i2cOSC_OFF = 0x20

// display on/off and 2 "blink" bits in position 2+1
const i2cDISPLAY_ON = 0x81
const i2cDISPLAY_OFF = 0x80

// 0x0 -> 0xF brightness levels
const i2cBRIGHTNESS_CMD = 0xE0
const BRIGHTNESS_MAX = 0x0F

// export blink positions
const BLINK_OFF = 0
const BLINK_2HZ = 1
const BLINK_1HZ = 2
const BLINK_HALFHZ = 3

// Digits is the number of characters on the backpack
const Digits = 4

// bit 14 of every digit is the decimal point
const LED_DECIMAL_MASK = 0x4000

// 14 segment masks, bits 0-5 are A-F, 6/7 are G1/G2, 8-13 are H-N
var charValues = map[byte]uint16{
	' ':  0x0000,
	'!':  0x0006,
	'"':  0x0220,
	'#':  0x12CE,
	'$':  0x12ED,
	'%':  0x0C24,
	'&':  0x235D,
	'\'': 0x0400,
	'(':  0x2400,
	')':  0x0900,
	'*':  0x3FC0,
	'+':  0x12C0,
	',':  0x0800,
	'-':  0x00C0,
	'/':  0x0C00,
	'0':  0x0C3F,
	'1':  0x0006,
	'2':  0x00DB,
	'3':  0x008F,
	'4':  0x00E6,
	'5':  0x2069,
	'6':  0x00FD,
	'7':  0x0007,
	'8':  0x00FF,
	'9':  0x00EF,
	':':  0x1200,
	';':  0x0A00,
	'<':  0x2400,
	'=':  0x00C8,
	'>':  0x0900,
	'?':  0x1083,
	'@':  0x02BB,
	'A':  0x00F7,
	'B':  0x128F,
	'C':  0x0039,
	'D':  0x120F,
	'E':  0x00F9,
	'F':  0x0071,
	'G':  0x00BD,
	'H':  0x00F6,
	'I':  0x1209,
	'J':  0x001E,
	'K':  0x2470,
	'L':  0x0038,
	'M':  0x0536,
	'N':  0x2136,
	'O':  0x003F,
	'P':  0x00F3,
	'Q':  0x203F,
	'R':  0x20F3,
	'S':  0x00ED,
	'T':  0x1201,
	'U':  0x003E,
	'V':  0x0C30,
	'W':  0x2836,
	'X':  0x2D00,
	'Y':  0x1500,
	'Z':  0x0C09,
	'[':  0x0039,
	'\\': 0x2100,
	']':  0x000F,
	'^':  0x0C03,
	'_':  0x0008,
	'`':  0x0100,
	'|':  0x1200,
}

// one address byte, two bytes per digit
const displaySize = 1 + Digits*2

type Alphanum struct {
	display        [displaySize]uint8
	currentDisplay [displaySize]uint8
	i2cDev         *i2c.I2C
	dirty          bool
	dump           bool
	blink          byte
	on             bool
	text           string
}

func (this *Alphanum) simLog(v string, args ...interface{}) {
	if !this.i2cDev.Simulated() {
		return
	}
	log.Printf(v, args...)
}

func getClearDisplay() [displaySize]uint8 {
	var display [displaySize]uint8
	return display
}

// Open the backpack at address on the named I2C bus.
func Open(bus string, address uint16, simulated bool) (*Alphanum, error) {
	i2cDev, err := i2c.Open(bus, address, simulated)
	if err != nil {
		return nil, err
	}
	this, err := New(i2cDev)
	if err != nil {
		i2cDev.Close()
		return nil, err
	}
	return this, nil
}

// New starts the oscillator on an open device. You still need to call
// DisplayOn(true) to light anything.
func New(i2cDev *i2c.I2C) (*Alphanum, error) {
	this := &Alphanum{
		i2cDev:         i2cDev,
		blink:          BLINK_OFF,
		display:        getClearDisplay(),
		currentDisplay: getClearDisplay(),
		// RAM content is undefined at power on
		dirty: true,
	}
	if err := this.i2cDev.WriteByte(i2cOSC_ON); err != nil {
		return nil, errors.Wrap(err, "oscillator on")
	}
	if err := this.SetBrightness(BRIGHTNESS_MAX); err != nil {
		return nil, err
	}
	return this, nil
}

func (this *Alphanum) DebugDump(on bool) {
	this.dump = on
}

func (this *Alphanum) DisplayOn(on bool) error {
	this.simLog("Display: %t", on)
	// blink rate is bits 2 and 1 of the display command
	var val byte = i2cDISPLAY_ON | (this.blink << 1)
	if !on {
		val = i2cDISPLAY_OFF
	}
	this.on = on
	return this.i2cDev.WriteByte(val)
}

func (this *Alphanum) ClearDisplay() error {
	this.simLog("ClearDisplay")
	this.display = getClearDisplay()
	this.text = ""
	return this.refresh_display()
}

// Text is the last string successfully printed.
func (this *Alphanum) Text() string {
	return this.text
}

func (this *Alphanum) dumpDisplay() {
	line := "|"
	for i := 0; i < Digits; i++ {
		line += fmt.Sprintf(" %04x |", getDigit(this.display, i))
	}
	log.Printf("%s %q", line, this.text)
}

func (this *Alphanum) refresh_display() error {
	// refreshing on the same thing?
	if !this.dirty && this.currentDisplay == this.display {
		return nil
	}
	if this.dump {
		this.dumpDisplay()
	}

	// display has the address 0 embedded in it
	if _, err := this.i2cDev.Write(this.display[:]); err != nil {
		// try again on the next call
		this.dirty = true
		return err
	}
	this.currentDisplay = this.display
	this.dirty = false
	return nil
}

func setDigit(display *[displaySize]uint8, pos int, mask uint16) {
	display[1+pos*2] = uint8(mask & 0xff)
	display[2+pos*2] = uint8(mask >> 8)
}

func getDigit(display [displaySize]uint8, pos int) uint16 {
	return uint16(display[1+pos*2]) | uint16(display[2+pos*2])<<8
}

func altCase(char uint8) uint8 {
	if char >= 'A' && char <= 'Z' {
		return char + 'a' - 'A'
	} else if char >= 'a' && char <= 'z' {
		return char + 'A' - 'a'
	}
	return char
}

func getMask(char uint8, decimalOn bool) (uint16, error) {
	if char == '.' {
		// a dot on its own is a blank with the decimal
		char = ' '
		decimalOn = true
	}
	val, ok := charValues[char]
	if !ok {
		val, ok = charValues[altCase(char)]
		if !ok {
			return 0, errors.Errorf("Bad value: %q", char)
		}
	}
	if decimalOn {
		val |= LED_DECIMAL_MASK
	}
	return val, nil
}

// Print writes msg left justified. A '.' after a character lights that
// character's decimal point instead of taking a position.
func (this *Alphanum) Print(msg string) error {
	display := getClearDisplay()
	pos := 0
	i := 0
	for ; i < len(msg) && pos < Digits; i++ {
		dotOn := false
		if msg[i] != '.' && i+1 < len(msg) && msg[i+1] == '.' {
			dotOn = true
		}
		mask, err := getMask(msg[i], dotOn)
		if err != nil {
			return err
		}
		setDigit(&display, pos, mask)
		pos++
		if dotOn {
			i++
		}
	}
	// did we get it all?
	if i != len(msg) {
		return errors.New("Too many characters: " + msg)
	}
	this.display = display
	this.text = msg
	return this.refresh_display()
}

func (this *Alphanum) SetBlinkRate(rate uint8) error {
	if rate > BLINK_HALFHZ {
		return errors.Errorf("Bad blink rate: %d", rate)
	}
	this.simLog("Blink rate %d", rate)
	this.blink = rate
	// one assumes you want the display on now?
	return this.DisplayOn(true)
}

func (this *Alphanum) SetBrightness(level uint8) error {
	if level > BRIGHTNESS_MAX {
		return errors.Errorf("Bad brightness level: %d", level)
	}
	this.simLog("Brightness %d", level)
	return this.i2cDev.WriteByte(i2cBRIGHTNESS_CMD | level)
}

// Close turns the display and oscillator off and releases the device.
func (this *Alphanum) Close() error {
	var first error
	if this.on {
		if err := this.DisplayOn(false); err != nil {
			first = err
		}
	}
	if err := this.i2cDev.WriteByte(i2cOSC_OFF); err != nil && first == nil {
		first = err
	}
	if err := this.i2cDev.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
