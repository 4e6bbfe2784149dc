package i2c

import (
	"fmt"
	"log"
	"strings"

	"github.com/pkg/errors"
	pi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// I2C is one device on an I2C bus. A simulated device only logs what
// would have been written.
type I2C struct {
	dev     *pi2c.Dev
	bus     pi2c.BusCloser
	address uint16
	sim     bool
	closed  bool
}

func logWrite(address uint16, buf []byte) {
	parts := make([]string, len(buf))
	for i := range buf {
		parts[i] = fmt.Sprintf("%02x", buf[i])
	}
	log.Printf("i2c 0x%02x write: %s", address, strings.Join(parts, " "))
}

// Open a connection to the device at address on the named bus ("" picks
// the first bus periph finds, "I2C1" is the Pi header bus).
func Open(busName string, address uint16, simulated bool) (*I2C, error) {
	if simulated {
		log.Printf("i2c 0x%02x: simulated on %q", address, busName)
		return &I2C{address: address, sim: true}, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %q", busName)
	}
	this := New(bus, address)
	this.bus = bus
	return this, nil
}

// New wraps a bus that is already open. The caller keeps ownership of
// the bus.
func New(bus pi2c.Bus, address uint16) *I2C {
	return &I2C{
		dev:     &pi2c.Dev{Bus: bus, Addr: address},
		address: address,
	}
}

func (this *I2C) Address() uint16 {
	return this.address
}

func (this *I2C) Simulated() bool {
	return this.sim
}

// WriteByte sends a single command byte.
func (this *I2C) WriteByte(single byte) error {
	_, err := this.Write([]byte{single})
	return err
}

func (this *I2C) Write(buf []byte) (int, error) {
	if this.closed {
		return 0, errors.Errorf("i2c 0x%02x: write after close", this.address)
	}
	if this.sim {
		logWrite(this.address, buf)
		return len(buf), nil
	}
	n, err := this.dev.Write(buf)
	if err != nil {
		return n, errors.Wrapf(err, "i2c 0x%02x write", this.address)
	}
	return n, nil
}

// Close releases the bus if Open created it. Closing twice is a no-op.
func (this *I2C) Close() error {
	if this.closed {
		return nil
	}
	this.closed = true
	if this.sim {
		log.Printf("i2c 0x%02x: close", this.address)
		return nil
	}
	if this.bus != nil {
		return this.bus.Close()
	}
	return nil
}
