package main

import (
	"image/color"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/host/v3"
)

// apaStrip is an APA102 strip on SPI
type apaStrip struct {
	port spi.PortCloser
	dev  *apa102.Dev
	buf  []byte
}

// brightness is the APA102 5 bit global value, periph wants 0-255
func apaIntensity(brightness int) uint8 {
	if brightness <= 0 {
		return 0
	}
	if brightness >= 31 {
		return 255
	}
	return uint8(brightness * 255 / 31)
}

func (as *apaStrip) OpenStrip(settings configSettings) error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	port, err := spireg.Open(settings.GetString(sSPIPort))
	if err != nil {
		return errors.Wrapf(err, "open spi port %q", settings.GetString(sSPIPort))
	}
	return as.openOn(port, settings)
}

func (as *apaStrip) openOn(port spi.PortCloser, settings configSettings) error {
	n := settings.GetInt(sStripLength)
	if n < 1 {
		port.Close()
		return errors.Errorf("bad strip length %d", n)
	}
	dev, err := apa102.New(port, &apa102.Opts{
		NumPixels:   n,
		Intensity:   apaIntensity(settings.GetInt(sStripBrightness)),
		Temperature: apa102.NeutralTemp,
	})
	if err != nil {
		port.Close()
		return errors.Wrap(err, "apa102")
	}
	as.port = port
	as.dev = dev
	as.buf = make([]byte, 3*n)
	return nil
}

func (as *apaStrip) Write(frame []color.NRGBA) error {
	if as.dev == nil {
		return errors.New("strip is not open")
	}
	for i := range frame {
		if 3*i+2 >= len(as.buf) {
			break
		}
		as.buf[3*i] = frame[i].R
		as.buf[3*i+1] = frame[i].G
		as.buf[3*i+2] = frame[i].B
	}
	_, err := as.dev.Write(as.buf)
	return err
}

// Close blanks the strip before letting go of the port
func (as *apaStrip) Close() error {
	if as.dev == nil {
		return nil
	}
	err := as.dev.Halt()
	if cerr := as.port.Close(); err == nil {
		err = cerr
	}
	as.dev = nil
	as.port = nil
	return err
}
