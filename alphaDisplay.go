package main

import (
	"github.com/jferrao/things-rockfm/alphanum_backpack"
	"github.com/pkg/errors"
)

// alphaDisplay is the HT16K33 14-segment backpack
type alphaDisplay struct {
	anb *alphanum_backpack.Alphanum
}

func (ad *alphaDisplay) OpenDisplay(settings configSettings) error {
	var err error
	ad.anb, err = alphanum_backpack.Open(
		settings.GetString(sI2CBus),
		uint16(settings.GetByte(sDisplayAddr)),
		settings.GetBool(sSimulated))
	return err
}

func (ad *alphaDisplay) DebugDump(on bool) {
	ad.anb.DebugDump(on)
}

func (ad *alphaDisplay) SetBrightness(b uint8) error {
	return ad.anb.SetBrightness(b)
}

func (ad *alphaDisplay) DisplayOn(on bool) error {
	return ad.anb.DisplayOn(on)
}

func (ad *alphaDisplay) Print(s string) error {
	return ad.anb.Print(s)
}

func (ad *alphaDisplay) ClearDisplay() error {
	return ad.anb.ClearDisplay()
}

func (ad *alphaDisplay) Close() error {
	if ad.anb == nil {
		return nil
	}
	err := ad.anb.Close()
	ad.anb = nil
	return errors.Wrap(err, "close display")
}
