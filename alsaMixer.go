package main

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// alsaMixer runs amixer against one simple control. Levels are steps of
// 0..max mapped onto the control's percentage.
type alsaMixer struct {
	control string
	max     int
	run     func(args ...string) ([]byte, error)
}

func newAlsaMixer(control string, max int) *alsaMixer {
	if max <= 0 {
		max = 1
	}
	return &alsaMixer{
		control: control,
		max:     max,
		run: func(args ...string) ([]byte, error) {
			return exec.Command("amixer", args...).CombinedOutput()
		},
	}
}

// "Front Left: Playback 49152 [75%] [-16.00dB] [on]"
var amixerPercent = regexp.MustCompile(`\[(\d+)%\]`)
var amixerSwitch = regexp.MustCompile(`\[(on|off)\]`)

func parseAmixer(out []byte) (percent int, muted bool, err error) {
	m := amixerPercent.FindSubmatch(out)
	if m == nil {
		return 0, false, errors.Errorf("no volume in amixer output: %q", out)
	}
	percent, err = strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false, err
	}
	// controls without a switch are never muted
	if s := amixerSwitch.FindSubmatch(out); s != nil {
		muted = string(s[1]) == "off"
	}
	return percent, muted, nil
}

func (am *alsaMixer) get() (int, bool, error) {
	out, err := am.run("get", am.control)
	if err != nil {
		return 0, false, errors.Wrapf(err, "amixer get %s: %s", am.control, out)
	}
	return parseAmixer(out)
}

func (am *alsaMixer) MaxLevel() int {
	return am.max
}

func (am *alsaMixer) Level() (int, error) {
	percent, _, err := am.get()
	if err != nil {
		return 0, err
	}
	// nearest step
	return (percent*am.max + 50) / 100, nil
}

func (am *alsaMixer) SetLevel(level int) error {
	percent := clamp(level, 0, am.max) * 100 / am.max
	out, err := am.run("-q", "set", am.control, fmt.Sprintf("%d%%", percent))
	if err != nil {
		return errors.Wrapf(err, "amixer set %s: %s", am.control, out)
	}
	return nil
}

func (am *alsaMixer) ToggleMute() error {
	out, err := am.run("-q", "set", am.control, "toggle")
	if err != nil {
		return errors.Wrapf(err, "amixer toggle %s: %s", am.control, out)
	}
	return nil
}

func (am *alsaMixer) Muted() (bool, error) {
	_, muted, err := am.get()
	return muted, err
}
