package main

type binding struct {
	cmd    command
	ledPin int
}

// inputDispatcher turns button edges into volume commands and keeps each
// button's LED lit while it is held
type inputDispatcher struct {
	rt       runtimeConfig
	volume   commandHandler
	leds     led
	bindings map[string]binding
}

func buttonBindings(settings configSettings) map[string]binding {
	return map[string]binding{
		sBtnVolumeUp:   {cmd: cmdVolumeUp, ledPin: settings.GetInt(sLedVolumeUp)},
		sBtnVolumeDown: {cmd: cmdVolumeDown, ledPin: settings.GetInt(sLedVolumeDown)},
		sBtnMute:       {cmd: cmdMuteToggle, ledPin: settings.GetInt(sLedMute)},
	}
}

func ledPins(settings configSettings) []int {
	return []int{
		settings.GetInt(sLedVolumeUp),
		settings.GetInt(sLedVolumeDown),
		settings.GetInt(sLedMute),
	}
}

func newInputDispatcher(rt runtimeConfig, volume commandHandler, leds led) *inputDispatcher {
	return &inputDispatcher{
		rt:       rt.withLogger("Input"),
		volume:   volume,
		leds:     leds,
		bindings: buttonBindings(rt.settings),
	}
}

func (d *inputDispatcher) pressed(name string) {
	b, ok := d.bindings[name]
	if !ok {
		d.rt.logger.Printf("Unhandled button %s", name)
		return
	}
	d.rt.metrics.buttonPresses.WithLabelValues(name).Inc()
	d.setLED(b.ledPin, true)
	d.volume.handle(b.cmd)
}

func (d *inputDispatcher) released(name string) {
	b, ok := d.bindings[name]
	if !ok {
		d.rt.logger.Printf("Unhandled button %s", name)
		return
	}
	d.setLED(b.ledPin, false)
}

func (d *inputDispatcher) setLED(pin int, on bool) {
	if err := d.leds.set(pin, on); err != nil {
		err = transientIO("led write", err)
		d.rt.logger.Printf("%v", err)
		d.rt.metrics.failure(err)
	}
}

// click is a press and release, for commands that don't come from a button
func (d *inputDispatcher) click(name string) bool {
	if _, ok := d.bindings[name]; !ok {
		return false
	}
	d.pressed(name)
	d.released(name)
	return true
}
