package main

// radio ties the controllers to an open board
type radio struct {
	rt       runtimeConfig
	board    *board
	display  *displayController
	volume   *volumeController
	input    *inputDispatcher
	playback *playbackController
}

func newRadio(rt runtimeConfig, b *board) *radio {
	dc := newDisplayController(rt, b.display)
	vc := newVolumeController(rt, rt.mixer, dc, b.strip)
	return &radio{
		rt:       rt,
		board:    b,
		display:  dc,
		volume:   vc,
		input:    newInputDispatcher(rt, vc, b.leds),
		playback: newPlaybackController(rt, rt.player, dc),
	}
}

// start puts the current volume on the strip and starts the stream
func (r *radio) start() <-chan error {
	r.volume.refresh()
	return r.playback.start(r.rt.settings.GetString(sStreamURL))
}

// close stops the stream and the scroll, the board is closed by its owner
func (r *radio) close() {
	r.playback.close()
	r.display.close()
}

type statusReport struct {
	Response  string `json:"response"`
	Station   string `json:"station"`
	Display   string `json:"display"`
	Scrolling bool   `json:"scrolling"`
	Volume    int    `json:"volume"`
	MaxVolume int    `json:"maxVolume"`
	Muted     bool   `json:"muted"`
	Stream    string `json:"stream"`
	Error     string `json:"error,omitempty"`
	HasScreen bool   `json:"hasDisplay"`
	HasStrip  bool   `json:"hasStrip"`
}

func (r *radio) status() statusReport {
	vol := r.volume.current()
	state, reason := r.playback.status()
	rep := statusReport{
		Response:  "OK",
		Station:   r.rt.settings.GetString(sStationName),
		Display:   r.display.current(),
		Scrolling: r.display.scrolling(),
		Volume:    vol.level,
		MaxVolume: vol.maxLevel,
		Muted:     vol.muted,
		Stream:    state.String(),
		HasScreen: r.board.display.isPresent(),
		HasStrip:  r.board.strip.isPresent(),
	}
	if reason != nil {
		rep.Error = reason.Error()
	}
	return rep
}
