package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry      *prometheus.Registry
	volume        prometheus.Gauge
	muted         prometheus.Gauge
	streamState   *prometheus.GaugeVec
	buttonPresses *prometheus.CounterVec
	displayWrites prometheus.Counter
	stripFrames   prometheus.Counter
	failures      *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		volume: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rockfm",
			Name:      "volume_level",
			Help:      "Current output volume level",
		}),
		muted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rockfm",
			Name:      "muted",
			Help:      "1 while the mixer is muted",
		}),
		streamState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rockfm",
			Name:      "stream_state",
			Help:      "1 for the current stream session state",
		}, []string{"state"}),
		buttonPresses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rockfm",
			Name:      "button_presses_total",
			Help:      "Button presses by button",
		}, []string{"button"}),
		displayWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rockfm",
			Name:      "display_writes_total",
			Help:      "Text written to the display",
		}),
		stripFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rockfm",
			Name:      "strip_frames_total",
			Help:      "Frames written to the LED strip",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rockfm",
			Name:      "peripheral_errors_total",
			Help:      "Caught failures by kind",
		}, []string{"kind"}),
	}
}

func (m *metrics) failure(err error) {
	m.failures.WithLabelValues(kindLabel(err)).Inc()
}

func (m *metrics) setVolume(s volumeState) {
	m.volume.Set(float64(s.level))
	if s.muted {
		m.muted.Set(1)
	} else {
		m.muted.Set(0)
	}
}

func (m *metrics) setStreamState(state streamState) {
	for _, s := range allStreamStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.streamState.WithLabelValues(s.String()).Set(v)
	}
}

// handler serves the registry for scraping
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
