package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts card interactions in a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	submits      *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	dodges       prometheus.Counter
	yesScale     prometheus.Gauge
	slotFallback prometheus.Counter
}

// NewMetrics registers the heartgate counters in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heartgate_password_submits_total",
			Help: "Password submits by result.",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heartgate_screen_transitions_total",
			Help: "Screen transitions by source and target screen.",
		}, []string{"from", "to"}),
		dodges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartgate_no_dodges_total",
			Help: "Times the no button moved away.",
		}),
		yesScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartgate_yes_scale",
			Help: "Current scale of the yes button.",
		}),
		slotFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartgate_gallery_fallbacks_total",
			Help: "Gallery slots that fell back to their placeholder.",
		}),
	}
	m.registry.MustRegister(m.submits, m.transitions, m.dodges, m.yesScale, m.slotFallback)
	m.yesScale.Set(1)
	return m
}

// Gatherer exposes the registry for tests and exporters.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes the current values in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Gatherer()); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
