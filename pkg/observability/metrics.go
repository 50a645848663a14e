package observability

import (
	"fmt"
	"strconv"

	"github.com/aretw0/statesync/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records lifecycle activity as Prometheus collectors.
type Metrics struct {
	Enters     *prometheus.CounterVec
	Exits      *prometheus.CounterVec
	Frames     *prometheus.CounterVec
	Activation *prometheus.HistogramVec
	Active     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	labels := []string{"layer", "kind"}
	m := &Metrics{
		Enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statesync_state_enters_total",
				Help: "Total number of state activations started",
			},
			labels,
		),
		Exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statesync_state_exits_total",
				Help: "Total number of state activations ended",
			},
			labels,
		),
		Frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statesync_state_frames_total",
				Help: "Total number of frames forwarded to states",
			},
			labels,
		),
		Activation: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statesync_activation_seconds",
				Help:    "Accumulated seconds of completed activations",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			labels,
		),
		Active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statesync_state_active",
				Help: "1 while the kind is active on the layer",
			},
			labels,
		),
	}

	for _, c := range []prometheus.Collector{m.Enters, m.Exits, m.Frames, m.Activation, m.Active} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEnter: func(e *domain.StateEvent) {
			layer := strconv.Itoa(e.Layer)
			m.Enters.WithLabelValues(layer, e.Kind.String()).Inc()
			m.Active.WithLabelValues(layer, e.Kind.String()).Set(1)
		},
		OnUpdate: func(e *domain.StateEvent) {
			m.Frames.WithLabelValues(strconv.Itoa(e.Layer), e.Kind.String()).Inc()
		},
		OnExit: func(e *domain.StateEvent) {
			layer := strconv.Itoa(e.Layer)
			m.Exits.WithLabelValues(layer, e.Kind.String()).Inc()
			m.Active.WithLabelValues(layer, e.Kind.String()).Set(0)
			m.Activation.WithLabelValues(layer, e.Kind.String()).Observe(e.Seconds)
		},
	}
}
