package observability

import (
	"strconv"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "handik"

// Metrics holds the engine collectors.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Inputs      *prometheus.CounterVec
	ModeChanges prometheus.Counter
	Motions     *prometheus.CounterVec
	Frames      prometheus.Counter
	FrameDelta  prometheus.Histogram
	Target      *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hand_transitions_total",
			Help:      "Accepted hand target changes.",
		}, []string{"hand", "from", "to"}),
		Inputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_total",
			Help:      "Raw input calls by kind and whether they reached the generators.",
		}, []string{"kind", "forwarded"}),
		ModeChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_changes_total",
			Help:      "Accepted mode changes.",
		}),
		Motions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "motions_total",
			Help:      "Motion clips started, by source device.",
		}, []string{"source"}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames run.",
		}),
		FrameDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Frame delta passed to Update.",
			Buckets:   []float64{0.004, 0.008, 0.0167, 0.033, 0.05, 0.1},
		}),
		Target: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hand_target",
			Help:      "1 for the target type currently holding each hand.",
		}, []string{"hand", "target"}),
	}

	for _, c := range []prometheus.Collector{
		m.Transitions, m.Inputs, m.ModeChanges, m.Motions, m.Frames, m.FrameDelta, m.Target,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			hand := e.Hand.String()
			m.Transitions.WithLabelValues(hand, e.From.String(), e.To.String()).Inc()
			m.Target.WithLabelValues(hand, e.From.String()).Set(0)
			m.Target.WithLabelValues(hand, e.To.String()).Set(1)
		},
		OnModesChanged: func(prev, next domain.Modes) {
			m.ModeChanges.Inc()
		},
		OnInput: func(e *domain.InputEvent) {
			m.Inputs.WithLabelValues(e.Kind, strconv.FormatBool(e.Forwarded)).Inc()
		},
		OnMotion: func(e *domain.MotionEvent) {
			m.Motions.WithLabelValues(e.Source).Inc()
		},
	}
}

// ObserveFrame records one frame of dt seconds.
func (m *Metrics) ObserveFrame(dt float64) {
	m.Frames.Inc()
	m.FrameDelta.Observe(dt)
}
