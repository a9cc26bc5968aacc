package observability

import (
	"context"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Steps        prometheus.Counter
	Verdicts     *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	ActiveStates prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nfa_steps_total",
			Help: "Number of successful δ* steps.",
		}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nfa_verdicts_total",
			Help: "Words fully read, by verdict.",
		}, []string{"verdict"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nfa_rejections_total",
			Help: "Words abandoned before being fully read, by reason.",
		}, []string{"reason"}),
		ActiveStates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nfa_active_states",
			Help:    "Size of the active-state set after each step.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Verdicts, m.Rejections, m.ActiveStates)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.Inc()
			m.ActiveStates.Observe(float64(e.To.Len()))
		},
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			m.Verdicts.WithLabelValues(string(e.Verdict)).Inc()
		},
		OnReject: func(_ context.Context, e *domain.RejectEvent) {
			m.Rejections.WithLabelValues("undefined_transition").Inc()
		},
	}
}
