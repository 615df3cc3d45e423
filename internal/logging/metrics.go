package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the sink renders. Create it once per registry and hand
// it to every Pipeline built for that registry.
type Metrics struct {
	RecordsTotal   *prometheus.CounterVec
	RenderFailures *prometheus.CounterVec
}

// NewMetrics registers the log counters on reg. A nil reg yields working,
// unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		RecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "microloans_log_records_total",
				Help: "Total number of log records written",
			},
			[]string{"logger", "level"},
		),
		RenderFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "microloans_log_render_failures_total",
				Help: "Total number of log records the formatter rejected",
			},
			[]string{"logger"},
		),
	}
	return m
}

func (m *Metrics) written(logger string, l Level) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(logger, LevelName(l)).Inc()
}

func (m *Metrics) failed(logger string) {
	if m == nil {
		return
	}
	m.RenderFailures.WithLabelValues(logger).Inc()
}
