package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records outcomes and latency for the stats engine operations
// (leaderboard refresh/reindex, roster mutations, recommendations).
type EngineMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_op_duration_seconds",
		Help:    "Duration of engine operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_op_success",
		Help: "Successful engine operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_op_failure",
		Help: "Failed engine operations.",
	}, []string{"op"})
	reg.MustRegister(duration, success, failure)
	return &EngineMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *EngineMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *EngineMetrics) IncSuccess(op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *EngineMetrics) IncFailure(op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

// Track observes duration and the success/failure counter in one call.
func (m *EngineMetrics) Track(op string, start time.Time, err error) {
	m.ObserveDuration(op, time.Since(start))
	if err != nil {
		m.IncFailure(op)
		return
	}
	m.IncSuccess(op)
}

func normalizeLabel(op string) string {
	op = strings.TrimSpace(strings.ToLower(op))
	if op == "" {
		return "unknown"
	}
	return strings.ReplaceAll(op, " ", "_")
}
