package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TryOnMetrics records the outcome and duration of try-on processing runs.
type TryOnMetrics struct {
	duration  *prometheus.HistogramVec
	completed *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewTryOnMetrics registers the try-on pipeline metrics.
func NewTryOnMetrics(reg prometheus.Registerer) *TryOnMetrics {
	if reg == nil {
		return &TryOnMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tryon_processing_seconds",
		Help:    "Duration of outfit processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tryon_sessions_completed_total",
		Help: "Sessions that reached the completed state.",
	}, []string{"model"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tryon_sessions_failed_total",
		Help: "Sessions that reached the failed state.",
	}, []string{"reason"})
	reg.MustRegister(duration, completed, failed)
	return &TryOnMetrics{duration: duration, completed: completed, failed: failed}
}

// ObserveProcessing records one processing run for the given model label.
func (t *TryOnMetrics) ObserveProcessing(model string, d time.Duration) {
	if t == nil || t.duration == nil {
		return
	}
	t.duration.WithLabelValues(normalizeLabel(model)).Observe(d.Seconds())
}

// IncCompleted counts a completed session.
func (t *TryOnMetrics) IncCompleted(model string) {
	if t == nil || t.completed == nil {
		return
	}
	t.completed.WithLabelValues(normalizeLabel(model)).Inc()
}

// IncFailed counts a failed session with a coarse reason label.
func (t *TryOnMetrics) IncFailed(reason string) {
	if t == nil || t.failed == nil {
		return
	}
	t.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}
