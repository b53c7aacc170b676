package summary

import (
	"errors"
	"time"

	"summarizer/src/llm/gemini"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess         = "success"
	outcomeSkipped         = "skipped"
	outcomeRequestFailure  = "request_failure"
	outcomeUnexpectedShape = "unexpected_shape"
	outcomeStoreError      = "store_error"
	outcomeError           = "error"
)

// Metrics exposes Prometheus collectors for summary activity.
type Metrics struct {
	submits        *prometheus.CounterVec
	submitDuration prometheus.Histogram
	historySize    prometheus.Gauge
	copies         prometheus.Counter
}

// MustNewMetrics registers the collectors with reg and panics on a
// registration error. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "summarizer",
				Name:      "submits_total",
				Help:      "Summary submissions by outcome.",
			},
			[]string{"outcome"},
		),
		submitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "summarizer",
				Name:      "summarize_duration_seconds",
				Help:      "Time spent waiting for the summarization service.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		historySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "summarizer",
				Name:      "history_entries",
				Help:      "Number of summaries currently in history.",
			},
		),
		copies: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "summarizer",
				Name:      "copies_total",
				Help:      "Copy actions performed.",
			},
		),
	}
	reg.MustRegister(m.submits, m.submitDuration, m.historySize, m.copies)
	return m
}

func (m *Metrics) observeSubmit(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submits.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.submitDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) setHistorySize(n int) {
	if m == nil {
		return
	}
	m.historySize.Set(float64(n))
}

func (m *Metrics) incCopies() {
	if m == nil {
		return
	}
	m.copies.Inc()
}

func classify(err error) string {
	var failure *gemini.RequestFailure
	switch {
	case errors.As(err, &failure):
		return outcomeRequestFailure
	case errors.Is(err, gemini.ErrUnexpectedResponseShape):
		return outcomeUnexpectedShape
	default:
		return outcomeError
	}
}
