// Package metrics exposes ledger outcomes to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

const OutcomeAccepted = "accepted"

type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	accepted    prometheus.Counter
	attempted   prometheus.Histogram
}

// New builds the ledger collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movilidad_submissions_total",
			Help: "Submit calls by outcome.",
		}, []string{"outcome"}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movilidad_accepted_amount_total",
			Help: "Sum of accepted submission totals in currency units.",
		}),
		attempted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "movilidad_submission_total_amount",
			Help:    "Distribution of claimed submission totals.",
			Buckets: []float64{5, 10, 15, 20, 25, 30, 35, 40, 45, 60, 100},
		}),
	}

	registry.MustRegister(
		m.submissions,
		m.accepted,
		m.attempted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveSubmission implements submission.Recorder.
func (m *Metrics) ObserveSubmission(kind submission.Kind, total decimal.Decimal) {
	outcome := string(kind)
	if kind == "" {
		outcome = OutcomeAccepted
	}

	m.submissions.WithLabelValues(outcome).Inc()

	// Requests rejected before amounts were parsed carry no total.
	if total.IsZero() {
		return
	}

	f := total.InexactFloat64()
	m.attempted.Observe(f)

	if kind == "" {
		m.accepted.Add(f)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
