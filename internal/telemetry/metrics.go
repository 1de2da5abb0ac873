// Package telemetry records extraction metrics in Prometheus.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace prefixes every metric of the service.
	MetricsNamespace = "npa"
	// MetricsSubsystem groups extraction metrics.
	MetricsSubsystem = "extract"
)

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the extraction metrics. A nil *Metrics records nothing.
type Metrics struct {
	FetchAttemptsTotal  *prometheus.CounterVec
	FetchDuration       *prometheus.HistogramVec
	DocumentsDiscovered *prometheus.CounterVec
	CandidatesSkipped   *prometheus.CounterVec
	SourceFailures      *prometheus.CounterVec
	SectionsExtracted   prometheus.Histogram
	DetailFailures      prometheus.Counter
}

// NewMetrics creates and registers the extraction metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FetchAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "fetch_attempts_total",
			Help:      "Upstream fetch attempts by backend and outcome",
		}, []string{"backend", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of single upstream fetch attempts",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"backend"}),
		DocumentsDiscovered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "documents_discovered_total",
			Help:      "Document summaries discovered on listing pages",
		}, []string{"category"}),
		CandidatesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "candidates_skipped_total",
			Help:      "Listing links dropped during extraction by reason",
		}, []string{"reason"}),
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "source_failures_total",
			Help:      "Listing sources that failed during a search",
		}, []string{"category"}),
		SectionsExtracted: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "sections_per_document",
			Help:      "Number of sections extracted per document",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		DetailFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "detail_failures_total",
			Help:      "Document detail requests answered with the error shape",
		}),
	}
}

// FetchAttempt records one fetch attempt.
func (m *Metrics) FetchAttempt(backend string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.FetchAttemptsTotal.WithLabelValues(backend, outcome).Inc()
	m.FetchDuration.WithLabelValues(backend).Observe(seconds)
}

// Discovered records n summaries found for category.
func (m *Metrics) Discovered(category string, n int) {
	if m == nil {
		return
	}
	m.DocumentsDiscovered.WithLabelValues(category).Add(float64(n))
}

// CandidateSkipped records a dropped listing link.
func (m *Metrics) CandidateSkipped(reason string) {
	if m == nil {
		return
	}
	m.CandidatesSkipped.WithLabelValues(reason).Inc()
}

// SourceFailed records a listing source skipped during search.
func (m *Metrics) SourceFailed(category string) {
	if m == nil {
		return
	}
	m.SourceFailures.WithLabelValues(category).Inc()
}

// Sections records the section count of one extracted document.
func (m *Metrics) Sections(n int) {
	if m == nil {
		return
	}
	m.SectionsExtracted.Observe(float64(n))
}

// DetailFailed records a failed detail extraction.
func (m *Metrics) DetailFailed() {
	if m == nil {
		return
	}
	m.DetailFailures.Inc()
}
