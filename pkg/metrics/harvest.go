// Package metrics provides Prometheus metrics for harvest runs
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dglai-harvest/pkg/domain"
)

// HarvestMetrics contains Prometheus metrics for a harvest run
type HarvestMetrics struct {
	entriesTotal   prometheus.Counter
	failuresTotal  *prometheus.CounterVec
	unmatchedTotal *prometheus.CounterVec
	batchesTotal   *prometheus.CounterVec
	identifiers    prometheus.Counter
	fetchDuration  prometheus.Histogram
}

// NewHarvestMetrics creates and registers harvest metrics
func NewHarvestMetrics(registry *prometheus.Registry) (*HarvestMetrics, error) {
	m := &HarvestMetrics{
		entriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_entries_total",
			Help: "Total number of dictionary entries harvested",
		}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_failures_total",
			Help: "Total number of identifiers that produced no entry",
		}, []string{"kind"}),
		unmatchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_unmatched_labels_total",
			Help: "Total number of labels with no abbreviation",
		}, []string{"vocabulary"}),
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_batches_total",
			Help: "Total number of batches by outcome",
		}, []string{"status"}), // status: sealed, skipped
		identifiers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_identifiers_sealed_total",
			Help: "Total number of identifiers in sealed batches",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "harvest_fetch_duration_seconds",
			Help: "Time taken by a single session lookup",
			// 50ms to ~50s
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 11),
		}),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector
func (m *HarvestMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.entriesTotal.Describe(ch)
	m.failuresTotal.Describe(ch)
	m.unmatchedTotal.Describe(ch)
	m.batchesTotal.Describe(ch)
	m.identifiers.Describe(ch)
	m.fetchDuration.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *HarvestMetrics) Collect(ch chan<- prometheus.Metric) {
	m.entriesTotal.Collect(ch)
	m.failuresTotal.Collect(ch)
	m.unmatchedTotal.Collect(ch)
	m.batchesTotal.Collect(ch)
	m.identifiers.Collect(ch)
	m.fetchDuration.Collect(ch)
}

// FetchCompleted records the duration of one lookup
func (m *HarvestMetrics) FetchCompleted(elapsed time.Duration) {
	m.fetchDuration.Observe(elapsed.Seconds())
}

// EntryHarvested counts one entry
func (m *HarvestMetrics) EntryHarvested() {
	m.entriesTotal.Inc()
}

// FailureRecorded counts one failure by kind
func (m *HarvestMetrics) FailureRecorded(kind domain.FailureKind) {
	m.failuresTotal.WithLabelValues(string(kind)).Inc()
}

// LabelUnmatched counts one unmatched label by vocabulary
func (m *HarvestMetrics) LabelUnmatched(vocab domain.Vocabulary) {
	m.unmatchedTotal.WithLabelValues(string(vocab)).Inc()
}

// BatchSealed counts one sealed batch
func (m *HarvestMetrics) BatchSealed(identifiers int) {
	m.batchesTotal.WithLabelValues("sealed").Inc()
	m.identifiers.Add(float64(identifiers))
}

// BatchSkipped counts one batch skipped on resume
func (m *HarvestMetrics) BatchSkipped() {
	m.batchesTotal.WithLabelValues("skipped").Inc()
}
