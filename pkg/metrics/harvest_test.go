package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dglai-harvest/pkg/domain"
)

func TestHarvestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHarvestMetrics(reg)
	require.NoError(t, err)

	m.EntryHarvested()
	m.EntryHarvested()
	m.FailureRecorded(domain.FailureHTTP)
	m.FailureRecorded(domain.FailureNoSection)
	m.FailureRecorded(domain.FailureHTTP)
	m.LabelUnmatched(domain.PartOfSpeechVocabulary)
	m.BatchSealed(1000)
	m.BatchSkipped()
	m.FetchCompleted(120 * time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.entriesTotal), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.failuresTotal.WithLabelValues("http-error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failuresTotal.WithLabelValues("content-error-no-section")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.unmatchedTotal.WithLabelValues("part-of-speech")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.batchesTotal.WithLabelValues("sealed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.batchesTotal.WithLabelValues("skipped")), 0)
	assert.InDelta(t, 1000, testutil.ToFloat64(m.identifiers), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.fetchDuration))
}

func TestHarvestMetricsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewHarvestMetrics(reg)
	require.NoError(t, err)
	_, err = NewHarvestMetrics(reg)
	assert.Error(t, err)
}
