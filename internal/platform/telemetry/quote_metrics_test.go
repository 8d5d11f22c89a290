package telemetry

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewQuoteMetrics(reg)
	require.NoError(t, err)

	m.EntryCreated()
	m.EntryCreated()
	m.ImageRendered("rendered", 120*time.Millisecond)
	m.ImageRendered("not_found", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.created), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rendered.WithLabelValues("rendered")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rendered.WithLabelValues("not_found")), 0)

	expected := `
# HELP quote_entries_created_total Number of quote entries stored.
# TYPE quote_entries_created_total counter
quote_entries_created_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "quote_entries_created_total"))

	count, err := testutil.GatherAndCount(reg, "quote_image_render_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQuoteMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewQuoteMetrics(reg)
	require.NoError(t, err)

	_, err = NewQuoteMetrics(reg)
	assert.Error(t, err)
}
