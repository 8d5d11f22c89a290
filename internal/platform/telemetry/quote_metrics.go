package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics exports the quote use case counters to Prometheus.
// It satisfies app.Metrics.
type QuoteMetrics struct {
	created        prometheus.Counter
	rendered       *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewQuoteMetrics creates the collectors and registers them on reg.
func NewQuoteMetrics(reg prometheus.Registerer) (*QuoteMetrics, error) {
	m := &QuoteMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quote_entries_created_total",
			Help: "Number of quote entries stored.",
		}),
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_images_rendered_total",
			Help: "Number of image requests by outcome.",
		}, []string{"outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quote_image_render_duration_seconds",
			Help:    "Time spent producing a quote image, font download included.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}

	for _, c := range []prometheus.Collector{m.created, m.rendered, m.renderDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// EntryCreated counts one stored entry.
func (m *QuoteMetrics) EntryCreated() {
	m.created.Inc()
}

// ImageRendered counts one image request and records its latency.
func (m *QuoteMetrics) ImageRendered(outcome string, elapsed time.Duration) {
	m.rendered.WithLabelValues(outcome).Inc()
	m.renderDuration.Observe(elapsed.Seconds())
}
