package pagebloc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Bloc reports into. One Metrics
// value can be shared by many Bloc instances; series are labelled by event
// and operation, not by instance.
type Metrics struct {
	eventsTotal   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
}

// NewMetrics creates and registers the pagination collectors on the given
// registerer. Pass prometheus.DefaultRegisterer to use the default
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagebloc_events_total",
				Help: "Total number of pagination events processed",
			},
			[]string{"event"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagebloc_fetch_duration_seconds",
				Help:    "Duration of repository page fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"}, // "first_page", "load_more", "refresh"
		),
		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagebloc_fetch_failures_total",
				Help: "Total number of failed repository page fetches",
			},
			[]string{"operation"},
		),
	}
}

// recordEvent counts a processed event. Nil-safe.
func (m *Metrics) recordEvent(name string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(name).Inc()
}

// observeFetch records a fetch outcome. Nil-safe.
func (m *Metrics) observeFetch(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.fetchFailures.WithLabelValues(operation).Inc()
	}
}
