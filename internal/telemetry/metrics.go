// Package telemetry holds the prometheus instruments of the service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager groups all instruments. Create one per registry.
type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterPhotoURLCache      *prometheus.CounterVec

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
	HistTimelineEntries prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("logyourbody", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("logyourbody", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterPhotoURLCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "photo_url_cache",
		Help:      "Photo URL cache lookups by result",
	}, []string{"result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		Name:      "request_duration_seconds",
		Help:      "Total duration of requests in seconds",
	})
	histTimelineEntries := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		Name:      "timeline_entries",
		Help:      "Number of entries in each built timeline",
	})

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterPhotoURLCache:      counterPhotoURLCache,
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
		HistTimelineEntries:       histTimelineEntries,
	}
}

// ObserveTimeline records the size of a built timeline.
func (m *Manager) ObserveTimeline(entries int) {
	m.HistTimelineEntries.Observe(float64(entries))
}

// ObserveCache counts a photo URL cache hit or miss.
func (m *Manager) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CounterPhotoURLCache.WithLabelValues(result).Inc()
}
