package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type refreshCollector struct {
	Refreshes       prometheus.Counter
	RefreshFailures prometheus.Counter
	FetchFailures   *prometheus.CounterVec
	Duration        prometheus.Histogram
	CitiesCollected prometheus.Gauge
}

var (
	collector     *refreshCollector
	collectorOnce sync.Once
)

func getCollector() *refreshCollector {
	collectorOnce.Do(func() {
		collector = &refreshCollector{
			Refreshes: promauto.NewCounter(prometheus.CounterOpts{
				Name: "weather_refresh_total",
				Help: "The total number of completed refresh cycles",
			}),
			RefreshFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name: "weather_refresh_failures_total",
				Help: "The total number of refresh cycles that published nothing",
			}),
			FetchFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_fetch_failures_total",
					Help: "The total number of per-city fetch failures",
				},
				[]string{"city"},
			),
			Duration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "weather_refresh_duration_seconds",
				Help:    "Refresh cycle duration in seconds",
				Buckets: prometheus.DefBuckets,
			}),
			CitiesCollected: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "weather_cities_collected",
				Help: "Number of cities in the most recently published snapshot",
			}),
		}
	})
	return collector
}

// RefreshMetrics records refresh pipeline outcomes. A nil receiver is a
// no-op, so tests can run the pipeline without touching the global registry.
type RefreshMetrics struct {
	collector *refreshCollector
}

func NewRefreshMetrics() *RefreshMetrics {
	return &RefreshMetrics{collector: getCollector()}
}

func (m *RefreshMetrics) RecordRefreshSuccess(duration time.Duration, cities int) {
	if m == nil {
		return
	}
	m.collector.Refreshes.Inc()
	m.collector.Duration.Observe(duration.Seconds())
	m.collector.CitiesCollected.Set(float64(cities))
}

func (m *RefreshMetrics) RecordRefreshFailure() {
	if m == nil {
		return
	}
	m.collector.RefreshFailures.Inc()
}

func (m *RefreshMetrics) RecordFetchFailure(city string) {
	if m == nil {
		return
	}
	m.collector.FetchFailures.WithLabelValues(city).Inc()
}
