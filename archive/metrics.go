package archive

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sunipkm/datastor/metric"
)

// serviceMetrics holds Prometheus metrics for the archival worker.
type serviceMetrics struct {
	archived   prometheus.Counter
	failed     prometheus.Counter
	queueDepth prometheus.Gauge
	duration   prometheus.Histogram
}

// newServiceMetrics creates and registers archival metrics with the
// provided registry.
func newServiceMetrics(registry *metric.MetricsRegistry) (*serviceMetrics, error) {
	m := &serviceMetrics{
		archived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "datastor",
			Subsystem: "archive",
			Name:      "archived_total",
			Help:      "Total segments successfully archived and removed",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "datastor",
			Subsystem: "archive",
			Name:      "failed_total",
			Help:      "Total archival attempts that failed (logged and dropped)",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "datastor",
			Subsystem: "archive",
			Name:      "queue_depth",
			Help:      "Retired segments waiting for the archival worker",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "datastor",
			Subsystem: "archive",
			Name:      "duration_seconds",
			Help:      "Time spent compressing and removing one segment",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}),
	}

	const service = "archive"
	if err := registry.RegisterCounter(service, "archived_total", m.archived); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(service, "failed_total", m.failed); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(service, "queue_depth", m.queueDepth); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram(service, "duration_seconds", m.duration); err != nil {
		return nil, err
	}
	return m, nil
}
