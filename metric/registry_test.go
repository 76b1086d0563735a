package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sunipkm/datastor/errors"
)

func TestRegisterAndGather(t *testing.T) {
	r := NewMetricsRegistry()

	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "archive_archived_total",
		Help: "Segments archived",
	})
	require.NoError(t, r.RegisterCounter("archive", "archive_archived_total", c))
	c.Add(3)

	mfs, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	require.Equal(t, "archive_archived_total", mfs[0].GetName())
	require.Equal(t, float64(3), mfs[0].GetMetric()[0].GetCounter().GetValue())
}

func TestDuplicateRegistration(t *testing.T) {
	r := NewMetricsRegistry()

	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "archive_queue_depth", Help: "d"})
	require.NoError(t, r.RegisterGauge("archive", "archive_queue_depth", g))

	err := r.RegisterGauge("archive", "archive_queue_depth", g)
	require.Error(t, err)
	require.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	r := NewMetricsRegistry()

	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "archive_duration_seconds", Help: "d"})
	require.NoError(t, r.RegisterHistogram("archive", "archive_duration_seconds", h))

	require.True(t, r.Unregister("archive", "archive_duration_seconds"))
	require.False(t, r.Unregister("archive", "archive_duration_seconds"))

	// Re-registration after unregister must succeed.
	require.NoError(t, r.RegisterHistogram("archive", "archive_duration_seconds", h))
}
