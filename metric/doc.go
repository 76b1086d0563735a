// Package metric provides the Prometheus metrics registry for datastor
// components.
//
// # Overview
//
// MetricsRegistry wraps a dedicated prometheus.Registry and tracks
// registrations under service-qualified names, so two components cannot
// silently register the same metric twice. Components follow a
// dual-tracking pattern: cheap atomic statistics are always maintained,
// and Prometheus metrics are registered only when the embedding
// application supplies a registry.
//
// datastor is an embeddable library; it never exposes an HTTP endpoint.
// The application retrieves the underlying registry via
// PrometheusRegistry() and serves it alongside its own metrics.
//
//	registry := metric.NewMetricsRegistry()
//	svc := archive.NewService(archive.WithMetricsRegistry(registry))
//	http.Handle("/metrics", promhttp.HandlerFor(
//	    registry.PrometheusRegistry(), promhttp.HandlerOpts{}))
package metric
