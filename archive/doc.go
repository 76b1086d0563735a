// Package archive implements asynchronous compression of retired segments.
//
// # Overview
//
// When a store handle crosses a day boundary, the finished segment
// directory is retired: it will never be appended to again. With archival
// enabled, the handle enqueues the retired path here and moves on; the
// worker turns it into a sibling <path>.tar.gz and deletes the original,
// in the background.
//
// # Protocol
//
// A single worker goroutine consumes an unbounded, strictly FIFO queue.
// Enqueue never blocks the producer. If segment A retires before segment
// B, A's archival begins (not necessarily completes) before B's. The
// original is removed only after the archive is fully written; a failure
// at either step is logged and otherwise ignored, so producers never see
// archival errors, and a partially written archive is cleaned up rather
// than left to masquerade as a completed one.
//
// # Ownership and shutdown
//
// The embedding application constructs one Service, Starts it, and passes
// it to every store handle that wants archival. The Service is
// reference-counted: constructors Retain, handle Close Releases, and
// Service.Stop drops the creator's reference. The worker receives its stop
// sentinel only when the last reference is gone; it then drains whatever
// was queued ahead of the sentinel and exits, and the final Release joins
// it. This is what makes the worker safe to share: one handle's teardown
// cannot halt archival for a sibling that is still writing.
//
// A handle constructed without a Service simply leaves retired segments
// on disk uncompressed.
//
// # Observability
//
// Outcomes are logged through slog. Atomic counters (Stats) are always
// maintained; Prometheus metrics are registered when the application
// supplies a metric.MetricsRegistry via WithMetricsRegistry.
package archive
