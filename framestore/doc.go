// Package framestore provides the store handles: append-only, partitioned
// writers for sequential telemetry frames.
//
// # Overview
//
// A store handle owns one current segment at a time and rotates it as a
// side effect of Store calls. Two partitioning families exist:
//
//   - UTC time-based: UTCDaily, UTCHourly, UTCSingleFrame. Segment
//     identity derives from the UTC calendar date (and hour) of the
//     timestamp passed to Store, independent of the local timezone.
//   - Run-based: RunDaily, RunHourly, RunSingleFrame,
//     RunDailySingleFrame. Segment identity derives from a run id
//     allocated at construction plus an elapsed-duration-since-start
//     supplied by the caller, decoupling partitioning from wall clock.
//
// Rotation retires the previous segment: when an archival service is
// configured, the finished directory is queued for compression strictly
// before the new directory is created, so only fully written segments are
// ever archived. Append-mode handles resume an existing segment after a
// restart without rewriting its header; single-frame handles require a
// fresh path on every call and fail with AlreadyExists on collision.
//
// All handles except UTCSingleFrame hold a cross-process exclusive lock,
// namespaced by the format's type identifier, from construction to Close.
// Run-based handles acquire the lock before scanning for the next run id,
// so concurrent constructions against one root cannot allocate the same
// run.
//
// Handles are single-writer: callers serialize their own Store calls.
// Every Store flushes before returning; durability does not depend on a
// clean Close.
package framestore
