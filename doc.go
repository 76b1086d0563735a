// Package datastor provides time-partitioned, append-only on-disk storage
// for sequential telemetry frames.
//
// # Overview
//
// datastor is an embeddable library, not a service: a program constructs a
// store handle over a root directory and calls Store once per frame. The
// handle partitions frames into segments, rotates segments at partition
// boundaries, and optionally hands retired segments to a background
// archival service for compression.
//
// Two partitioning families exist:
//
//   - UTC time-based: one segment per UTC calendar day or hour, or one
//     file per frame named after the full sub-second store time. Segment
//     identity follows the UTC date of the supplied timestamp, never the
//     local timezone.
//   - Run-based: one directory per program execution, with a run id
//     recovered by scanning the root's directory names (live runs and
//     archived ones alike), and day/frame partitions driven by an
//     elapsed-duration-since-start supplied by the caller.
//
// Recovery is convention-based: no metadata files exist, so the on-disk
// directory and file names are the complete state. A restarted process
// that re-derives the same segment key resumes appending to the existing
// segment without rewriting its header; single-frame segments are never
// reused.
//
// # Packages
//
//   - framestore: the store handles and rotation state machines
//   - format: storage format capabilities (Binary, JSON, Raw) and the
//     binary segment codec
//   - archive: background tar.gz archival service
//   - lock: cross-process exclusive locking of a root per format kind
//   - errors: classified errors shared across the module
//   - metric: prometheus registry wrapper used by the archival service
//
// # Durability
//
// Store flushes after every write; durability does not depend on a clean
// Close. Archival is fire-and-forget: failures are logged, never
// surfaced, and the source is deleted only after its archive is fully
// written.
package datastor
