// Package errors provides standardized error handling for the datastor
// storage layer.
//
// # Overview
//
// The storage layer distinguishes four error classes, matching how callers
// are expected to react:
//
//   - ErrorIO: filesystem create/open/write/flush failures. The underlying
//     error propagates verbatim inside the wrapper and is fatal for the call
//     that produced it.
//   - ErrorInvalid: the caller handed us something unusable - a frame that
//     cannot be serialized, or a payload too large for the binary length
//     field. Fatal for the call, retrying with the same input cannot succeed.
//   - ErrorConflict: a computed path unexpectedly already exists in a context
//     requiring freshness, or another writer holds the exclusive lock.
//     Fatal with no implicit retry; retry policy belongs to the caller.
//   - ErrorData: a run/day/frame counter increment would overflow, or a
//     segment header fails validation. Counters never silently wrap.
//
// Archival failures are deliberately absent from this taxonomy: the archival
// worker logs them and moves on, and they are never surfaced to producers.
//
// # Usage
//
// Wrap errors at package boundaries with the class-specific helpers:
//
//	if err := os.MkdirAll(dir, 0o755); err != nil {
//	    return errors.WrapIO(err, "framestore", "Store", "create segment directory")
//	}
//
// Check classes where the reaction differs:
//
//	if errors.IsConflict(err) {
//	    // a sibling process owns this root; construction must fail
//	}
//
// Sentinel values (ErrAlreadyExists, ErrAlreadyLocked, ErrCounterOverflow,
// ErrPayloadTooLarge, ...) are matched through the wrappers with errors.Is.
package errors
