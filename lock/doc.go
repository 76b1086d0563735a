// Package lock implements cross-process exclusive locking for store roots.
//
// # Overview
//
// Two store handles - possibly in different processes - must never append
// into the same root for the same format kind: the resume-vs-create
// decision assumes a single writer, and a second appender would interleave
// frames or corrupt a header. Constructors therefore take an advisory,
// whole-file exclusive lock before touching any segment.
//
// Lock identity is the pair (root, format TypeID): the lock file is named
// by a fixed-width hex xxhash of the TypeID, so a binary writer and a JSON
// writer can share one root without contending.
//
// Acquisition is strictly non-blocking. Contention fails immediately with
// errors.ErrAlreadyLocked regardless of platform; the caller must treat it
// as fatal to construction. Release removes the lock file and drops the OS
// lock, both best effort.
//
// Platform backends are selected at build time: flock on unix,
// LockFileEx(LOCKFILE_FAIL_IMMEDIATELY) on windows, with identical
// semantics on both.
package lock
