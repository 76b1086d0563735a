package framestore

import (
	"fmt"
	"path/filepath"
	"time"
)

// RunDaily appends frames to one segment file per run-relative day, laid
// out as root/<run:010>/<day:010>/<day:010>.<ext>. The run id is
// allocated at construction by scanning the root; days count from elapsed
// durations supplied by the caller, decoupled from wall clock.
type RunDaily struct {
	handle
	runID    uint32
	boundary *runBoundary
}

// NewRunDaily constructs a run-scoped daily store. The exclusive lock is
// acquired before the run-id scan, so two concurrent constructions cannot
// allocate the same run.
func NewRunDaily(cfg Config) (*RunDaily, error) {
	h, err := newHandle(cfg, true)
	if err != nil {
		return nil, err
	}
	runID, err := nextRunID(h.root)
	if err != nil {
		h.close()
		return nil, err
	}
	b, err := newRunBoundary(h.root, runID)
	if err != nil {
		h.close()
		return nil, err
	}
	return &RunDaily{handle: *h, runID: runID, boundary: b}, nil
}

// RunID returns the run number allocated at construction.
func (s *RunDaily) RunID() uint32 { return s.runID }

// Store appends one frame to the segment for the elapsed day and returns
// the written path.
func (s *RunDaily) Store(elapsed time.Duration, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	dir, day, _, err := s.boundary.dayDir(elapsed, s.archiver)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, fmt.Sprintf("%010d.%s", day, s.format.Extension()))
	if err := s.ensureSegment(target); err != nil {
		return "", err
	}
	if err := s.writeFrame(frame); err != nil {
		return "", err
	}
	return target, nil
}

// Close releases the segment writer, lock, and archival reference. The
// live run directory stays on disk; the next construction scans past it.
func (s *RunDaily) Close() error {
	return s.close()
}
