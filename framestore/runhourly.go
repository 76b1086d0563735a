package framestore

import (
	"fmt"
	"path/filepath"
	"time"
)

// RunHourly appends frames to one segment file per hour within a
// run-relative day: root/<run:010>/<day:010>/<hour:010>.<ext>, hour 0
// through 23. A new hour closes the previous file; a day advance queues
// the finished day directory for archival.
type RunHourly struct {
	handle
	runID    uint32
	boundary *runBoundary
}

// NewRunHourly constructs a run-scoped hourly store. The exclusive lock
// is acquired before the run-id scan.
func NewRunHourly(cfg Config) (*RunHourly, error) {
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
	return &RunHourly{handle: *h, runID: runID, boundary: b}, nil
}

// RunID returns the run number allocated at construction.
func (s *RunHourly) RunID() uint32 { return s.runID }

// Store appends one frame to the segment for the elapsed hour and
// returns the written path.
func (s *RunHourly) Store(elapsed time.Duration, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	dir, _, _, err := s.boundary.dayDir(elapsed, s.archiver)
	if err != nil {
		return "", err
	}
	hour := hourOfElapsedDay(elapsed)
	target := filepath.Join(dir, fmt.Sprintf("%010d.%s", hour, s.format.Extension()))
	if err := s.ensureSegment(target); err != nil {
		return "", err
	}
	if err := s.writeFrame(frame); err != nil {
		return "", err
	}
	return target, nil
}

// Close releases the segment writer, lock, and archival reference.
func (s *RunHourly) Close() error {
	return s.close()
}
