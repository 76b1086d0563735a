package framestore

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/sunipkm/datastor/errors"
)

// RunDailySingleFrame writes each frame to its own file inside a
// run-relative day directory: root/<run:010>/<day:010>/<frame:010>.<ext>.
// A day advance queues the finished day for archival and resets the frame
// counter to zero; within a day the counter increments on every call, one
// new file per call. The hourly writer instead reuses one open file per
// hour; the difference is intentional and load-bearing for consumers that
// treat each frame file as an independent artifact.
type RunDailySingleFrame struct {
	handle
	runID    uint32
	boundary *runBoundary
	frame    uint32
}

// NewRunDailySingleFrame constructs a run-scoped per-day single-frame
// store. The exclusive lock is acquired before the run-id scan.
func NewRunDailySingleFrame(cfg Config) (*RunDailySingleFrame, error) {
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
	return &RunDailySingleFrame{handle: *h, runID: runID, boundary: b}, nil
}

// RunID returns the run number allocated at construction.
func (s *RunDailySingleFrame) RunID() uint32 { return s.runID }

// TargetPath allocates the next frame id for the elapsed day and returns
// its path without opening the file, for callers that write through their
// own writer. Day rotation happens here just as it does in Store.
func (s *RunDailySingleFrame) TargetPath(elapsed time.Duration) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return s.nextTarget(elapsed)
}

// Store writes one frame to a fresh file for the elapsed day and returns
// its path.
func (s *RunDailySingleFrame) Store(elapsed time.Duration, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	target, err := s.nextTarget(elapsed)
	if err != nil {
		return "", err
	}
	return target, s.storeSingle(target, frame)
}

func (s *RunDailySingleFrame) nextTarget(elapsed time.Duration) (string, error) {
	dir, _, rotated, err := s.boundary.dayDir(elapsed, s.archiver)
	if err != nil {
		return "", err
	}
	if rotated {
		s.frame = 0
	}
	if s.frame == math.MaxUint32 {
		return "", errors.WrapData(errors.ErrCounterOverflow, "framestore", "Store", "allocate frame number")
	}
	s.frame++
	return filepath.Join(dir, fmt.Sprintf("%010d.%s", s.frame, s.format.Extension())), nil
}

// Close releases the lock and archival reference.
func (s *RunDailySingleFrame) Close() error {
	return s.close()
}
