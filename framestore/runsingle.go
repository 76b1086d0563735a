package framestore

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/sunipkm/datastor/errors"
)

// RunSingleFrame writes each frame to its own file directly under the run
// directory: root/<run:010>/<frame:020>.<ext>. The frame counter
// increments on every call, starting at 1; an increment that would
// overflow is a hard error, never a silent wrap.
type RunSingleFrame struct {
	handle
	runID  uint32
	runDir string
	frame  uint64
}

// NewRunSingleFrame constructs a run-scoped single-frame store. The
// exclusive lock is acquired before the run-id scan.
func NewRunSingleFrame(cfg Config) (*RunSingleFrame, error) {
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
	return &RunSingleFrame{handle: *h, runID: runID, runDir: b.runDir}, nil
}

// RunID returns the run number allocated at construction.
func (s *RunSingleFrame) RunID() uint32 { return s.runID }

// TargetPath allocates the next frame id and returns its path without
// opening the file, for callers that write through their own writer.
func (s *RunSingleFrame) TargetPath() (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return s.nextTarget()
}

// Store writes one frame to a fresh file and returns its path.
func (s *RunSingleFrame) Store(frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	target, err := s.nextTarget()
	if err != nil {
		return "", err
	}
	return target, s.storeSingle(target, frame)
}

func (s *RunSingleFrame) nextTarget() (string, error) {
	if s.frame == math.MaxUint64 {
		return "", errors.WrapData(errors.ErrCounterOverflow, "framestore", "Store", "allocate frame number")
	}
	s.frame++
	return filepath.Join(s.runDir, fmt.Sprintf("%020d.%s", s.frame, s.format.Extension())), nil
}

// Close releases the lock and archival reference.
func (s *RunSingleFrame) Close() error {
	return s.close()
}
