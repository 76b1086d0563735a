package framestore

import (
	"time"
)

// UTCSingleFrame writes each frame to its own file named after the full
// sub-second store time: root/YYYYMMDD/YYYYMMDDHHMMSS.ffffff.<ext>. Two
// calls never share a path; a collision (same microsecond twice) fails
// with AlreadyExists rather than overwriting. No exclusive lock is taken:
// every call resolves a distinct path, so concurrent writers under one
// root cannot clobber each other's segments.
type UTCSingleFrame struct {
	handle
	boundary utcBoundary
}

// NewUTCSingleFrame constructs a single-frame store.
func NewUTCSingleFrame(cfg Config) (*UTCSingleFrame, error) {
	h, err := newHandle(cfg, false)
	if err != nil {
		return nil, err
	}
	return &UTCSingleFrame{handle: *h, boundary: utcBoundary{root: h.root}}, nil
}

// TargetPath resolves the segment path for ts and creates its day
// directory, without opening the file. Callers that need their own writer
// (streaming encoders, external tools) use this and write the file
// themselves.
func (s *UTCSingleFrame) TargetPath(ts time.Time) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return s.boundary.singleTarget(ts, s.format.Extension(), s.archiver)
}

// Store writes one frame to a fresh file for ts and returns its path.
// The file is closed before return; the format delimiter is omitted, so
// a single-frame JSON file holds one bare value.
func (s *UTCSingleFrame) Store(ts time.Time, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	target, err := s.boundary.singleTarget(ts, s.format.Extension(), s.archiver)
	if err != nil {
		return "", err
	}
	return target, s.storeSingle(target, frame)
}

// Close releases the archival reference. There is no lock or open writer
// to tear down.
func (s *UTCSingleFrame) Close() error {
	return s.close()
}
