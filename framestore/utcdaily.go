package framestore

import (
	"time"
)

// UTCDaily appends frames to one segment file per UTC calendar day,
// laid out as root/YYYYMMDD/YYYYMMDD000000.<ext>. Crossing a day boundary
// queues the finished day directory for archival and opens a new segment;
// restarting within the same day resumes appending to the existing file.
type UTCDaily struct {
	handle
	boundary utcBoundary
}

// NewUTCDaily constructs a daily store. The exclusive lock for the
// format kind is held until Close.
func NewUTCDaily(cfg Config) (*UTCDaily, error) {
	h, err := newHandle(cfg, true)
	if err != nil {
		return nil, err
	}
	return &UTCDaily{handle: *h, boundary: utcBoundary{root: h.root}}, nil
}

// Store appends one frame to the segment for ts's UTC date and returns
// the written path. Synchronous; flushed before return.
func (s *UTCDaily) Store(ts time.Time, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	target, _, err := s.boundary.dailyTarget(ts, s.format.Extension(), s.archiver)
	if err != nil {
		return "", err
	}
	if err := s.ensureSegment(target); err != nil {
		return "", err
	}
	if err := s.writeFrame(frame); err != nil {
		return "", err
	}
	return target, nil
}

// Close releases the segment writer, lock, and archival reference. The
// current day directory is left on disk so a restart resumes appending.
func (s *UTCDaily) Close() error {
	return s.close()
}
