package framestore

import (
	"time"
)

// UTCHourly appends frames to one segment file per UTC hour, laid out as
// root/YYYYMMDD/YYYYMMDDHH0000.<ext>. A new hour closes the previous
// file; crossing a day boundary additionally queues the whole finished
// day directory for archival.
type UTCHourly struct {
	handle
	boundary utcBoundary
}

// NewUTCHourly constructs an hourly store. The exclusive lock for the
// format kind is held until Close.
func NewUTCHourly(cfg Config) (*UTCHourly, error) {
	h, err := newHandle(cfg, true)
	if err != nil {
		return nil, err
	}
	return &UTCHourly{handle: *h, boundary: utcBoundary{root: h.root}}, nil
}

// Store appends one frame to the segment for ts's UTC hour and returns
// the written path.
func (s *UTCHourly) Store(ts time.Time, frame any) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	target, _, err := s.boundary.hourlyTarget(ts, s.format.Extension(), s.archiver)
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

// Close releases the segment writer, lock, and archival reference.
func (s *UTCHourly) Close() error {
	return s.close()
}
