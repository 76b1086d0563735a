package framestore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sunipkm/datastor/archive"
	"github.com/sunipkm/datastor/errors"
)

// Segment name layouts. All times are UTC regardless of the local zone.
const (
	dateLayout   = "20060102"
	hourLayout   = "15"
	singleLayout = "150405.000000"
)

// utcBoundary tracks the UTC calendar boundary for the time-based store
// flavors. Crossing a day queues the finished day directory for archival
// strictly before the new directory is created, so only fully written
// segments are ever archived.
type utcBoundary struct {
	root       string
	currentDir string
	lastDate   string // "" until the first store
	lastHour   string // hourly flavor only
}

// dayDir resolves the day directory for ts, rotating if the UTC date
// changed. Returns the directory and whether a rotation happened.
func (b *utcBoundary) dayDir(ts time.Time, arch *archive.Service) (string, bool, error) {
	date := ts.UTC().Format(dateLayout)
	if date == b.lastDate {
		return b.currentDir, false, nil
	}
	if b.lastDate != "" && arch != nil {
		arch.Enqueue(b.currentDir)
	}
	dir := filepath.Join(b.root, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, errors.WrapIO(err, "framestore", "dayDir", "create day directory")
	}
	b.currentDir = dir
	b.lastDate = date
	b.lastHour = ""
	return dir, true, nil
}

// dailyTarget resolves the single per-day segment file for ts.
func (b *utcBoundary) dailyTarget(ts time.Time, ext string, arch *archive.Service) (string, bool, error) {
	dir, rotated, err := b.dayDir(ts, arch)
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, b.lastDate+"000000."+ext), rotated, nil
}

// hourlyTarget resolves the per-hour segment file for ts. The previous
// hour's file is simply closed by the caller; day-level archival handles
// the whole day later.
func (b *utcBoundary) hourlyTarget(ts time.Time, ext string, arch *archive.Service) (string, bool, error) {
	dir, rotated, err := b.dayDir(ts, arch)
	if err != nil {
		return "", false, err
	}
	hour := ts.UTC().Format(hourLayout)
	if hour != b.lastHour {
		b.lastHour = hour
		rotated = true
	}
	return filepath.Join(dir, b.lastDate+hour+"0000."+ext), rotated, nil
}

// singleTarget resolves a one-file-per-call target embedding the full
// sub-second time, so same-second calls still get distinct names down to
// the microsecond. True collisions surface later as AlreadyExists.
func (b *utcBoundary) singleTarget(ts time.Time, ext string, arch *archive.Service) (string, error) {
	dir, _, err := b.dayDir(ts, arch)
	if err != nil {
		return "", err
	}
	name := b.lastDate + ts.UTC().Format(singleLayout) + "." + ext
	return filepath.Join(dir, name), nil
}
