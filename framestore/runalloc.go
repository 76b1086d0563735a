package framestore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sunipkm/datastor/archive"
	"github.com/sunipkm/datastor/errors"
)

const archiveSuffix = ".tar.gz"

// nextRunID scans the immediate children of root and returns one past the
// highest run number found. Both live run directories and already archived
// runs ("<n>.tar.gz") count, so restarting after archival still advances.
func nextRunID(root string) (uint32, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, errors.WrapIO(err, "framestore", "nextRunID", "scan root directory")
	}
	var max uint64
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() {
			if !strings.HasSuffix(name, archiveSuffix) {
				continue
			}
			name = strings.TrimSuffix(name, archiveSuffix)
		}
		n, err := strconv.ParseUint(name, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max >= math.MaxUint32 {
		return 0, errors.WrapData(errors.ErrCounterOverflow, "framestore", "nextRunID", "allocate run number")
	}
	return uint32(max + 1), nil
}

// dayFromElapsed converts a duration since run start into a day counter.
// Negative durations are rejected rather than silently producing a day
// that already rotated away.
func dayFromElapsed(elapsed time.Duration) (uint32, error) {
	if elapsed < 0 {
		return 0, errors.WrapInvalid(fmt.Errorf("negative elapsed duration %v", elapsed),
			"framestore", "dayFromElapsed", "compute run day")
	}
	day := uint64(elapsed / (24 * time.Hour))
	if day > math.MaxUint32 {
		return 0, errors.WrapData(errors.ErrCounterOverflow, "framestore", "dayFromElapsed", "compute run day")
	}
	return uint32(day), nil
}

// hourOfElapsedDay returns the hour within the elapsed day, 0 through 23.
func hourOfElapsedDay(elapsed time.Duration) uint32 {
	return uint32((elapsed % (24 * time.Hour)) / time.Hour)
}

// runBoundary tracks the per-run day directory for the run-based store
// flavors. Days count from the run's first store, decoupled from wall
// clock and timezone.
type runBoundary struct {
	runDir  string
	lastDay uint32
	haveDay bool
}

func newRunBoundary(root string, runID uint32) (*runBoundary, error) {
	dir := filepath.Join(root, fmt.Sprintf("%010d", runID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO(err, "framestore", "newRunBoundary", "create run directory")
	}
	return &runBoundary{runDir: dir}, nil
}

// dayDir resolves the day directory for elapsed, rotating when the
// run-relative day advances. The retired day is queued for archival before
// the new directory exists.
func (b *runBoundary) dayDir(elapsed time.Duration, arch *archive.Service) (string, uint32, bool, error) {
	day, err := dayFromElapsed(elapsed)
	if err != nil {
		return "", 0, false, err
	}
	if b.haveDay && day == b.lastDay {
		return filepath.Join(b.runDir, fmt.Sprintf("%010d", day)), day, false, nil
	}
	if b.haveDay && arch != nil {
		arch.Enqueue(filepath.Join(b.runDir, fmt.Sprintf("%010d", b.lastDay)))
	}
	dir := filepath.Join(b.runDir, fmt.Sprintf("%010d", day))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, false, errors.WrapIO(err, "framestore", "dayDir", "create day directory")
	}
	b.lastDay = day
	b.haveDay = true
	return dir, day, true, nil
}
