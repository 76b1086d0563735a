package framestore

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sunipkm/datastor/archive"
	"github.com/sunipkm/datastor/errors"
	"github.com/sunipkm/datastor/format"
	"github.com/sunipkm/datastor/testutil"
)

func TestRunDailyAllocatesIncreasingRunIDs(t *testing.T) {
	root := t.TempDir()
	cfg := Config{Root: root, Format: format.NewBinary(), ProgName: "test"}

	for want := uint32(1); want <= 3; want++ {
		store, err := NewRunDaily(cfg)
		require.NoError(t, err)
		require.Equal(t, want, store.RunID())
		_, err = store.Store(0, []byte("frame"))
		require.NoError(t, err)
		require.NoError(t, store.Close())
	}
}

func TestRunIDScanCountsArchivedRuns(t *testing.T) {
	root := t.TempDir()

	// An archived run may be the only surviving evidence of its id.
	require.NoError(t, os.WriteFile(filepath.Join(root, "0000000007.tar.gz"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0000000003"), 0o755))

	store, err := NewRunDaily(Config{Root: root, Format: format.NewBinary(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()
	require.Equal(t, uint32(8), store.RunID())
}

func TestRunDailyPathLayoutAndRotation(t *testing.T) {
	root := t.TempDir()
	svc := archive.NewService()
	require.NoError(t, svc.Start())
	defer svc.Stop()

	store, err := NewRunDaily(Config{Root: root, Format: format.NewBinary(), ProgName: "test", Archiver: svc})
	require.NoError(t, err)
	defer store.Close()

	p1, err := store.Store(time.Hour, []byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000000.dat"), p1)

	p2, err := store.Store(23*time.Hour, []byte("two"))
	require.NoError(t, err)
	require.Equal(t, p1, p2)

	p3, err := store.Store(25*time.Hour, []byte("three"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000001", "0000000001.dat"), p3)
	require.Equal(t, int64(1), svc.Stats().Enqueued)

	testutil.WaitForArchive(t, filepath.Dir(p1), 5*time.Second)
}

func TestRunDailyFailedRotationDropsRetiredWriter(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunDaily(Config{Root: root, Format: format.NewBinary(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	p1, err := store.Store(time.Hour, []byte("one"))
	require.NoError(t, err)

	blocked := filepath.Join(root, "0000000001", "0000000001", "0000000001.dat")
	require.NoError(t, os.MkdirAll(blocked, 0o755))

	_, err = store.Store(25*time.Hour, []byte("two"))
	require.Error(t, err)
	_, err = store.Store(25*time.Hour, []byte("three"))
	require.Error(t, err)

	_, frames := testutil.ReadBinarySegment(t, p1)
	require.Equal(t, [][]byte{[]byte("one")}, frames)

	require.NoError(t, os.Remove(blocked))
	p2, err := store.Store(25*time.Hour, []byte("four"))
	require.NoError(t, err)
	require.Equal(t, blocked, p2)
	_, frames = testutil.ReadBinarySegment(t, p2)
	require.Equal(t, [][]byte{[]byte("four")}, frames)
}

func TestRunDailyRejectsNegativeElapsed(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunDaily(Config{Root: root, Format: format.NewBinary(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Store(-time.Second, []byte("frame"))
	require.Error(t, err)
	require.True(t, errors.IsInvalid(err))
}

func TestRunIDOverflowIsFatal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "4294967295"), 0o755))

	_, err := NewRunDaily(Config{Root: root, Format: format.NewBinary(), ProgName: "test"})
	require.Error(t, err)
	require.True(t, errors.IsData(err))
	require.ErrorIs(t, err, errors.ErrCounterOverflow)
}

func TestFrameCounterOverflowIsFatal(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunSingleFrame(Config{Root: root, Format: format.NewRaw(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	store.frame = math.MaxUint64
	_, err = store.Store([]byte("frame"))
	require.ErrorIs(t, err, errors.ErrCounterOverflow)

	daily, err := NewRunDailySingleFrame(Config{Root: t.TempDir(), Format: format.NewRaw(), ProgName: "test"})
	require.NoError(t, err)
	defer daily.Close()

	_, err = daily.Store(time.Minute, []byte("frame"))
	require.NoError(t, err)
	daily.frame = math.MaxUint32
	_, err = daily.Store(2*time.Minute, []byte("frame"))
	require.ErrorIs(t, err, errors.ErrCounterOverflow)
}

func TestRunHourlyRotatesPerHour(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunHourly(Config{Root: root, Format: format.NewBinary(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	p1, err := store.Store(10*time.Minute, []byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000000.dat"), p1)

	p2, err := store.Store(30*time.Minute, []byte("two"))
	require.NoError(t, err)
	require.Equal(t, p1, p2)

	p3, err := store.Store(90*time.Minute, []byte("three"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000001.dat"), p3)

	_, frames := testutil.ReadBinarySegment(t, p1)
	require.Len(t, frames, 2)
	_, frames = testutil.ReadBinarySegment(t, p3)
	require.Len(t, frames, 1)
}

func TestRunSingleFrameCounterAndPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunSingleFrame(Config{Root: root, Format: format.NewRaw(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	p1, err := store.Store([]byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "00000000000000000001.bin"), p1)

	p2, err := store.Store([]byte("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "00000000000000000002.bin"), p2)

	data, err := os.ReadFile(p2)
	require.NoError(t, err)
	require.Equal(t, []byte("two"), data)

	// TargetPath burns a frame id without creating the file.
	p3, err := store.TargetPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "00000000000000000003.bin"), p3)
	_, err = os.Stat(p3)
	require.True(t, os.IsNotExist(err))

	p4, err := store.Store([]byte("four"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "00000000000000000004.bin"), p4)
}

func TestRunDailySingleFrameResetsCounterOnDayAdvance(t *testing.T) {
	root := t.TempDir()
	svc := archive.NewService()
	require.NoError(t, svc.Start())
	defer svc.Stop()

	store, err := NewRunDailySingleFrame(Config{Root: root, Format: format.NewRaw(), ProgName: "test", Archiver: svc})
	require.NoError(t, err)
	defer store.Close()

	p1, err := store.Store(time.Minute, []byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000001.bin"), p1)

	// Every call within a day yields a new file.
	p2, err := store.Store(2*time.Minute, []byte("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000002.bin"), p2)

	p3, err := store.Store(25*time.Hour, []byte("three"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000001", "0000000001.bin"), p3)

	testutil.WaitForArchive(t, filepath.Join(root, "0000000001", "0000000000"), 5*time.Second)
}

func TestRunDailySingleFrameTargetPath(t *testing.T) {
	root := t.TempDir()
	store, err := NewRunDailySingleFrame(Config{Root: root, Format: format.NewRaw(), ProgName: "test"})
	require.NoError(t, err)
	defer store.Close()

	// TargetPath burns a frame id and creates the day directory, but
	// not the file.
	p1, err := store.TargetPath(time.Minute)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000001.bin"), p1)
	require.DirExists(t, filepath.Dir(p1))
	_, err = os.Stat(p1)
	require.True(t, os.IsNotExist(err))

	p2, err := store.Store(2*time.Minute, []byte("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000000", "0000000002.bin"), p2)

	// Day rotation through TargetPath resets the counter too.
	p3, err := store.TargetPath(25 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "0000000001", "0000000001", "0000000001.bin"), p3)
}
