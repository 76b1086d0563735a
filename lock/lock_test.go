package lock

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunipkm/datastor/errors"
)

func TestAcquireRelease(t *testing.T) {
	root := t.TempDir()

	l, err := Acquire(root, "binary")
	require.NoError(t, err)

	path := Path(root, "binary")
	_, err = os.Stat(path)
	require.NoError(t, err, "lock file must exist while held")

	l.Release()
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "lock file must be removed on release")
}

func TestContentionFailsImmediately(t *testing.T) {
	root := t.TempDir()

	first, err := Acquire(root, "binary")
	require.NoError(t, err)
	defer first.Release()

	_, err = Acquire(root, "binary")
	require.ErrorIs(t, err, errors.ErrAlreadyLocked)
	require.True(t, errors.IsConflict(err))
}

func TestReacquireAfterRelease(t *testing.T) {
	root := t.TempDir()

	first, err := Acquire(root, "binary")
	require.NoError(t, err)
	first.Release()

	second, err := Acquire(root, "binary")
	require.NoError(t, err)
	second.Release()
}

func TestDistinctKindsCoexist(t *testing.T) {
	root := t.TempDir()

	bin, err := Acquire(root, "binary")
	require.NoError(t, err)
	defer bin.Release()

	jsn, err := Acquire(root, "json")
	require.NoError(t, err, "different format kinds must not contend")
	defer jsn.Release()

	require.NotEqual(t, Path(root, "binary"), Path(root, "json"))
}

func TestReleaseIdempotent(t *testing.T) {
	root := t.TempDir()

	l, err := Acquire(root, "raw")
	require.NoError(t, err)
	l.Release()
	l.Release() // no panic

	var nilLock *Lock
	nilLock.Release() // nil-safe
}
