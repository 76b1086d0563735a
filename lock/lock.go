// Package lock provides the cross-process advisory lock guarding a store
// root against concurrent writers of the same format kind.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/sunipkm/datastor/errors"
)

// marker is written into freshly created lock files so a stray .lock file
// is self-describing. The lock itself is the OS-level flock, not the file
// contents.
const marker = "datastor exclusive lock\n"

// Lock is a held cross-process exclusive lock. The zero value is not
// usable; obtain one through Acquire.
type Lock struct {
	path string
	file *os.File
}

// Path returns the lock file path, root/<hash as fixed-width hex>.lock.
// The hash namespaces the lock by format kind so heterogeneous formats
// coexist safely under one root.
func Path(root, typeID string) string {
	return filepath.Join(root, fmt.Sprintf("%016x.lock", xxhash.Sum64String(typeID)))
}

// Acquire creates or opens the lock file for the given root and format
// kind and takes a non-blocking, whole-file exclusive lock on it.
// Contention fails immediately with ErrAlreadyLocked; it never waits.
func Acquire(root, typeID string) (*Lock, error) {
	path := Path(root, typeID)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.WrapIO(err, "lock", "Acquire", "open lock file")
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, errors.WrapConflict(errors.ErrAlreadyLocked, "lock", "Acquire", path)
	}
	// Best effort; an empty lock file locks just as well.
	fi, statErr := f.Stat()
	if statErr == nil && fi.Size() == 0 {
		f.WriteString(marker)
	}
	return &Lock{path: path, file: f}, nil
}

// Release removes the lock file and releases the OS lock. Cleanup is best
// effort: a clean shutdown never fails because of a stray lock artifact.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	os.Remove(l.path)
	unlockFile(l.file)
	l.file.Close()
	l.file = nil
}
