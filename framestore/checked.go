package framestore

import (
	"os"

	"github.com/sunipkm/datastor/errors"
	"github.com/sunipkm/datastor/format"
)

// checkedSegment is the resume-vs-create decision for one target path.
// A path is classified fresh (absent) or existing (present) once, before
// opening, so the format's initialization hook runs exactly when a segment
// is created and never re-runs against an existing header after a restart.
type checkedSegment struct {
	path  string
	fresh bool
}

// checkSegment classifies the target path.
func checkSegment(path string) checkedSegment {
	_, err := os.Stat(path)
	return checkedSegment{path: path, fresh: os.IsNotExist(err)}
}

// openAppend opens the segment for appending. Fresh segments are created
// and initialized through the format hook; existing segments are opened
// in append mode with initialization skipped, so a restarted process that
// re-derives the same segment key resumes rather than truncates.
func (cs checkedSegment) openAppend(f format.Capability, progName string) (*os.File, error) {
	if cs.fresh {
		w, err := os.Create(cs.path)
		if err != nil {
			return nil, errors.WrapIO(err, "framestore", "openAppend", "create segment")
		}
		if err := f.Initialize(w, progName); err != nil {
			w.Close()
			return nil, err
		}
		return w, nil
	}
	w, err := os.OpenFile(cs.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.WrapIO(err, "framestore", "openAppend", "open segment for append")
	}
	return w, nil
}

// openFresh opens the segment for a single-frame write. An existing
// classification is rejected: every single-frame call must yield a
// distinct artifact, and collisions surface as AlreadyExists rather than
// silently overwriting.
func (cs checkedSegment) openFresh(f format.Capability, progName string) (*os.File, error) {
	if !cs.fresh {
		return nil, errors.WrapConflict(errors.ErrAlreadyExists, "framestore", "openFresh", cs.path)
	}
	w, err := os.Create(cs.path)
	if err != nil {
		return nil, errors.WrapIO(err, "framestore", "openFresh", "create segment")
	}
	if err := f.Initialize(w, progName); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
