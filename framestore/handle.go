package framestore

import (
	"log/slog"
	"os"

	"github.com/sunipkm/datastor/archive"
	"github.com/sunipkm/datastor/errors"
	"github.com/sunipkm/datastor/format"
	"github.com/sunipkm/datastor/lock"
)

// handle carries the state every store flavor shares: the validated
// configuration, the optional exclusive lock, and the currently open
// segment writer. Store handles are single-writer; callers serialize
// their own Store calls.
type handle struct {
	root     string
	format   format.Capability
	progName string
	archiver *archive.Service
	logger   *slog.Logger

	lock    *lock.Lock
	writer  *os.File
	segment string
	closed  bool
}

// newHandle validates cfg, creates the root, optionally acquires the
// exclusive lock for the format kind, and retains the archival service.
func newHandle(cfg Config, locked bool) (*handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(cfg.Root); err == nil && !fi.IsDir() {
		return nil, errors.WrapInvalid(errors.ErrNotADirectory, "framestore", "newHandle", cfg.Root)
	}
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, errors.WrapIO(err, "framestore", "newHandle", "create root directory")
	}
	h := &handle{
		root:     cfg.Root,
		format:   cfg.Format,
		progName: cfg.ProgName,
		archiver: cfg.Archiver,
		logger:   cfg.Logger,
	}
	if locked {
		l, err := lock.Acquire(cfg.Root, cfg.Format.TypeID())
		if err != nil {
			return nil, err
		}
		h.lock = l
	}
	if h.archiver != nil {
		h.archiver.Retain()
	}
	return h, nil
}

// swapWriter closes the current segment writer, if any, and installs w.
func (h *handle) swapWriter(w *os.File) {
	if h.writer != nil {
		if err := h.writer.Close(); err != nil {
			h.logger.Warn("closing retired segment", "path", h.writer.Name(), "error", err)
		}
	}
	h.writer = w
}

// ensureSegment makes the open writer match target, reopening when the
// rotation state machines resolved a different path. A failed open drops
// the previous writer: once a segment is retired it may already be in the
// archival queue, and a stale writer must never receive another frame.
func (h *handle) ensureSegment(target string) error {
	if h.writer != nil && h.segment == target {
		return nil
	}
	w, err := checkSegment(target).openAppend(h.format, h.progName)
	if err != nil {
		h.swapWriter(nil)
		h.segment = ""
		return err
	}
	h.swapWriter(w)
	h.segment = target
	return nil
}

// writeFrame encodes one frame to the open writer, appends the format's
// delimiter, and flushes.
func (h *handle) writeFrame(frame any) error {
	if err := h.format.Encode(h.writer, frame); err != nil {
		return err
	}
	if d := h.format.Delimiter(); d != nil {
		if _, err := h.writer.Write(d); err != nil {
			return errors.WrapIO(err, "framestore", "writeFrame", "write delimiter")
		}
	}
	if err := h.writer.Sync(); err != nil {
		return errors.WrapIO(err, "framestore", "writeFrame", "flush segment")
	}
	return nil
}

// storeSingle writes one frame to a fresh file at path. The file is
// flushed and closed before return; no delimiter is written.
func (h *handle) storeSingle(path string, frame any) error {
	w, err := checkSegment(path).openFresh(h.format, h.progName)
	if err != nil {
		return err
	}
	if err := h.format.Encode(w, frame); err != nil {
		w.Close()
		return err
	}
	if err := w.Sync(); err != nil {
		w.Close()
		return errors.WrapIO(err, "framestore", "storeSingle", "flush segment")
	}
	if err := w.Close(); err != nil {
		return errors.WrapIO(err, "framestore", "storeSingle", "close segment")
	}
	return nil
}

// checkOpen rejects operations on a closed handle.
func (h *handle) checkOpen() error {
	if h.closed {
		return errors.WrapConflict(errors.ErrClosed, "framestore", "Store", "write frame")
	}
	return nil
}

// close tears the handle down: the open writer is closed, the lock
// released, and the archival reference dropped. Safe to call once per
// handle; later calls return ErrClosed.
func (h *handle) close() error {
	if h.closed {
		return errors.WrapConflict(errors.ErrClosed, "framestore", "Close", "close handle")
	}
	h.closed = true
	var err error
	if h.writer != nil {
		err = h.writer.Close()
		h.writer = nil
		h.segment = ""
	}
	h.lock.Release()
	h.lock = nil
	if h.archiver != nil {
		h.archiver.Release()
		h.archiver = nil
	}
	if err != nil {
		return errors.WrapIO(err, "framestore", "Close", "close segment")
	}
	return nil
}
