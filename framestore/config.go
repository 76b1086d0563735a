package framestore

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sunipkm/datastor/archive"
	"github.com/sunipkm/datastor/errors"
	"github.com/sunipkm/datastor/format"
)

// Config holds the construction-time configuration shared by all store
// handles. There are no other tunables: datastor is an embeddable library
// and loads nothing from files or the environment.
type Config struct {
	// Root is the directory under which all segments are created. It is
	// created if absent.
	Root string

	// Format selects the storage format capability (Binary, JSON, Raw).
	Format format.Capability

	// ProgName is the producing program's name, embedded in binary
	// segment headers. Defaults to the base name of the running
	// executable.
	ProgName string

	// Archiver, when non-nil, receives retired segments for background
	// compression. The handle retains a reference for its lifetime.
	// When nil, retired segments are left on disk uncompressed.
	Archiver *archive.Service

	// Logger receives rotation and teardown events. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.WrapInvalid(nil, "framestore", "Validate", "root directory is required")
	}
	if c.Format == nil {
		return errors.WrapInvalid(nil, "framestore", "Validate", "format capability is required")
	}
	if c.ProgName == "" {
		c.ProgName = filepath.Base(os.Args[0])
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
