// Package testutil provides shared helpers for datastor package tests.
package testutil

import (
	"archive/tar"
	"io"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/sunipkm/datastor/format"
)

// WaitFor polls cond until it returns true or the bounded wait elapses.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// WaitForArchive waits until <src>.tar.gz exists and the source path is
// gone, failing the test if that does not happen within the bounded wait.
func WaitForArchive(t *testing.T, src string, timeout time.Duration) string {
	t.Helper()
	archived := src + ".tar.gz"
	ok := WaitFor(t, timeout, func() bool {
		if _, err := os.Stat(archived); err != nil {
			return false
		}
		_, err := os.Stat(src)
		return os.IsNotExist(err)
	})
	if !ok {
		t.Fatalf("archive %s did not appear (or source survived) within %v", archived, timeout)
	}
	return archived
}

// ReadArchive extracts a tar.gz archive into a map of entry name to
// contents. Directory entries map to nil.
func ReadArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive %s: %v", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader for %s: %v", path, err)
	}
	defer gz.Close()

	entries := make(map[string][]byte)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar entry in %s: %v", path, err)
		}
		if hdr.Typeflag == tar.TypeDir {
			entries[hdr.Name] = nil
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar contents of %s in %s: %v", hdr.Name, path, err)
		}
		entries[hdr.Name] = data
	}
	return entries
}

// ReadBinarySegment reads a binary segment file back: header first, then
// every length-prefixed frame in write order.
func ReadBinarySegment(t *testing.T, path string) (format.Header, [][]byte) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open segment %s: %v", path, err)
	}
	defer f.Close()

	r, err := format.NewReader(f)
	if err != nil {
		t.Fatalf("segment header of %s: %v", path, err)
	}
	var frames [][]byte
	for {
		frame, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("frame %d of %s: %v", len(frames), path, err)
		}
		frames = append(frames, frame)
	}
	return r.Header(), frames
}
