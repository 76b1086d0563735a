// Package format provides the closed set of storage format capabilities
// used by the framestore handles: Binary, JSON, and Raw.
package format

import (
	"encoding/json"
	"io"

	"github.com/sunipkm/datastor/errors"
)

// Capability describes one storage format. The set of implementations is
// closed (Binary, JSON, Raw); a capability is chosen once at store
// construction and never changes for the lifetime of a handle.
type Capability interface {
	// Extension returns the file extension for segments of this format,
	// without the leading dot.
	Extension() string

	// Initialize writes the format's one-time segment header. It runs
	// exactly once, when a segment file is newly created; reopened
	// segments skip it so an existing header is never corrupted.
	Initialize(w io.Writer, progName string) error

	// Encode writes one frame. Binary frames are length-prefixed, JSON
	// frames are marshaled values, Raw frames are verbatim bytes.
	Encode(w io.Writer, frame any) error

	// Delimiter returns the inter-record delimiter written after each
	// frame in append modes, or nil when the format needs none.
	Delimiter() []byte

	// TypeID returns the stable identifier used to namespace exclusive
	// locks, so heterogeneous formats coexist safely under one root.
	TypeID() string
}

// Binary stores frames as a version header followed by length-prefixed
// payloads. See WriteHeader and WriteFrame for the wire layout.
type Binary struct{}

// NewBinary returns the binary format capability.
func NewBinary() Binary { return Binary{} }

// Extension returns "dat".
func (Binary) Extension() string { return "dat" }

// Initialize writes the binary segment header.
func (Binary) Initialize(w io.Writer, progName string) error {
	return WriteHeader(w, progName)
}

// Encode writes one length-prefixed frame. The frame must be []byte.
func (Binary) Encode(w io.Writer, frame any) error {
	payload, ok := frame.([]byte)
	if !ok {
		return errors.WrapInvalid(errors.ErrInvalidFrame, "format", "Encode", "binary frame must be []byte")
	}
	return WriteFrame(w, payload)
}

// Delimiter returns nil; binary frames are self-delimiting.
func (Binary) Delimiter() []byte { return nil }

// TypeID returns "binary".
func (Binary) TypeID() string { return "binary" }

// JSON stores each frame as a marshaled JSON value followed by a
// caller-chosen delimiter. A multi-frame file is a delimiter-separated
// stream of values, not one JSON document. There is no segment header.
type JSON struct {
	delim []byte
}

// NewJSON returns the JSON format capability. A nil delimiter selects the
// default newline.
func NewJSON(delim []byte) JSON {
	if delim == nil {
		delim = []byte("\n")
	}
	return JSON{delim: delim}
}

// Extension returns "json".
func (JSON) Extension() string { return "json" }

// Initialize is a no-op; JSON segments carry no header.
func (JSON) Initialize(io.Writer, string) error { return nil }

// Encode marshals the frame as one JSON value.
func (JSON) Encode(w io.Writer, frame any) error {
	b, err := json.Marshal(frame)
	if err != nil {
		return errors.WrapInvalid(err, "format", "Encode", "marshal frame")
	}
	if _, err := w.Write(b); err != nil {
		return errors.WrapIO(err, "format", "Encode", "write frame")
	}
	return nil
}

// Delimiter returns the inter-record delimiter chosen at construction.
func (j JSON) Delimiter() []byte { return j.delim }

// TypeID returns "json".
func (JSON) TypeID() string { return "json" }

// Raw stores bytes verbatim: no header, no framing, no delimiters.
type Raw struct{}

// NewRaw returns the raw format capability.
func NewRaw() Raw { return Raw{} }

// Extension returns "bin".
func (Raw) Extension() string { return "bin" }

// Initialize is a no-op; raw segments carry no header.
func (Raw) Initialize(io.Writer, string) error { return nil }

// Encode writes the frame bytes verbatim. The frame must be []byte.
func (Raw) Encode(w io.Writer, frame any) error {
	payload, ok := frame.([]byte)
	if !ok {
		return errors.WrapInvalid(errors.ErrInvalidFrame, "format", "Encode", "raw frame must be []byte")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.WrapIO(err, "format", "Encode", "write frame")
	}
	return nil
}

// Delimiter returns nil.
func (Raw) Delimiter() []byte { return nil }

// TypeID returns "raw".
func (Raw) TypeID() string { return "raw" }
