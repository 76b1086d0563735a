package format

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/sunipkm/datastor/errors"
)

// Binary segment layout:
//
//	magic "DSTR" | version u16 BE | prognameLen u16 BE | progname
//	frameLen u32 BE | payload   (repeated until EOF)
const (
	// BinaryVersion is the current binary segment format version.
	BinaryVersion uint16 = 1

	// MaxFrameLen is the largest payload representable in the frame
	// length field. Larger payloads are rejected before any bytes are
	// written.
	MaxFrameLen = math.MaxUint32
)

var binaryMagic = [4]byte{'D', 'S', 'T', 'R'}

// Header holds the decoded binary segment header.
type Header struct {
	Version  uint16
	ProgName string
}

// WriteHeader writes the binary segment header: magic, format version and
// the producing program's name. It is written exactly once, at segment
// creation.
func WriteHeader(w io.Writer, progName string) error {
	if len(progName) > math.MaxUint16 {
		return errors.WrapInvalid(errors.ErrInvalidHeader, "format", "WriteHeader", "program name too long")
	}
	buf := make([]byte, 0, len(binaryMagic)+4+len(progName))
	buf = append(buf, binaryMagic[:]...)
	buf = binary.BigEndian.AppendUint16(buf, BinaryVersion)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(progName)))
	buf = append(buf, progName...)
	if _, err := w.Write(buf); err != nil {
		return errors.WrapIO(err, "format", "WriteHeader", "write header")
	}
	return nil
}

// WriteFrame writes one length-prefixed frame. Payloads whose size cannot
// be represented in the 4-byte length field are rejected up front.
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > MaxFrameLen {
		return errors.WrapInvalid(errors.ErrPayloadTooLarge, "format", "WriteFrame", "payload exceeds 4 GiB frame limit")
	}
	var lenbuf [4]byte
	binary.BigEndian.PutUint32(lenbuf[:], uint32(len(payload)))
	if _, err := w.Write(lenbuf[:]); err != nil {
		return errors.WrapIO(err, "format", "WriteFrame", "write length prefix")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.WrapIO(err, "format", "WriteFrame", "write payload")
	}
	return nil
}

// Reader iterates the frames of a binary segment. The header is consumed
// once at construction; Next then yields payloads in write order until
// io.EOF.
type Reader struct {
	r      *bufio.Reader
	header Header
}

// NewReader consumes and validates the segment header and returns a frame
// iterator over the remainder of the stream.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, errors.WrapData(errors.ErrInvalidHeader, "format", "NewReader", "read magic")
	}
	if magic != binaryMagic {
		return nil, errors.WrapData(errors.ErrInvalidHeader, "format", "NewReader", "bad magic")
	}

	var fixed [4]byte
	if _, err := io.ReadFull(br, fixed[:]); err != nil {
		return nil, errors.WrapData(errors.ErrInvalidHeader, "format", "NewReader", "read version")
	}
	version := binary.BigEndian.Uint16(fixed[0:2])
	nameLen := binary.BigEndian.Uint16(fixed[2:4])

	name := make([]byte, nameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, errors.WrapData(errors.ErrInvalidHeader, "format", "NewReader", "read program name")
	}

	return &Reader{
		r:      br,
		header: Header{Version: version, ProgName: string(name)},
	}, nil
}

// Header returns the decoded segment header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next frame payload, or io.EOF when the segment is
// exhausted. A truncated trailing frame surfaces as io.ErrUnexpectedEOF.
func (r *Reader) Next() ([]byte, error) {
	var lenbuf [4]byte
	if _, err := io.ReadFull(r.r, lenbuf[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, binary.BigEndian.Uint32(lenbuf[:]))
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	return payload, nil
}
