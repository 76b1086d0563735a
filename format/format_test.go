package format

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunipkm/datastor/errors"
)

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	bin := NewBinary()
	require.NoError(t, bin.Initialize(&buf, "testprogram"))

	frames := make([][]byte, 8)
	for i := range frames {
		frames[i] = make([]byte, 16+i*37)
		_, err := rand.Read(frames[i])
		require.NoError(t, err)
		require.NoError(t, bin.Encode(&buf, frames[i]))
	}

	r, err := NewReader(&buf)
	require.NoError(t, err)
	require.Equal(t, BinaryVersion, r.Header().Version)
	require.Equal(t, "testprogram", r.Header().ProgName)

	for i := range frames {
		got, err := r.Next()
		require.NoError(t, err, "frame %d", i)
		require.Equal(t, frames[i], got, "frame %d", i)
	}
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestBinaryEmptySegment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "prog"))

	r, err := NewReader(&buf)
	require.NoError(t, err)
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestBinaryZeroLengthFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "prog"))
	require.NoError(t, WriteFrame(&buf, nil))

	r, err := NewReader(&buf)
	require.NoError(t, err)
	got, err := r.Next()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBinaryTruncatedFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "prog"))
	require.NoError(t, WriteFrame(&buf, []byte("payload")))

	// Chop the last two payload bytes, simulating a crashed writer.
	trunc := bytes.NewReader(buf.Bytes()[:buf.Len()-2])
	r, err := NewReader(trunc)
	require.NoError(t, err)
	_, err = r.Next()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestBinaryBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("NOPE\x00\x01\x00\x00")))
	require.ErrorIs(t, err, errors.ErrInvalidHeader)
	require.True(t, errors.IsData(err))
}

func TestBinaryRejectsNonByteFrame(t *testing.T) {
	var buf bytes.Buffer
	err := NewBinary().Encode(&buf, "not bytes")
	require.ErrorIs(t, err, errors.ErrInvalidFrame)
	require.True(t, errors.IsInvalid(err))
	require.Zero(t, buf.Len(), "nothing may be written on rejection")
}

func TestJSONDelimiterStream(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSON(nil)

	type frame struct {
		Seq  int    `json:"seq"`
		Name string `json:"name"`
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Encode(&buf, frame{Seq: i, Name: "tlm"}))
		_, err := buf.Write(j.Delimiter())
		require.NoError(t, err)
	}

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	require.JSONEq(t, `{"seq":1,"name":"tlm"}`, string(lines[1]))
}

func TestJSONCustomDelimiter(t *testing.T) {
	j := NewJSON([]byte{0x1e}) // RFC 7464 style record separator
	require.Equal(t, []byte{0x1e}, j.Delimiter())
}

func TestJSONUnserializable(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSON(nil).Encode(&buf, make(chan int))
	require.True(t, errors.IsInvalid(err))
}

func TestRawVerbatim(t *testing.T) {
	var buf bytes.Buffer
	r := NewRaw()
	require.NoError(t, r.Initialize(&buf, "prog"))
	require.NoError(t, r.Encode(&buf, []byte("abc")))
	require.NoError(t, r.Encode(&buf, []byte("def")))
	require.Equal(t, "abcdef", buf.String())
	require.Nil(t, r.Delimiter())
}

func TestTypeIDsDistinct(t *testing.T) {
	ids := map[string]bool{
		NewBinary().TypeID():  true,
		NewJSON(nil).TypeID(): true,
		NewRaw().TypeID():     true,
	}
	require.Len(t, ids, 3, "type identifiers must be distinct to namespace locks")
}
