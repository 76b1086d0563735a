// Package format defines the storage format capabilities for datastor
// segments.
//
// # Overview
//
// A format capability is chosen once, at store construction, and controls
// three things for every segment that handle touches:
//
//   - the file extension of segment files
//   - the one-time initialization performed when a segment is created
//     (the binary format writes a version header; JSON and Raw write nothing)
//   - how each frame is encoded into the open segment
//
// The set of capabilities is deliberately closed: Binary, JSON, and Raw.
// The TypeID of the chosen capability also namespaces the cross-process
// exclusive lock, so a binary writer and a JSON writer can share one root
// directory without contending.
//
// # Binary layout
//
// A binary segment begins with a fixed header, written exactly once at
// creation:
//
//	"DSTR" | version (u16 BE) | len(progname) (u16 BE) | progname
//
// followed by zero or more frames, each a 4-byte big-endian length prefix
// and exactly that many payload bytes. A payload larger than 4 GiB is
// rejected with ErrPayloadTooLarge before anything is written. Use Reader
// to consume a segment: the header is read once, then frames iterate in
// write order until io.EOF.
//
// # JSON and Raw
//
// JSON segments have no header; each frame is one marshaled value followed
// by a caller-chosen delimiter (newline by default). The file is a
// delimiter-separated stream, not a single JSON document. Raw segments are
// verbatim bytes with no framing at all.
package format
