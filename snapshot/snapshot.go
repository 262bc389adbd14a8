// Package snapshot implements the machine's save-state file format: a
// versioned header followed by a sequence of tagged, length-prefixed
// sections, one per component (CPU, memory, CIAs, drive, ...), each
// walking its own ownership tree the way cartridge mapper variants
// already expose a SaveState/RestoreState pair (see e.g.
// cartridge/actionreplay.go's actionReplayState). Grounded on
// original_source/trunk/C64/Snapshot.h's major/minor versioned binary
// blob, generalized from one big byte array into a section list so a
// version bump in one component doesn't invalidate every other.
package snapshot

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"io"

	"github.com/vc64/core/errors"
)

// Current format version. RestoreState from a file with a different
// Major is always rejected; Minor/Subminor differences are tolerated by
// convention (new, optional sections) but recorded for diagnostics.
const (
	Major    = 1
	Minor    = 0
	Subminor = 0
)

var magic = [4]byte{'V', 'C', '6', '4'}

// Component is anything with its own serialisable state: a Tag
// identifying the section in the file, plus the standard library's
// binary marshaling pair so the machine's own CPU/memory/CIA/drive types
// don't need snapshot-specific method names.
type Component interface {
	Tag() string
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// Writer accumulates tagged sections into a single snapshot image.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns a Writer with the format header already written.
func NewWriter() *Writer {
	w := &Writer{}
	w.buf.Write(magic[:])
	w.buf.WriteByte(Major)
	w.buf.WriteByte(Minor)
	w.buf.WriteByte(Subminor)
	return w
}

// Put appends one component's state as a tagged section.
func (w *Writer) Put(c Component) {
	tag := c.Tag()
	var tagBytes [8]byte
	copy(tagBytes[:], tag)

	payload, _ := c.MarshalBinary() // the stdlib contract requires this never fail for an in-memory encode
	w.buf.Write(tagBytes[:])
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(payload)))
	w.buf.Write(length[:])
	w.buf.Write(payload)
}

// Bytes returns the accumulated snapshot image.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// section is one decoded tagged block from a snapshot image.
type section struct {
	tag     string
	payload []byte
}

// Reader parses a snapshot image produced by Writer and hands each
// section's payload back to the matching Component.
type Reader struct {
	Major, Minor, Subminor uint8
	sections               map[string]section
}

// NewReader parses image's header and section table.
func NewReader(image []byte) (*Reader, error) {
	if len(image) < 7 || !bytes.Equal(image[:4], magic[:]) {
		return nil, errors.Errorf(errors.SnapshotFileError, "not a snapshot image")
	}
	r := &Reader{
		Major:    image[4],
		Minor:    image[5],
		Subminor: image[6],
		sections: make(map[string]section),
	}
	if r.Major != Major {
		return nil, errors.Errorf(errors.SnapshotVersionMismatch,
			r.Major, r.Minor, r.Subminor, Major, Minor, Subminor)
	}

	buf := bytes.NewReader(image[7:])
	for buf.Len() > 0 {
		var tagBytes [8]byte
		if _, err := io.ReadFull(buf, tagBytes[:]); err != nil {
			return nil, errors.Errorf(errors.SnapshotFileError, "truncated section tag")
		}
		var length [4]byte
		if _, err := io.ReadFull(buf, length[:]); err != nil {
			return nil, errors.Errorf(errors.SnapshotFileError, "truncated section length")
		}
		n := binary.LittleEndian.Uint32(length[:])
		payload := make([]byte, n)
		if _, err := io.ReadFull(buf, payload); err != nil {
			return nil, errors.Errorf(errors.SnapshotFileError, "truncated section payload")
		}

		tag := string(bytes.TrimRight(tagBytes[:], "\x00"))
		r.sections[tag] = section{tag: tag, payload: payload}
	}
	return r, nil
}

// Restore hands the matching section's payload (if present) to c. A
// missing section is not an error — it means the snapshot predates that
// component, and c is left at whatever state it already had.
func (r *Reader) Restore(c Component) error {
	s, ok := r.sections[c.Tag()]
	if !ok {
		return nil
	}
	return c.UnmarshalBinary(s.payload)
}
