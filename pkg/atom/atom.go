// Package atom decodes and encodes LV2 atoms: self-describing binary values
// made of an 8-byte header (body size, type URID) followed by a body whose
// layout depends only on the type.
//
// Every view in this package borrows its bytes. Atoms read from a port are
// only valid for the processing call that delivered them and must not be
// retained afterwards.
package atom

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/urid"
)

const (
	// HeaderSize is the size of an atom header: 4 bytes size, 4 bytes type.
	HeaderSize = 8
	// TimeSize is the size of the time stamp that precedes an event body.
	TimeSize = 8
	// EventHeaderSize is the time stamp plus the nested atom header.
	EventHeaderSize = TimeSize + HeaderSize
	// SequenceBodySize is the unit URID plus padding at the start of a
	// sequence body.
	SequenceBodySize = 8
	// VectorBodySize is the child size and child type at the start of a
	// vector body.
	VectorBodySize = 8
	// LiteralBodySize is the datatype and language at the start of a
	// literal body.
	LiteralBodySize = 8
)

// Atoms are stored in host byte order.
var endian = binary.NativeEndian

var (
	// ErrTruncated means a declared size does not fit the available bytes.
	ErrTruncated = errors.New("atom: declared size exceeds buffer")
	// ErrInvalidText means a text atom holds malformed UTF-8.
	ErrInvalidText = errors.New("atom: text is not valid UTF-8")
	// ErrNotScalar means a scalar decode was requested for a non-scalar type.
	ErrNotScalar = errors.New("atom: not a scalar type")
	// ErrWrongType means the atom type does not match the requested layout.
	ErrWrongType = errors.New("atom: unexpected type")
	// ErrOverflow means a Forge ran out of buffer space.
	ErrOverflow = errors.New("atom: forge buffer overflow")
)

// Pad8 rounds n up to the next multiple of 8.
func Pad8(n int) int {
	return (n + 7) &^ 7
}

// Header is the fixed prefix of every atom. Size is the body length and
// never includes the header or trailing padding.
type Header struct {
	Size uint32
	Type urid.URID
}

// ReadHeader reads the header at the start of b.
func ReadHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncated
	}
	return Header{
		Size: endian.Uint32(b[0:4]),
		Type: urid.URID(endian.Uint32(b[4:8])),
	}, nil
}

// Atom is a read-only view of a header and its unpadded body.
type Atom struct {
	buf []byte
}

// Parse returns the atom at the start of b. It fails with ErrTruncated when
// the declared body size does not fit in b.
func Parse(b []byte) (Atom, error) {
	h, err := ReadHeader(b)
	if err != nil {
		return Atom{}, err
	}
	end := HeaderSize + int(h.Size)
	if end > len(b) {
		return Atom{}, ErrTruncated
	}
	return Atom{buf: b[:end:end]}, nil
}

// FromPointer views the atom a host placed at p. The host guarantees that
// the header and the declared body are readable for the current block.
func FromPointer(p unsafe.Pointer) Atom {
	if p == nil {
		return Atom{}
	}
	hdr := unsafe.Slice((*byte)(p), HeaderSize)
	size := int(endian.Uint32(hdr))
	return Atom{buf: unsafe.Slice((*byte)(p), HeaderSize+size)}
}

// IsZero reports whether a refers to no atom at all.
func (a Atom) IsZero() bool {
	return len(a.buf) < HeaderSize
}

// Header returns the atom header.
func (a Atom) Header() Header {
	if a.IsZero() {
		return Header{}
	}
	return Header{
		Size: endian.Uint32(a.buf[0:4]),
		Type: urid.URID(endian.Uint32(a.buf[4:8])),
	}
}

// Type returns the type URID.
func (a Atom) Type() urid.URID {
	if a.IsZero() {
		return 0
	}
	return urid.URID(endian.Uint32(a.buf[4:8]))
}

// Size returns the body size in bytes.
func (a Atom) Size() int {
	return len(a.buf) - HeaderSize
}

// PaddedSize returns the number of bytes the atom occupies inside a
// container, header included.
func (a Atom) PaddedSize() int {
	return HeaderSize + Pad8(a.Size())
}

// Body returns the body bytes.
func (a Atom) Body() []byte {
	if a.IsZero() {
		return nil
	}
	return a.buf[HeaderSize:]
}

// Bytes returns header and body.
func (a Atom) Bytes() []byte {
	return a.buf
}
