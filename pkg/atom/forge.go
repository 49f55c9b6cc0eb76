package atom

import (
	"math"

	"github.com/justyntemme/lv2go/pkg/urid"
)

// Frame marks an open container (Tuple or Sequence) on a Forge.
type Frame struct {
	start int
}

// Forge writes atoms into a caller-owned buffer. It never grows the buffer:
// running out of space sets ErrOverflow and turns every further write into
// a no-op, so a block's worth of events can be forged on the audio thread.
type Forge struct {
	types Types
	buf   []byte
	off   int
	err   error
}

// NewForge creates a forge writing to buf.
func NewForge(buf []byte, t Types) *Forge {
	return &Forge{types: t, buf: buf}
}

// Reset discards everything written and starts over on buf.
func (f *Forge) Reset(buf []byte) {
	f.buf = buf
	f.off = 0
	f.err = nil
}

// Bytes returns the bytes written so far.
func (f *Forge) Bytes() []byte {
	return f.buf[:f.off]
}

// Len returns the number of bytes written.
func (f *Forge) Len() int {
	return f.off
}

// Err returns ErrOverflow once the buffer is exhausted.
func (f *Forge) Err() error {
	return f.err
}

// reserve returns the next n bytes of the buffer, or nil on overflow.
func (f *Forge) reserve(n int) []byte {
	if f.err != nil {
		return nil
	}
	if f.off+n > len(f.buf) {
		f.err = ErrOverflow
		return nil
	}
	b := f.buf[f.off : f.off+n]
	f.off += n
	return b
}

// header writes an atom header and returns the body slot of n bytes
// followed by zeroed padding.
func (f *Forge) header(typ urid.URID, n int) []byte {
	b := f.reserve(HeaderSize + Pad8(n))
	if b == nil {
		return nil
	}
	endian.PutUint32(b[0:4], uint32(n))
	endian.PutUint32(b[4:8], uint32(typ))
	clear(b[HeaderSize+n:])
	return b[HeaderSize : HeaderSize+n]
}

func (f *Forge) put32(typ urid.URID, v uint32) {
	if b := f.header(typ, 4); b != nil {
		endian.PutUint32(b, v)
	}
}

func (f *Forge) put64(typ urid.URID, v uint64) {
	if b := f.header(typ, 8); b != nil {
		endian.PutUint64(b, v)
	}
}

// Int writes an Int atom.
func (f *Forge) Int(v int32) {
	f.put32(f.types.Int, uint32(v))
}

// Long writes a Long atom.
func (f *Forge) Long(v int64) {
	f.put64(f.types.Long, uint64(v))
}

// Float writes a Float atom.
func (f *Forge) Float(v float32) {
	f.put32(f.types.Float, math.Float32bits(v))
}

// Double writes a Double atom.
func (f *Forge) Double(v float64) {
	f.put64(f.types.Double, math.Float64bits(v))
}

// Bool writes a Bool atom.
func (f *Forge) Bool(v bool) {
	var n uint32
	if v {
		n = 1
	}
	f.put32(f.types.Bool, n)
}

// URID writes a URID atom.
func (f *Forge) URID(v urid.URID) {
	f.put32(f.types.URID, uint32(v))
}

func (f *Forge) text(typ urid.URID, s string) {
	if b := f.header(typ, len(s)+1); b != nil {
		copy(b, s)
		b[len(s)] = 0
	}
}

// String writes a NUL-terminated String atom.
func (f *Forge) String(s string) {
	f.text(f.types.String, s)
}

// URI writes a URI atom.
func (f *Forge) URI(s string) {
	f.text(f.types.URI, s)
}

// Path writes a Path atom.
func (f *Forge) Path(s string) {
	f.text(f.types.Path, s)
}

// Literal writes a Literal atom with optional datatype and language.
func (f *Forge) Literal(s string, datatype, lang urid.URID) {
	b := f.header(f.types.Literal, LiteralBodySize+len(s)+1)
	if b == nil {
		return
	}
	endian.PutUint32(b[0:4], uint32(datatype))
	endian.PutUint32(b[4:8], uint32(lang))
	copy(b[LiteralBodySize:], s)
	b[len(b)-1] = 0
}

// Vector writes a Vector atom from already encoded element bodies.
func (f *Forge) Vector(childType urid.URID, childSize int, elems []byte) {
	b := f.header(f.types.Vector, VectorBodySize+len(elems))
	if b == nil {
		return
	}
	endian.PutUint32(b[0:4], uint32(childSize))
	endian.PutUint32(b[4:8], uint32(childType))
	copy(b[VectorBodySize:], elems)
}

// Raw writes an atom of any type with the given body.
func (f *Forge) Raw(typ urid.URID, body []byte) {
	if b := f.header(typ, len(body)); b != nil {
		copy(b, body)
	}
}

// Tuple opens a Tuple. Close it with Pop.
func (f *Forge) Tuple() Frame {
	start := f.off
	if f.header(f.types.Tuple, 0) == nil {
		return Frame{start: -1}
	}
	return Frame{start: start}
}

// Sequence opens a Sequence with the given time unit (zero, FrameTime or
// BeatTime). Close it with Pop.
func (f *Forge) Sequence(unit urid.URID) Frame {
	start := f.off
	b := f.header(f.types.Sequence, SequenceBodySize)
	if b == nil {
		return Frame{start: -1}
	}
	endian.PutUint32(b[0:4], uint32(unit))
	endian.PutUint32(b[4:8], 0)
	return Frame{start: start}
}

// Pop closes fr, fixing up its size to cover everything written since it
// was opened.
func (f *Forge) Pop(fr Frame) {
	if fr.start < 0 || f.err != nil {
		return
	}
	size := f.off - fr.start - HeaderSize
	endian.PutUint32(f.buf[fr.start:], uint32(size))
}

// FrameTime writes an event time stamp in frames. The next atom written is
// the event body.
func (f *Forge) FrameTime(frames int64) {
	if b := f.reserve(TimeSize); b != nil {
		endian.PutUint64(b, uint64(frames))
	}
}

// BeatTime writes an event time stamp in beats.
func (f *Forge) BeatTime(beats float64) {
	if b := f.reserve(TimeSize); b != nil {
		endian.PutUint64(b, math.Float64bits(beats))
	}
}

// Event writes a frame-stamped event carrying a raw body.
func (f *Forge) Event(frames int64, typ urid.URID, body []byte) {
	f.FrameTime(frames)
	f.Raw(typ, body)
}
