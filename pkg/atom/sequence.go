package atom

import (
	"iter"
	"math"

	"github.com/justyntemme/lv2go/pkg/urid"
)

// Event is one time-stamped atom inside a Sequence.
type Event struct {
	time uint64
	body Atom
}

// Frames returns the time stamp as an audio frame offset.
func (e Event) Frames() int64 {
	return int64(e.time)
}

// Beats returns the time stamp as a beat position. The bits are the same
// as Frames; the sequence unit says which reading is meaningful.
func (e Event) Beats() float64 {
	return math.Float64frombits(e.time)
}

// Body returns the event's atom.
func (e Event) Body() Atom {
	return e.body
}

// Type returns the type URID of the event's atom.
func (e Event) Type() urid.URID {
	return e.body.Type()
}

// Size returns the body size of the event's atom.
func (e Event) Size() int {
	return e.body.Size()
}

// Sequence is a time-ordered run of events.
type Sequence struct {
	unit   urid.URID
	size   int
	events []byte
}

// SequenceOf views the body of a as a sequence without checking its type.
// Port buffers declared as sequences are read this way.
func SequenceOf(a Atom) (Sequence, error) {
	if a.IsZero() {
		return Sequence{}, nil
	}
	body := a.Body()
	if len(body) < SequenceBodySize {
		return Sequence{}, ErrTruncated
	}
	return Sequence{
		unit:   urid.URID(endian.Uint32(body[0:4])),
		size:   len(body),
		events: body[SequenceBodySize:],
	}, nil
}

// Unit returns the time unit URID. Zero means audio frames.
func (s Sequence) Unit() urid.URID {
	return s.unit
}

// InFrames reports whether event times are frame offsets.
func (s Sequence) InFrames(t Types) bool {
	return s.unit == 0 || s.unit == t.FrameTime
}

// Size returns the declared body size of the sequence atom.
func (s Sequence) Size() int {
	return s.size
}

// Iter returns an iterator positioned before the first event. Every call
// starts from the beginning.
func (s Sequence) Iter() Iterator {
	return Iterator{data: s.events}
}

// All returns the events as a range-over-func sequence.
func (s Sequence) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		it := s.Iter()
		for it.Next() {
			if !yield(it.Event()) {
				return
			}
		}
	}
}

// Len counts the complete events.
func (s Sequence) Len() int {
	n := 0
	it := s.Iter()
	for it.Next() {
		n++
	}
	return n
}

// Iterator walks the events of a Sequence. It never reads past the declared
// sequence size: an event whose padded extent crosses the end is dropped and
// reported by Err.
type Iterator struct {
	data []byte
	off  int
	cur  Event
	err  error
}

// Next advances to the next event.
func (it *Iterator) Next() bool {
	if it.off >= len(it.data) {
		return false
	}
	rest := it.data[it.off:]
	if len(rest) < EventHeaderSize {
		return it.clip()
	}
	size := int(endian.Uint32(rest[TimeSize:]))
	step := EventHeaderSize + Pad8(size)
	if step > len(rest) {
		return it.clip()
	}
	end := EventHeaderSize + size
	it.cur = Event{
		time: endian.Uint64(rest),
		body: Atom{buf: rest[TimeSize:end:end]},
	}
	it.off += step
	return true
}

func (it *Iterator) clip() bool {
	it.off = len(it.data)
	it.err = ErrTruncated
	it.cur = Event{}
	return false
}

// Event returns the current event.
func (it *Iterator) Event() Event {
	return it.cur
}

// Offset returns the byte offset of the next event from the first event.
func (it *Iterator) Offset() int {
	return it.off
}

// Err returns ErrTruncated if iteration stopped at a clipped event.
func (it *Iterator) Err() error {
	return it.err
}

// Tuple is a run of atoms with no extra metadata.
type Tuple struct {
	body []byte
}

// Iter returns an iterator over the tuple members.
func (t Tuple) Iter() TupleIterator {
	return TupleIterator{data: t.body}
}

// All returns the members as a range-over-func sequence.
func (t Tuple) All() iter.Seq[Atom] {
	return func(yield func(Atom) bool) {
		it := t.Iter()
		for it.Next() {
			if !yield(it.Atom()) {
				return
			}
		}
	}
}

// TupleIterator walks the members of a Tuple.
type TupleIterator struct {
	data []byte
	off  int
	cur  Atom
	err  error
}

// Next advances to the next member.
func (it *TupleIterator) Next() bool {
	if it.off >= len(it.data) {
		return false
	}
	rest := it.data[it.off:]
	a, err := Parse(rest)
	if err != nil {
		it.off = len(it.data)
		it.err = err
		return false
	}
	it.cur = a
	it.off += min(a.PaddedSize(), len(rest))
	return true
}

// Atom returns the current member.
func (it *TupleIterator) Atom() Atom {
	return it.cur
}

// Err returns the decode failure that stopped iteration, if any.
func (it *TupleIterator) Err() error {
	return it.err
}
