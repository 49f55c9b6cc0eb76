package atom

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/urid"
)

// KindError is the panic value of a typed accessor called on an atom of a
// different kind. Callers are expected to branch on the type first.
type KindError struct {
	Want Kind
	Got  Kind
	Size int
}

func (e *KindError) Error() string {
	if e.Want == e.Got {
		return fmt.Sprintf("atom: %s body of %d bytes is too short", e.Want, e.Size)
	}
	return fmt.Sprintf("atom: %s accessor used on %s atom", e.Want, e.Got)
}

// Decoder interprets atoms using a resolved type table.
type Decoder struct {
	types Types
}

// NewDecoder creates a decoder for the given type table.
func NewDecoder(t Types) Decoder {
	return Decoder{types: t}
}

// Types returns the decoder's type table.
func (d Decoder) Types() Types {
	return d.types
}

// Kind returns the layout of a.
func (d Decoder) Kind(a Atom) Kind {
	return d.types.Kind(a.Type())
}

// body returns the body of a when it has kind k and at least n bytes, and
// panics otherwise.
func (d Decoder) body(a Atom, k Kind, n int) []byte {
	got := d.Kind(a)
	if got != k || a.Size() < n {
		panic(&KindError{Want: k, Got: got, Size: a.Size()})
	}
	return a.Body()
}

// Int returns the value of an Int atom.
func (d Decoder) Int(a Atom) int32 {
	return int32(endian.Uint32(d.body(a, KindInt, 4)))
}

// Long returns the value of a Long atom.
func (d Decoder) Long(a Atom) int64 {
	return int64(endian.Uint64(d.body(a, KindLong, 8)))
}

// Float returns the value of a Float atom.
func (d Decoder) Float(a Atom) float32 {
	return math.Float32frombits(endian.Uint32(d.body(a, KindFloat, 4)))
}

// Double returns the value of a Double atom.
func (d Decoder) Double(a Atom) float64 {
	return math.Float64frombits(endian.Uint64(d.body(a, KindDouble, 8)))
}

// Bool returns the value of a Bool atom. Any non-zero body is true.
func (d Decoder) Bool(a Atom) bool {
	return endian.Uint32(d.body(a, KindBool, 4)) != 0
}

// URID returns the value of a URID atom.
func (d Decoder) URID(a Atom) urid.URID {
	return urid.URID(endian.Uint32(d.body(a, KindURID, 4)))
}

// Value is a decoded scalar. Its accessors reinterpret the stored bits and
// should be chosen from Kind.
type Value struct {
	Kind Kind
	bits uint64
}

// Int returns the value of a KindInt scalar.
func (v Value) Int() int32 { return int32(uint32(v.bits)) }

// Long returns the value of a KindLong scalar.
func (v Value) Long() int64 { return int64(v.bits) }

// Float returns the value of a KindFloat scalar.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }

// Double returns the value of a KindDouble scalar.
func (v Value) Double() float64 { return math.Float64frombits(v.bits) }

// Bool returns the value of a KindBool scalar.
func (v Value) Bool() bool { return uint32(v.bits) != 0 }

// URID returns the value of a KindURID scalar.
func (v Value) URID() urid.URID { return urid.URID(uint32(v.bits)) }

// Bits returns the raw body bits, zero-extended for 32-bit kinds.
func (v Value) Bits() uint64 { return v.bits }

func scalarWidth(k Kind) int {
	switch k {
	case KindLong, KindDouble:
		return 8
	case KindInt, KindFloat, KindBool, KindURID:
		return 4
	}
	return 0
}

// Scalar decodes any scalar atom without panicking. Non-scalar types fail
// with ErrNotScalar and short bodies with ErrTruncated.
func (d Decoder) Scalar(a Atom) (Value, error) {
	k := d.Kind(a)
	if !k.IsScalar() {
		return Value{}, ErrNotScalar
	}
	width := scalarWidth(k)
	if a.Size() < width {
		return Value{}, ErrTruncated
	}
	v := Value{Kind: k}
	body := a.Body()
	if width == 8 {
		v.bits = endian.Uint64(body)
	} else {
		v.bits = uint64(endian.Uint32(body))
	}
	return v, nil
}

// Text returns the content of a String, URI, Path or Literal atom. The
// string aliases the atom body: it ends at the first NUL or at the declared
// size and is only valid as long as the underlying buffer is.
func (d Decoder) Text(a Atom) (string, error) {
	k := d.Kind(a)
	if !k.IsText() {
		return "", ErrWrongType
	}
	body := a.Body()
	if k == KindLiteral {
		if len(body) < LiteralBodySize {
			return "", ErrTruncated
		}
		body = body[LiteralBodySize:]
	}
	return text(body)
}

func text(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidText
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(&b[0], len(b)), nil
}

// Literal is a decoded Literal atom.
type Literal struct {
	Datatype urid.URID
	Lang     urid.URID
	Text     string
}

// Literal decodes a Literal atom.
func (d Decoder) Literal(a Atom) (Literal, error) {
	if d.Kind(a) != KindLiteral {
		return Literal{}, ErrWrongType
	}
	body := a.Body()
	if len(body) < LiteralBodySize {
		return Literal{}, ErrTruncated
	}
	s, err := text(body[LiteralBodySize:])
	if err != nil {
		return Literal{}, err
	}
	return Literal{
		Datatype: urid.URID(endian.Uint32(body[0:4])),
		Lang:     urid.URID(endian.Uint32(body[4:8])),
		Text:     s,
	}, nil
}

// Vector is a decoded Vector atom: a packed array of equally sized bodies
// of one child type.
type Vector struct {
	ChildSize int
	ChildType urid.URID
	data      []byte
}

// Len returns the number of complete elements.
func (v Vector) Len() int {
	if v.ChildSize == 0 {
		return 0
	}
	return len(v.data) / v.ChildSize
}

// Elem returns the body bytes of element i.
func (v Vector) Elem(i int) []byte {
	off := i * v.ChildSize
	return v.data[off : off+v.ChildSize : off+v.ChildSize]
}

// Vector decodes a Vector atom.
func (d Decoder) Vector(a Atom) (Vector, error) {
	if d.Kind(a) != KindVector {
		return Vector{}, ErrWrongType
	}
	body := a.Body()
	if len(body) < VectorBodySize {
		return Vector{}, ErrTruncated
	}
	return Vector{
		ChildSize: int(endian.Uint32(body[0:4])),
		ChildType: urid.URID(endian.Uint32(body[4:8])),
		data:      body[VectorBodySize:],
	}, nil
}

// Tuple decodes a Tuple atom.
func (d Decoder) Tuple(a Atom) (Tuple, error) {
	if d.Kind(a) != KindTuple {
		return Tuple{}, ErrWrongType
	}
	return Tuple{body: a.Body()}, nil
}

// Sequence decodes a Sequence atom.
func (d Decoder) Sequence(a Atom) (Sequence, error) {
	if d.Kind(a) != KindSequence {
		return Sequence{}, ErrWrongType
	}
	return SequenceOf(a)
}
