package atom

import (
	"errors"
	"math"
	"testing"

	"github.com/justyntemme/lv2go/pkg/urid"
)

func newTestTypes(t testing.TB) (Types, *urid.Map) {
	t.Helper()
	m := urid.NewMap()
	types, err := NewTypes(m)
	if err != nil {
		t.Fatalf("NewTypes failed: %v", err)
	}
	return types, m
}

func TestPad8(t *testing.T) {
	for n := 0; n < 1024; n++ {
		p := Pad8(n)
		if Pad8(p) != p {
			t.Errorf("Pad8 not idempotent for %d: %d -> %d", n, p, Pad8(p))
		}
		if p < n {
			t.Errorf("Pad8(%d) = %d is smaller than input", n, p)
		}
		if p-n >= 8 {
			t.Errorf("Pad8(%d) = %d pads by 8 or more", n, p)
		}
		if p%8 != 0 {
			t.Errorf("Pad8(%d) = %d is not a multiple of 8", n, p)
		}
	}
}

func TestReadHeader(t *testing.T) {
	types, _ := newTestTypes(t)
	buf := make([]byte, 64)
	f := NewForge(buf, types)
	f.Int(42)

	h, err := ReadHeader(f.Bytes())
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Size != 4 {
		t.Errorf("Expected size 4, got %d", h.Size)
	}
	if h.Type != types.Int {
		t.Errorf("Expected type %d, got %d", types.Int, h.Type)
	}
	if f.Len() != 16 {
		t.Errorf("Expected padded length 16, got %d", f.Len())
	}

	if _, err := ReadHeader(buf[:7]); !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated for short header, got %v", err)
	}
}

func TestParse(t *testing.T) {
	types, _ := newTestTypes(t)
	buf := make([]byte, 64)
	f := NewForge(buf, types)
	f.Long(-7)

	a, err := Parse(f.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if a.Size() != 8 || a.PaddedSize() != 16 {
		t.Errorf("Unexpected sizes: size=%d padded=%d", a.Size(), a.PaddedSize())
	}

	// Declared size larger than the buffer.
	if _, err := Parse(f.Bytes()[:12]); !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated, got %v", err)
	}
}

func TestScalarRoundTrip(t *testing.T) {
	types, _ := newTestTypes(t)
	d := NewDecoder(types)

	ints := []int32{0, 1, -1, math.MaxInt32, math.MinInt32}
	longs := []int64{0, -1, math.MaxInt64, math.MinInt64}
	floats := []float32{0, -0.5, math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(-1))}
	doubles := []float64{0, 3.141592653589793, -math.MaxFloat64, math.NaN()}

	buf := make([]byte, 64)
	f := NewForge(buf, types)

	for _, v := range ints {
		f.Reset(buf)
		f.Int(v)
		a, _ := Parse(f.Bytes())
		if got := d.Int(a); got != v {
			t.Errorf("Int round trip: want %d, got %d", v, got)
		}
		s, err := d.Scalar(a)
		if err != nil || s.Kind != KindInt || s.Int() != v {
			t.Errorf("Scalar(Int %d) = %v, %v", v, s, err)
		}
	}

	for _, v := range longs {
		f.Reset(buf)
		f.Long(v)
		a, _ := Parse(f.Bytes())
		if got := d.Long(a); got != v {
			t.Errorf("Long round trip: want %d, got %d", v, got)
		}
	}

	for _, v := range floats {
		f.Reset(buf)
		f.Float(v)
		a, _ := Parse(f.Bytes())
		if got := d.Float(a); math.Float32bits(got) != math.Float32bits(v) {
			t.Errorf("Float round trip: want %v, got %v", v, got)
		}
	}

	for _, v := range doubles {
		f.Reset(buf)
		f.Double(v)
		a, _ := Parse(f.Bytes())
		if got := d.Double(a); math.Float64bits(got) != math.Float64bits(v) {
			t.Errorf("Double round trip: want %v, got %v", v, got)
		}
		s, _ := d.Scalar(a)
		if s.Bits() != math.Float64bits(v) {
			t.Errorf("Scalar(Double) bits: want %#x, got %#x", math.Float64bits(v), s.Bits())
		}
	}

	for _, v := range []bool{true, false} {
		f.Reset(buf)
		f.Bool(v)
		a, _ := Parse(f.Bytes())
		if got := d.Bool(a); got != v {
			t.Errorf("Bool round trip: want %v, got %v", v, got)
		}
	}

	f.Reset(buf)
	f.URID(types.Sequence)
	a, _ := Parse(f.Bytes())
	if got := d.URID(a); got != types.Sequence {
		t.Errorf("URID round trip: want %d, got %d", types.Sequence, got)
	}
}

func TestBoolNonZeroIsTrue(t *testing.T) {
	types, _ := newTestTypes(t)
	buf := make([]byte, 32)
	f := NewForge(buf, types)
	f.Raw(types.Bool, []byte{0, 2, 0, 0})
	a, _ := Parse(f.Bytes())
	if !NewDecoder(types).Bool(a) {
		t.Error("Expected non-zero Bool body to decode as true")
	}
}

func TestScalarKindMismatch(t *testing.T) {
	types, _ := newTestTypes(t)
	d := NewDecoder(types)
	buf := make([]byte, 64)
	f := NewForge(buf, types)
	f.String("hello")
	a, _ := Parse(f.Bytes())

	t.Run("AccessorPanics", func(t *testing.T) {
		defer func() {
			r := recover()
			ke, ok := r.(*KindError)
			if !ok {
				t.Fatalf("Expected *KindError panic, got %v", r)
			}
			if ke.Want != KindInt || ke.Got != KindString {
				t.Errorf("Unexpected kind error: %v", ke)
			}
		}()
		d.Int(a)
	})

	t.Run("ScalarReturnsError", func(t *testing.T) {
		if _, err := d.Scalar(a); !errors.Is(err, ErrNotScalar) {
			t.Errorf("Expected ErrNotScalar, got %v", err)
		}
	})

	t.Run("ShortBody", func(t *testing.T) {
		f.Reset(buf)
		f.Raw(types.Long, []byte{1, 2, 3, 4})
		short, _ := Parse(f.Bytes())
		if _, err := d.Scalar(short); !errors.Is(err, ErrTruncated) {
			t.Errorf("Expected ErrTruncated, got %v", err)
		}
	})
}

func TestText(t *testing.T) {
	types, m := newTestTypes(t)
	d := NewDecoder(types)
	buf := make([]byte, 256)
	f := NewForge(buf, types)

	t.Run("String", func(t *testing.T) {
		f.Reset(buf)
		f.String("héllo wörld")
		a, _ := Parse(f.Bytes())
		s, err := d.Text(a)
		if err != nil || s != "héllo wörld" {
			t.Errorf("Text = %q, %v", s, err)
		}
		if a.Size() != len("héllo wörld")+1 {
			t.Errorf("Expected size to include the NUL, got %d", a.Size())
		}
	})

	t.Run("Literal", func(t *testing.T) {
		lang := m.Map("http://lexvo.org/id/iso639-1/en")
		f.Reset(buf)
		f.Literal("colour", 0, lang)
		a, _ := Parse(f.Bytes())
		lit, err := d.Literal(a)
		if err != nil {
			t.Fatalf("Literal failed: %v", err)
		}
		if lit.Text != "colour" || lit.Lang != lang || lit.Datatype != 0 {
			t.Errorf("Unexpected literal %+v", lit)
		}
		if s, _ := d.Text(a); s != "colour" {
			t.Errorf("Text of literal = %q", s)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		f.Reset(buf)
		f.Raw(types.String, []byte{'a', 0xff, 0xfe, 0})
		a, _ := Parse(f.Bytes())
		if _, err := d.Text(a); !errors.Is(err, ErrInvalidText) {
			t.Errorf("Expected ErrInvalidText, got %v", err)
		}
	})

	t.Run("BoundedBySize", func(t *testing.T) {
		f.Reset(buf)
		f.Raw(types.Path, []byte("/tmp/x"))
		a, _ := Parse(f.Bytes())
		if s, err := d.Text(a); err != nil || s != "/tmp/x" {
			t.Errorf("Text = %q, %v", s, err)
		}
	})

	t.Run("WrongType", func(t *testing.T) {
		f.Reset(buf)
		f.Int(1)
		a, _ := Parse(f.Bytes())
		if _, err := d.Text(a); !errors.Is(err, ErrWrongType) {
			t.Errorf("Expected ErrWrongType, got %v", err)
		}
	})
}

func TestTuple(t *testing.T) {
	types, _ := newTestTypes(t)
	d := NewDecoder(types)
	buf := make([]byte, 256)
	f := NewForge(buf, types)

	fr := f.Tuple()
	f.Int(1)
	f.String("two")
	f.Double(3)
	f.Pop(fr)

	a, err := Parse(f.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tup, err := d.Tuple(a)
	if err != nil {
		t.Fatalf("Tuple failed: %v", err)
	}

	var kinds []Kind
	for member := range tup.All() {
		kinds = append(kinds, d.Kind(member))
	}
	want := []Kind{KindInt, KindString, KindDouble}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %d members, got %v", len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Member %d: want %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestVector(t *testing.T) {
	types, _ := newTestTypes(t)
	d := NewDecoder(types)
	buf := make([]byte, 128)
	f := NewForge(buf, types)

	elems := make([]byte, 12)
	for i, v := range []int32{10, 20, 30} {
		endian.PutUint32(elems[i*4:], uint32(v))
	}
	f.Vector(types.Int, 4, elems)

	a, _ := Parse(f.Bytes())
	vec, err := d.Vector(a)
	if err != nil {
		t.Fatalf("Vector failed: %v", err)
	}
	if vec.Len() != 3 || vec.ChildType != types.Int {
		t.Fatalf("Unexpected vector: len=%d type=%d", vec.Len(), vec.ChildType)
	}
	if got := int32(endian.Uint32(vec.Elem(2))); got != 30 {
		t.Errorf("Expected element 30, got %d", got)
	}
}

func TestForgeOverflow(t *testing.T) {
	types, _ := newTestTypes(t)
	buf := make([]byte, 20)
	f := NewForge(buf, types)

	f.Int(1)
	if f.Err() != nil {
		t.Fatalf("Unexpected error: %v", f.Err())
	}
	f.Long(2)
	if !errors.Is(f.Err(), ErrOverflow) {
		t.Errorf("Expected ErrOverflow, got %v", f.Err())
	}
	if f.Len() != 16 {
		t.Errorf("Overflowing write should not advance, len=%d", f.Len())
	}
	f.Int(3)
	if f.Len() != 16 {
		t.Errorf("Writes after overflow should be ignored, len=%d", f.Len())
	}
}

func TestKindString(t *testing.T) {
	if KindSequence.String() != "Sequence" || Kind(99).String() != "Unknown" {
		t.Error("Unexpected kind names")
	}
	types, _ := newTestTypes(t)
	for k := KindInt; k <= KindSequence; k++ {
		if got := types.Kind(types.ID(k)); got != k {
			t.Errorf("Kind(ID(%s)) = %s", k, got)
		}
	}
	if types.Kind(0) != KindUnknown {
		t.Error("Zero URID should be KindUnknown")
	}
}
