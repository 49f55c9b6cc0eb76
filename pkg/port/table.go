package port

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

var binderType = reflect.TypeFor[binder]()

// Table maps port indices to the raw addresses the host connected and
// produces the typed view P from them. A Table must not be copied.
type Table[P any] struct {
	view    P
	slots   []unsafe.Pointer
	binders []binder
	descs   []Descriptor
}

// NewTable validates the port declaration of P and allocates its slots.
// Indices must be unique and contiguous from 0.
func NewTable[P any]() (*Table[P], error) {
	t := &Table[P]{}

	v := reflect.ValueOf(&t.view).Elem()
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrSchema, v.Type())
	}

	byIndex := make(map[uint32]int)
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		isPort := reflect.PointerTo(f.Type).Implements(binderType)

		tag, ok := f.Tag.Lookup("lv2")
		if !ok {
			if isPort {
				return nil, fmt.Errorf("%w: field %s has no lv2 tag", ErrSchema, f.Name)
			}
			continue
		}
		if !isPort {
			return nil, fmt.Errorf("%w: field %s has unsupported type %s", ErrSchema, f.Name, f.Type)
		}

		idxStr, symbol, _ := strings.Cut(tag, ",")
		idx, err := strconv.ParseUint(strings.TrimSpace(idxStr), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s has bad index %q", ErrSchema, f.Name, idxStr)
		}
		if prev, dup := byIndex[uint32(idx)]; dup {
			return nil, fmt.Errorf("%w: index %d used by %s and %s", ErrSchema, idx, typ.Field(prev).Name, f.Name)
		}
		byIndex[uint32(idx)] = i

		if symbol = strings.TrimSpace(symbol); symbol == "" {
			symbol = strings.ToLower(f.Name)
		}

		dir, kind := fieldBinder(v, i).class()
		t.descs = append(t.descs, Descriptor{
			Index:     uint32(idx),
			Symbol:    symbol,
			Direction: dir,
			Kind:      kind,
		})
	}

	n := len(t.descs)
	t.slots = make([]unsafe.Pointer, n)
	t.binders = make([]binder, n)
	sorted := make([]Descriptor, n)
	for _, d := range t.descs {
		if d.Index >= uint32(n) {
			return nil, fmt.Errorf("%w: indices are not contiguous from 0 (found %d of %d ports)", ErrSchema, d.Index, n)
		}
		t.binders[d.Index] = fieldBinder(v, byIndex[d.Index])
		sorted[d.Index] = d
	}
	t.descs = sorted
	return t, nil
}

// fieldBinder returns the port field i of the struct v as a binder. It goes
// through NewAt so unexported fields work too.
func fieldBinder(v reflect.Value, i int) binder {
	f := v.Field(i)
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Interface().(binder)
}

// MustTable is like NewTable but panics on an invalid declaration.
func MustTable[P any]() *Table[P] {
	t, err := NewTable[P]()
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of declared ports.
func (t *Table[P]) Len() int {
	return len(t.slots)
}

// Connect records the buffer address for a port. Indices outside the
// declared set are ignored.
func (t *Table[P]) Connect(index uint32, data unsafe.Pointer) {
	if index >= uint32(len(t.slots)) {
		return
	}
	t.slots[index] = data
}

// Bind points every field of the view at its connected buffer, sized for
// sampleCount frames, and returns the view. The view stays valid until the
// next Connect or Bind.
func (t *Table[P]) Bind(sampleCount int) *P {
	for i, b := range t.binders {
		b.bind(t.slots[i], sampleCount)
	}
	return &t.view
}

// Descriptors returns the declared ports ordered by index.
func (t *Table[P]) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.descs))
	copy(out, t.descs)
	return out
}
