// Package port binds the raw buffer addresses a host connects to a plugin's
// ports onto a typed view of those ports.
//
// A plugin declares its ports as a struct whose fields are the port types of
// this package, each tagged with its index:
//
//	type Ports struct {
//		Control port.InputSequence `lv2:"0,control"`
//		Out     port.OutputAudio   `lv2:"1,out"`
//	}
//
// NewTable validates that declaration once at setup. After that, Connect and
// Bind run on the audio thread without allocating.
package port

import (
	"errors"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/atom"
)

// ErrSchema is returned by NewTable for an invalid port declaration.
var ErrSchema = errors.New("port: invalid port declaration")

// Direction says whether the plugin reads or writes a port.
type Direction uint8

const (
	// Input ports are read by the plugin.
	Input Direction = iota
	// Output ports are written by the plugin.
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Kind is the data a port buffer carries.
type Kind uint8

const (
	// Control is a single float per block.
	Control Kind = iota
	// Audio is one float per frame.
	Audio
	// Atom is an atom, usually a Sequence of events.
	Atom
)

func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Atom:
		return "atom"
	}
	return "control"
}

// Descriptor describes one declared port.
type Descriptor struct {
	Index     uint32
	Symbol    string
	Direction Direction
	Kind      Kind
}

// binder is implemented by every port field type.
type binder interface {
	bind(data unsafe.Pointer, n int)
	class() (Direction, Kind)
}

// InputControl is a single float read by the plugin.
type InputControl struct {
	p *float32
}

func (c *InputControl) bind(data unsafe.Pointer, _ int) { c.p = (*float32)(data) }
func (*InputControl) class() (Direction, Kind)         { return Input, Control }

// Value returns the control value, or 0 when the port is not connected.
func (c InputControl) Value() float32 {
	if c.p == nil {
		return 0
	}
	return *c.p
}

// OutputControl is a single float written by the plugin.
type OutputControl struct {
	p *float32
}

func (c *OutputControl) bind(data unsafe.Pointer, _ int) { c.p = (*float32)(data) }
func (*OutputControl) class() (Direction, Kind)         { return Output, Control }

// Set writes v. It does nothing when the port is not connected.
func (c OutputControl) Set(v float32) {
	if c.p != nil {
		*c.p = v
	}
}

// InputAudio is a block of samples read by the plugin.
type InputAudio struct {
	buf []float32
}

func (a *InputAudio) bind(data unsafe.Pointer, n int) { a.buf = floats(data, n) }
func (*InputAudio) class() (Direction, Kind)         { return Input, Audio }

// Samples returns the block. It is empty when the port is not connected.
func (a InputAudio) Samples() []float32 {
	return a.buf
}

// OutputAudio is a block of samples written by the plugin.
type OutputAudio struct {
	buf []float32
}

func (a *OutputAudio) bind(data unsafe.Pointer, n int) { a.buf = floats(data, n) }
func (*OutputAudio) class() (Direction, Kind)         { return Output, Audio }

// Samples returns the block. It is empty when the port is not connected.
func (a OutputAudio) Samples() []float32 {
	return a.buf
}

// InputSequence is an atom sequence read by the plugin.
type InputSequence struct {
	a atom.Atom
}

func (s *InputSequence) bind(data unsafe.Pointer, _ int) { s.a = atom.FromPointer(data) }
func (*InputSequence) class() (Direction, Kind)         { return Input, Atom }

// Atom returns the sequence atom. It is the zero Atom when the port is not
// connected.
func (s InputSequence) Atom() atom.Atom {
	return s.a
}

// Sequence views the atom as a sequence.
func (s InputSequence) Sequence() (atom.Sequence, error) {
	return atom.SequenceOf(s.a)
}

func floats(data unsafe.Pointer, n int) []float32 {
	if data == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float32)(data), n)
}
