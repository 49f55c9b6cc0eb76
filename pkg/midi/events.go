package midi

import (
	"fmt"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
)

// Event is a channel voice message scheduled at an absolute frame.
type Event interface {
	Type() EventType
	Channel() uint8
	Frame() int64
	// Message encodes the event as raw MIDI bytes.
	Message() gomidi.Message
	String() string
}

type BaseEvent struct {
	EventChannel uint8
	Offset       int64
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) Frame() int64 {
	return e.Offset
}

type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) Message() gomidi.Message {
	return gomidi.NoteOn(e.EventChannel, e.NoteNumber, e.Velocity)
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) Message() gomidi.Message {
	return gomidi.NoteOffVelocity(e.EventChannel, e.NoteNumber, e.Velocity)
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) Message() gomidi.Message {
	return gomidi.ControlChange(e.EventChannel, e.Controller, e.Value)
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

const (
	CCModWheel       uint8 = 1
	CCBreath         uint8 = 2
	CCFoot           uint8 = 4
	CCPortamentoTime uint8 = 5
	CCVolume         uint8 = 7
	CCBalance        uint8 = 8
	CCPan            uint8 = 10
	CCExpression     uint8 = 11
	CCSustain        uint8 = 64
	CCPortamento     uint8 = 65
	CCSostenuto      uint8 = 66
	CCSoft           uint8 = 67
	CCLegato         uint8 = 68
	CCHold2          uint8 = 69
	CCAllSoundOff    uint8 = 120
	CCResetAll       uint8 = 121
	CCLocalControl   uint8 = 122
	CCAllNotesOff    uint8 = 123
)

type PitchBendEvent struct {
	BaseEvent
	Value int16 // -8192 to 8191, 0 is center
}

func (e PitchBendEvent) Type() EventType {
	return EventTypePitchBend
}

func (e PitchBendEvent) Message() gomidi.Message {
	return gomidi.Pitchbend(e.EventChannel, e.Value)
}

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Value, e.Offset)
}

func (e PitchBendEvent) NormalizedValue() float64 {
	return float64(e.Value) / 8192.0
}

type PolyPressureEvent struct {
	BaseEvent
	NoteNumber uint8
	Pressure   uint8
}

func (e PolyPressureEvent) Type() EventType {
	return EventTypePolyPressure
}

func (e PolyPressureEvent) Message() gomidi.Message {
	return gomidi.PolyAfterTouch(e.EventChannel, e.NoteNumber, e.Pressure)
}

func (e PolyPressureEvent) String() string {
	return fmt.Sprintf("PolyPressure{ch:%d, note:%d, pressure:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Pressure, e.Offset)
}

type ChannelPressureEvent struct {
	BaseEvent
	Pressure uint8
}

func (e ChannelPressureEvent) Type() EventType {
	return EventTypeChannelPressure
}

func (e ChannelPressureEvent) Message() gomidi.Message {
	return gomidi.AfterTouch(e.EventChannel, e.Pressure)
}

func (e ChannelPressureEvent) String() string {
	return fmt.Sprintf("ChannelPressure{ch:%d, pressure:%d, offset:%d}",
		e.EventChannel, e.Pressure, e.Offset)
}

type ProgramChangeEvent struct {
	BaseEvent
	Program uint8
}

func (e ProgramChangeEvent) Type() EventType {
	return EventTypeProgramChange
}

func (e ProgramChangeEvent) Message() gomidi.Message {
	return gomidi.ProgramChange(e.EventChannel, e.Program)
}

func (e ProgramChangeEvent) String() string {
	return fmt.Sprintf("ProgramChange{ch:%d, prog:%d, offset:%d}",
		e.EventChannel, e.Program, e.Offset)
}

// FromMessage converts a raw channel voice message into an Event at frame.
// It returns false for anything else.
func FromMessage(msg gomidi.Message, frame int64) (Event, bool) {
	var ch, a, b uint8
	base := BaseEvent{Offset: frame}

	switch {
	case msg.GetNoteStart(&ch, &a, &b):
		base.EventChannel = ch
		return NoteOnEvent{BaseEvent: base, NoteNumber: a, Velocity: b}, true
	case msg.GetNoteOff(&ch, &a, &b):
		base.EventChannel = ch
		return NoteOffEvent{BaseEvent: base, NoteNumber: a, Velocity: b}, true
	case msg.GetNoteEnd(&ch, &a):
		// note on with zero velocity
		base.EventChannel = ch
		return NoteOffEvent{BaseEvent: base, NoteNumber: a}, true
	case msg.GetControlChange(&ch, &a, &b):
		base.EventChannel = ch
		return ControlChangeEvent{BaseEvent: base, Controller: a, Value: b}, true
	case msg.GetProgramChange(&ch, &a):
		base.EventChannel = ch
		return ProgramChangeEvent{BaseEvent: base, Program: a}, true
	case msg.GetAfterTouch(&ch, &a):
		base.EventChannel = ch
		return ChannelPressureEvent{BaseEvent: base, Pressure: a}, true
	case msg.GetPolyAfterTouch(&ch, &a, &b):
		base.EventChannel = ch
		return PolyPressureEvent{BaseEvent: base, NoteNumber: a, Pressure: b}, true
	}

	var rel int16
	var abs uint16
	if msg.GetPitchBend(&ch, &rel, &abs) {
		base.EventChannel = ch
		return PitchBendEvent{BaseEvent: base, Value: rel}, true
	}
	return nil, false
}

// Encode returns the raw bytes of e, ready to be written as a MidiEvent
// atom body.
func Encode(e Event) []byte {
	return e.Message().Bytes()
}

// NoteToFrequency returns the equal-tempered frequency of note. A zero
// tuningA4 means 440 Hz.
func NoteToFrequency(note uint8, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Exp2((float64(note)-69.0)/12.0)
}

func FrequencyToNote(freq, tuningA4 float64) uint8 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	if freq <= 0 {
		return 0
	}
	note := 69.0 + 12.0*math.Log2(freq/tuningA4)
	if note < 0 {
		return 0
	}
	if note > 127 {
		return 127
	}
	return uint8(note + 0.5)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func NoteNumberToName(note uint8) string {
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
