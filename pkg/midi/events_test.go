package midi

import (
	"bytes"
	"math"
	"testing"
)

func TestNoteOnEvent(t *testing.T) {
	event := NoteOnEvent{
		BaseEvent: BaseEvent{
			EventChannel: 0,
			Offset:       100,
		},
		NoteNumber: 60, // Middle C
		Velocity:   64,
	}

	if event.Type() != EventTypeNoteOn {
		t.Errorf("Expected type %v, got %v", EventTypeNoteOn, event.Type())
	}

	if event.Channel() != 0 {
		t.Errorf("Expected channel 0, got %d", event.Channel())
	}

	if event.Frame() != 100 {
		t.Errorf("Expected frame 100, got %d", event.Frame())
	}

	expected := "NoteOn{ch:0, note:60, vel:64, offset:100}"
	if event.String() != expected {
		t.Errorf("Expected string %s, got %s", expected, event.String())
	}

	if msg := event.Message(); !bytes.Equal(msg, []byte{0x90, 60, 64}) {
		t.Errorf("Unexpected encoding % x", []byte(msg))
	}
}

func TestNoteOffEvent(t *testing.T) {
	event := NoteOffEvent{
		BaseEvent: BaseEvent{
			EventChannel: 1,
			Offset:       200,
		},
		NoteNumber: 72, // C5
		Velocity:   0,
	}

	if event.Type() != EventTypeNoteOff {
		t.Errorf("Expected type %v, got %v", EventTypeNoteOff, event.Type())
	}

	if event.Channel() != 1 {
		t.Errorf("Expected channel 1, got %d", event.Channel())
	}

	if msg := event.Message(); !bytes.Equal(msg, []byte{0x81, 72, 0}) {
		t.Errorf("Unexpected encoding % x", []byte(msg))
	}
}

func TestControlChangeEvent(t *testing.T) {
	event := ControlChangeEvent{
		BaseEvent: BaseEvent{
			EventChannel: 0,
			Offset:       50,
		},
		Controller: CCModWheel,
		Value:      100,
	}

	if event.Type() != EventTypeControlChange {
		t.Errorf("Expected type %v, got %v", EventTypeControlChange, event.Type())
	}

	expected := "CC{ch:0, ctrl:1, val:100, offset:50}"
	if event.String() != expected {
		t.Errorf("Expected string %s, got %s", expected, event.String())
	}

	if msg := event.Message(); !bytes.Equal(msg, []byte{0xB0, 1, 100}) {
		t.Errorf("Unexpected encoding % x", []byte(msg))
	}
}

func TestPitchBendEvent(t *testing.T) {
	tests := []struct {
		value      int16
		normalized float64
	}{
		{0, 0.0},
		{8191, 0.999878},
		{-8192, -1.0},
		{4096, 0.5},
		{-4096, -0.5},
	}

	for _, tt := range tests {
		event := PitchBendEvent{Value: tt.value}

		normalized := event.NormalizedValue()
		if math.Abs(normalized-tt.normalized) > 0.001 {
			t.Errorf("For value %d, expected normalized %f, got %f", tt.value, tt.normalized, normalized)
		}
	}
}

func TestFromMessage(t *testing.T) {
	events := []Event{
		NoteOnEvent{BaseEvent: BaseEvent{EventChannel: 2, Offset: 7}, NoteNumber: 60, Velocity: 100},
		NoteOffEvent{BaseEvent: BaseEvent{EventChannel: 3, Offset: 7}, NoteNumber: 61, Velocity: 40},
		ControlChangeEvent{BaseEvent: BaseEvent{EventChannel: 4, Offset: 7}, Controller: CCSustain, Value: 127},
		ProgramChangeEvent{BaseEvent: BaseEvent{EventChannel: 5, Offset: 7}, Program: 12},
		ChannelPressureEvent{BaseEvent: BaseEvent{EventChannel: 6, Offset: 7}, Pressure: 90},
		PolyPressureEvent{BaseEvent: BaseEvent{EventChannel: 7, Offset: 7}, NoteNumber: 64, Pressure: 30},
		PitchBendEvent{BaseEvent: BaseEvent{EventChannel: 8, Offset: 7}, Value: -2000},
	}

	for _, want := range events {
		t.Run(want.String(), func(t *testing.T) {
			got, ok := FromMessage(want.Message(), 7)
			if !ok {
				t.Fatalf("FromMessage rejected % x", []byte(want.Message()))
			}
			if got != want {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}

	t.Run("ZeroVelocityNoteOn", func(t *testing.T) {
		got, ok := FromMessage([]byte{0x90, 60, 0}, 0)
		if !ok || got.Type() != EventTypeNoteOff {
			t.Errorf("Expected note off, got %v", got)
		}
	})

	t.Run("SystemMessage", func(t *testing.T) {
		if _, ok := FromMessage([]byte{MsgClock}, 0); ok {
			t.Error("Clock should not convert to a channel event")
		}
	})
}

func TestNoteToFrequency(t *testing.T) {
	tests := []struct {
		note uint8
		freq float64
	}{
		{69, 440.0},       // A4
		{60, 261.6255653}, // Middle C (C4)
		{57, 220.0},       // A3
		{81, 880.0},       // A5
		{0, 8.1757989},
	}

	for _, tt := range tests {
		freq := NoteToFrequency(tt.note, 440.0)
		if math.Abs(freq-tt.freq) > 1e-6 {
			t.Errorf("For note %d, expected frequency %f, got %f", tt.note, tt.freq, freq)
		}
	}

	if NoteToFrequency(69, 0) != 440.0 {
		t.Error("Zero tuning should default to 440 Hz")
	}
}

func TestFrequencyToNote(t *testing.T) {
	for note := uint8(0); note < 128; note++ {
		if got := FrequencyToNote(NoteToFrequency(note, 0), 0); got != note {
			t.Errorf("Round trip of note %d gave %d", note, got)
		}
	}
	if FrequencyToNote(-1, 0) != 0 || FrequencyToNote(1e6, 0) != 127 {
		t.Error("Expected out-of-range frequencies to clamp")
	}
}

func TestNoteNumberToName(t *testing.T) {
	tests := []struct {
		note uint8
		name string
	}{
		{60, "C4"},  // Middle C
		{69, "A4"},  // A440
		{0, "C-1"},  // Lowest MIDI note
		{127, "G9"}, // Highest MIDI note
		{61, "C#4"}, // C# above middle C
		{70, "A#4"}, // A# above A4
	}

	for _, tt := range tests {
		name := NoteNumberToName(tt.note)
		if name != tt.name {
			t.Errorf("For note %d, expected name %s, got %s", tt.note, tt.name, name)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		event Event
		want  []byte
	}{
		{NoteOnEvent{BaseEvent: BaseEvent{EventChannel: 2}, NoteNumber: 60, Velocity: 100}, []byte{0x92, 60, 100}},
		{NoteOffEvent{BaseEvent: BaseEvent{EventChannel: 0}, NoteNumber: 61}, []byte{0x80, 61, 0}},
		{ControlChangeEvent{BaseEvent: BaseEvent{EventChannel: 15}, Controller: CCSustain, Value: 127}, []byte{0xBF, CCSustain, 127}},
		{ProgramChangeEvent{BaseEvent: BaseEvent{EventChannel: 1}, Program: 12}, []byte{0xC1, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			got := Encode(tt.event)
			if string(got) != string(tt.want) {
				t.Errorf("Encode = % x, want % x", got, tt.want)
			}
		})
	}

	// Encoded notes classify back to the same note.
	n := Classify(Encode(NoteOnEvent{BaseEvent: BaseEvent{EventChannel: 9}, NoteNumber: 36, Velocity: 1}))
	if n != (Note{Kind: NoteStart, Channel: 9, Key: 36, Velocity: 1}) {
		t.Errorf("Unexpected classification %+v", n)
	}
}
