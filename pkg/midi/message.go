// Package midi recognizes and builds the MIDI messages carried in atom
// event sequences.
package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Status bytes. Channel messages carry the channel in the low nibble.
const (
	MsgInvalid         uint8 = 0x00
	MsgNoteOff         uint8 = 0x80
	MsgNoteOn          uint8 = 0x90
	MsgNotePressure    uint8 = 0xA0
	MsgController      uint8 = 0xB0
	MsgProgramChange   uint8 = 0xC0
	MsgChannelPressure uint8 = 0xD0
	MsgBender          uint8 = 0xE0
	MsgSystemExclusive uint8 = 0xF0
	MsgMTCQuarter      uint8 = 0xF1
	MsgSongPos         uint8 = 0xF2
	MsgSongSelect      uint8 = 0xF3
	MsgTuneRequest     uint8 = 0xF6
	MsgClock           uint8 = 0xF8
	MsgStart           uint8 = 0xFA
	MsgContinue        uint8 = 0xFB
	MsgStop            uint8 = 0xFC
	MsgActiveSense     uint8 = 0xFE
	MsgReset           uint8 = 0xFF
)

// IsVoiceMessage reports whether status is a channel voice status.
func IsVoiceMessage(status uint8) bool {
	return status >= 0x80 && status < 0xF0
}

// IsSystemMessage reports whether status is a defined system status.
func IsSystemMessage(status uint8) bool {
	switch status {
	case 0xF4, 0xF5, 0xF7, 0xF9, 0xFD:
		return false
	}
	return status&0xF0 == 0xF0
}

// MessageType strips the channel from voice statuses and returns system
// statuses unchanged. Undefined statuses map to MsgInvalid.
func MessageType(status uint8) uint8 {
	switch {
	case IsVoiceMessage(status):
		return status & 0xF0
	case IsSystemMessage(status):
		return status
	}
	return MsgInvalid
}

// NoteKind classifies a message for note handling.
type NoteKind uint8

const (
	// NoteNone is any message that neither starts nor ends a note.
	NoteNone NoteKind = iota
	// NoteStart is a note-on with non-zero velocity.
	NoteStart
	// NoteEnd is a note-off, or a note-on with zero velocity.
	NoteEnd
)

func (k NoteKind) String() string {
	switch k {
	case NoteStart:
		return "NoteStart"
	case NoteEnd:
		return "NoteEnd"
	}
	return "NoteNone"
}

// Note is the result of Classify. Velocity is only set for NoteStart.
type Note struct {
	Kind     NoteKind
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// Classify recognizes note-on and note-off messages in raw. It does not
// allocate and is safe on the audio thread.
func Classify(raw []byte) Note {
	if len(raw) < 3 {
		return Note{}
	}
	msg := gomidi.Message(raw)

	var n Note
	switch {
	case msg.GetNoteStart(&n.Channel, &n.Key, &n.Velocity):
		n.Kind = NoteStart
	case msg.GetNoteEnd(&n.Channel, &n.Key):
		n.Kind = NoteEnd
	default:
		return Note{}
	}
	return n
}
