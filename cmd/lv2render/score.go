package main

import (
	"fmt"
	"io"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/lv2go/pkg/midi"
)

// secondsToFrame rounds t seconds to the nearest frame.
func secondsToFrame(t, sampleRate float64) int64 {
	return int64(math.Round(t * sampleRate))
}

// NotesToQueue schedules every note as a note-on at its start and a note-off
// at its end, at least one frame later. At equal frames note-offs come
// first, so a note can be retriggered right as it ends.
func NotesToQueue(notes []Note, sampleRate float64) *midi.EventQueue {
	q := midi.NewEventQueue()
	events := make([]midi.Event, 0, 2*len(notes))
	for _, n := range notes {
		on := secondsToFrame(n.Start, sampleRate)
		off := max(secondsToFrame(n.Start+n.Length, sampleRate), on+1)
		events = append(events, midi.NoteOffEvent{
			BaseEvent:  midi.BaseEvent{EventChannel: n.Channel, Offset: off},
			NoteNumber: n.Key,
		})
	}
	for _, n := range notes {
		events = append(events, midi.NoteOnEvent{
			BaseEvent:  midi.BaseEvent{EventChannel: n.Channel, Offset: secondsToFrame(n.Start, sampleRate)},
			NoteNumber: n.Key,
			Velocity:   n.Velocity,
		})
	}
	q.AddMultiple(events)
	return q
}

// ReadMIDI reads a Standard MIDI File and schedules its channel messages
// from every track. Meta and system events are skipped.
func ReadMIDI(r io.Reader, sampleRate float64) (*midi.EventQueue, error) {
	q := midi.NewEventQueue()
	var events []midi.Event

	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		frame := secondsToFrame(float64(te.AbsMicroSeconds)/1e6, sampleRate)
		if ev, ok := midi.FromMessage(gomidi.Message(te.Message), frame); ok {
			events = append(events, ev)
		}
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("reading MIDI file: %w", err)
	}

	q.AddMultiple(events)
	return q, nil
}
