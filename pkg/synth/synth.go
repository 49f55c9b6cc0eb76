// Package synth is a polyphonic sine synthesizer driven by MIDI events on
// an atom sequence port.
package synth

import (
	"fmt"

	"github.com/justyntemme/lv2go/pkg/atom"
	"github.com/justyntemme/lv2go/pkg/dsp"
	"github.com/justyntemme/lv2go/pkg/dsp/envelope"
	"github.com/justyntemme/lv2go/pkg/dsp/oscillator"
	"github.com/justyntemme/lv2go/pkg/framework/voice"
	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/midi"
	"github.com/justyntemme/lv2go/pkg/plugin"
	"github.com/justyntemme/lv2go/pkg/port"
	"github.com/justyntemme/lv2go/pkg/urid"
)

// Ports is the port layout of the synth.
type Ports struct {
	Control port.InputSequence `lv2:"0,control"`
	Out     port.OutputAudio   `lv2:"1,out"`
}

// Synth renders up to voice.Capacity simultaneous notes.
type Synth struct {
	sampleRate float64
	timings    envelope.Timings
	midiEvent  urid.URID
	types      atom.Types
	keys       *oscillator.KeyTable
	voices     voice.Pool[Voice]
	logger     *log.Logger
}

// New creates a synth. It needs the urid#map feature to resolve the MIDI
// event type; without it instantiation fails.
func New(sampleRate float64, cfg Config, features plugin.Features) (*Synth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := features.Mapper()
	if err != nil {
		return nil, err
	}
	ids, err := urid.MapAll(m, midi.MidiEventURI)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	types, err := atom.NewTypes(m)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}

	logger, err := features.Logger(m)
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}

	s := &Synth{
		sampleRate: sampleRate,
		timings:    cfg.timings(),
		midiEvent:  ids[0],
		types:      types,
		keys:       oscillator.NewKeyTable(sampleRate),
		logger:     logger,
	}
	logger.Trace("synth: %v Hz, attack %vs decay %vs release %vs",
		sampleRate, cfg.Attack, cfg.Decay, cfg.Release)
	return s, nil
}

// Activate implements plugin.Plugin.
func (s *Synth) Activate() {}

// Deactivate silences every voice.
func (s *Synth) Deactivate() {
	s.voices.Reset()
}

// ActiveVoices returns the number of sounding notes.
func (s *Synth) ActiveVoices() int {
	return s.voices.Count()
}

// Voices returns the voice pool for inspection.
func (s *Synth) Voices() *voice.Pool[Voice] {
	return &s.voices
}

// Run renders n frames into the output port, splitting the block at every
// note-on and note-off in the control sequence.
//
// Event times outside the block, or earlier than the previous event, are
// clamped. Events in a sequence that is not frame-timed apply at the
// current split point.
func (s *Synth) Run(p *Ports, n int) {
	out := p.Out.Samples()
	if len(out) < n {
		n = len(out)
	}

	// A malformed sequence is treated as ending at the first bad event.
	seq, _ := p.Control.Sequence()
	inFrames := seq.InFrames(s.types)

	offset := 0
	it := seq.Iter()
	for it.Next() {
		ev := it.Event()
		if ev.Type() != s.midiEvent {
			continue
		}
		note := midi.Classify(ev.Body().Body())
		if note.Kind == midi.NoteNone {
			continue
		}

		frame := offset
		if inFrames {
			frame = int(min(max(ev.Frames(), int64(offset)), int64(n)))
		}
		s.render(out, offset, frame)

		switch note.Kind {
		case midi.NoteStart:
			s.noteOn(note.Key, note.Velocity)
		case midi.NoteEnd:
			s.noteOff(note.Key)
		}
		offset = frame
	}
	s.render(out, offset, n)
}

// render zeroes out[start:end] and adds every active voice into it.
func (s *Synth) render(out []float32, start, end int) {
	seg := out[start:end]
	dsp.Clear(seg)
	for i := 0; i < voice.Capacity; i++ {
		if !s.voices.Active(i) {
			continue
		}
		if s.voices.At(i).run(seg) {
			s.voices.Release(i)
		}
	}
}

// noteOn starts a voice in the first free slot. A full pool drops the
// note.
func (s *Synth) noteOn(key, velocity uint8) {
	_, v, ok := s.voices.Acquire()
	if !ok {
		return
	}
	v.start(key, s.keys.Increment(key), envelope.NewSlopes(velocity, s.sampleRate, s.timings))
}

// noteOff releases the first held voice playing key. Voices already
// fading out are skipped so a retriggered key is never left sounding.
func (s *Synth) noteOff(key uint8) {
	if _, v, ok := s.voices.FindKeyFunc(key, (*Voice).held); ok {
		v.env.Release()
	}
}
