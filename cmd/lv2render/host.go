package main

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/atom"
	"github.com/justyntemme/lv2go/pkg/log"
	"github.com/justyntemme/lv2go/pkg/midi"
	"github.com/justyntemme/lv2go/pkg/plugin"
	"github.com/justyntemme/lv2go/pkg/port"
	"github.com/justyntemme/lv2go/pkg/synth"
	"github.com/justyntemme/lv2go/pkg/urid"
)

// ErrNoPlugin is returned when the requested descriptor is not registered.
var ErrNoPlugin = errors.New("lv2render: plugin not found")

// Host renders a score through one plugin instance, block by block, the
// way a realtime host would drive it.
type Host struct {
	cfg       Config
	desc      *plugin.Descriptor
	urids     *urid.Map
	types     atom.Types
	midiEvent urid.URID
	printer   log.Printer
	logger    *log.Logger
}

// FindDescriptor returns the descriptor with the given URI, or the first
// registered one when uri is empty.
func FindDescriptor(uri string) (*plugin.Descriptor, error) {
	var d *plugin.Descriptor
	if uri == "" {
		d = plugin.Lookup(0)
	} else {
		d = plugin.Find(uri)
	}
	if d == nil {
		if uri == "" {
			return nil, fmt.Errorf("%w: no descriptors registered", ErrNoPlugin)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoPlugin, uri)
	}
	return d, nil
}

// NewHost prepares a host for desc. m is the host's URID map and p
// receives plugin and host log messages; a nil p prints to stderr.
func NewHost(desc *plugin.Descriptor, cfg Config, m *urid.Map, p log.Printer) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	types, err := atom.NewTypes(m)
	if err != nil {
		return nil, err
	}
	logger, err := log.New(p, m)
	if err != nil {
		return nil, err
	}
	return &Host{
		cfg:       cfg,
		desc:      desc,
		urids:     m,
		types:     types,
		midiEvent: m.Map(midi.MidiEventURI),
		printer:   p,
		logger:    logger,
	}, nil
}

// Logger returns the host's logger.
func (h *Host) Logger() *log.Logger {
	return h.logger
}

// Features returns the features offered at instantiation: urid map and
// unmap, log, and the synth's envelope config.
func (h *Host) Features() plugin.Features {
	fs := plugin.HostFeatures(h.urids, h.printer)
	return append(fs, plugin.Feature{URI: synth.ConfigURI, Data: h.cfg.Synth})
}

// Length returns the number of frames rendered for q: up to the last event
// plus the configured tail.
func (h *Host) Length(q *midi.EventQueue) int {
	return int(q.LastFrame()+1) + int(secondsToFrame(h.cfg.Tail, h.cfg.SampleRate))
}

// buffers holds the memory connected to every port.
type buffers struct {
	seq      []uint64
	controls []float32
	spare    [][]float32
	out      []float32
	seqPort  int
	haveOut  bool
}

func (b *buffers) seqBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.seq[0])), len(b.seq)*8)
}

// connect gives every port of inst its own buffer. The first atom input
// receives the score and the first audio output is rendered; other inputs
// read silence and other outputs are discarded.
func (h *Host) connect(inst plugin.Instance) (*buffers, error) {
	block := h.cfg.BlockSize
	b := &buffers{
		seq:     make([]uint64, (h.cfg.SeqCapacity+7)/8),
		seqPort: -1,
	}
	ports := inst.Ports()
	b.controls = make([]float32, len(ports))

	for i, pd := range ports {
		switch {
		case pd.Kind == port.Control:
			inst.ConnectPort(pd.Index, unsafe.Pointer(&b.controls[i]))
		case pd.Kind == port.Audio && pd.Direction == port.Output && !b.haveOut:
			b.out = make([]float32, block)
			b.haveOut = true
			inst.ConnectPort(pd.Index, unsafe.Pointer(&b.out[0]))
		case pd.Kind == port.Audio:
			buf := make([]float32, block)
			b.spare = append(b.spare, buf)
			inst.ConnectPort(pd.Index, unsafe.Pointer(&buf[0]))
		case pd.Kind == port.Atom && pd.Direction == port.Input && b.seqPort < 0:
			b.seqPort = i
			inst.ConnectPort(pd.Index, unsafe.Pointer(&b.seq[0]))
		case pd.Kind == port.Atom:
			buf := make([]uint64, (h.cfg.SeqCapacity+7)/8)
			inst.ConnectPort(pd.Index, unsafe.Pointer(&buf[0]))
		}
	}
	if !b.haveOut {
		return nil, fmt.Errorf("lv2render: %s has no audio output", h.desc.URI)
	}
	if b.seqPort < 0 {
		h.logger.Warning("%s has no atom input, the score is ignored", h.desc.URI)
	}
	return b, nil
}

// Render instantiates the plugin, plays q through it and returns the mono
// output.
func (h *Host) Render(q *midi.EventQueue) ([]float32, error) {
	inst, err := h.desc.Instantiate(h.cfg.SampleRate, "", h.Features())
	if err != nil {
		return nil, err
	}
	defer inst.Cleanup()

	b, err := h.connect(inst)
	if err != nil {
		return nil, err
	}

	total := h.Length(q)
	block := int64(h.cfg.BlockSize)
	forge := atom.NewForge(b.seqBytes(), h.types)
	result := make([]float32, 0, total)
	var due []midi.Event

	h.logger.Note("rendering %s: %d frames at %v Hz, %d events",
		h.desc.URI, total, h.cfg.SampleRate, q.Size())

	inst.Activate()
	for start := int64(0); start < int64(total); start += block {
		n := min(block, int64(total)-start)

		forge.Reset(b.seqBytes())
		fr := forge.Sequence(h.types.FrameTime)
		due = q.AppendRange(due[:0], start, start+n)
		for _, ev := range due {
			forge.Event(ev.Frame()-start, h.midiEvent, midi.Encode(ev))
		}
		forge.Pop(fr)
		if err := forge.Err(); err != nil {
			inst.Deactivate()
			return nil, fmt.Errorf("lv2render: %d events at frame %d: %w", len(due), start, err)
		}

		inst.Run(uint32(n))
		result = append(result, b.out[:n]...)
	}
	inst.Deactivate()

	return result, nil
}
