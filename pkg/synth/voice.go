package synth

import (
	"github.com/justyntemme/lv2go/pkg/dsp/envelope"
	"github.com/justyntemme/lv2go/pkg/dsp/oscillator"
)

// Voice is one sounding note.
type Voice struct {
	key uint8
	osc oscillator.Sine
	env envelope.Linear
}

// Key returns the MIDI key the voice plays.
func (v Voice) Key() uint8 {
	return v.key
}

// Gain returns the current envelope gain.
func (v Voice) Gain() float32 {
	return v.env.Gain
}

// Stage returns the current envelope stage.
func (v Voice) Stage() envelope.Stage {
	return v.env.Stage()
}

// held reports whether the note has not been released yet.
func (v *Voice) held() bool {
	return v.env.Stage() != envelope.StageRelease
}

func (v *Voice) start(key uint8, increment float64, slopes envelope.Slopes) {
	v.key = key
	v.osc.Reset(increment)
	v.env.Start(slopes)
}

// run adds the voice into out. It stops early and returns true once the
// release has faded out.
func (v *Voice) run(out []float32) bool {
	if v.env.Stage() == envelope.StageSustain {
		v.osc.ProcessSine(out, v.env.Gain)
		return false
	}
	for s := range out {
		out[s] += v.osc.Next() * v.env.Gain
		if v.env.Step() {
			return true
		}
	}
	return false
}
