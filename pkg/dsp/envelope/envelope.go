// Package envelope provides envelope generators for audio synthesis
package envelope

// Stage represents the current envelope stage
type Stage int

const (
	// StageIdle represents envelope idle state
	StageIdle Stage = iota
	// StageAttack represents envelope attack phase
	StageAttack
	// StageDecay represents envelope decay phase
	StageDecay
	// StageSustain represents envelope sustain phase
	StageSustain
	// StageRelease represents envelope release phase
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "Attack"
	case StageDecay:
		return "Decay"
	case StageSustain:
		return "Sustain"
	case StageRelease:
		return "Release"
	}
	return "Idle"
}

// DefaultSustainRatio is the sustain level relative to the peak.
const DefaultSustainRatio = 0.85

// Timings are the segment lengths of a linear envelope.
type Timings struct {
	Attack  float64 // seconds
	Decay   float64 // seconds
	Release float64 // seconds
	Sustain float32 // ratio of the peak gain
}

// DefaultTimings returns 100 ms segments and the default sustain ratio.
func DefaultTimings() Timings {
	return Timings{
		Attack:  0.1,
		Decay:   0.1,
		Release: 0.1,
		Sustain: DefaultSustainRatio,
	}
}

// Slopes are the per-sample gain steps of one note, fixed when it starts.
type Slopes struct {
	Attack      float32
	Peak        float32
	Decay       float32
	SustainGain float32
	Release     float32
}

// NewSlopes computes the slopes for a note of the given velocity (0-127).
func NewSlopes(velocity uint8, sampleRate float64, t Timings) Slopes {
	gain := float32(velocity) / 127
	sr := float32(sampleRate)
	return Slopes{
		Attack:      gain / (float32(t.Attack) * sr),
		Peak:        gain,
		Decay:       gain * (t.Sustain - 1) / (float32(t.Decay) * sr),
		SustainGain: gain * t.Sustain,
		Release:     -gain * t.Sustain / (float32(t.Release) * sr),
	}
}

// Linear is a piecewise-linear attack, decay, sustain, release envelope.
type Linear struct {
	Gain   float32
	stage  Stage
	slopes Slopes
}

// Start begins the attack from zero gain.
func (e *Linear) Start(s Slopes) {
	e.Gain = 0
	e.stage = StageAttack
	e.slopes = s
}

// Release moves to the release stage from wherever the envelope is.
func (e *Linear) Release() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// Stage returns the current stage.
func (e *Linear) Stage() Stage {
	return e.stage
}

// Slopes returns the slopes the envelope was started with.
func (e *Linear) Slopes() Slopes {
	return e.slopes
}

// Step advances one sample. It returns true when the release has reached
// zero and the envelope went idle.
func (e *Linear) Step() bool {
	switch e.stage {
	case StageAttack:
		e.Gain += e.slopes.Attack
		if e.Gain >= e.slopes.Peak {
			e.Gain = e.slopes.Peak
			e.stage = StageDecay
		}
	case StageDecay:
		e.Gain += e.slopes.Decay
		if e.Gain <= e.slopes.SustainGain {
			e.Gain = e.slopes.SustainGain
			e.stage = StageSustain
		}
	case StageRelease:
		e.Gain += e.slopes.Release
		if e.Gain <= 0 {
			e.Gain = 0
			e.stage = StageIdle
			return true
		}
	}
	return false
}

// Reset silences the envelope.
func (e *Linear) Reset() {
	*e = Linear{}
}
