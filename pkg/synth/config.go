package synth

import (
	"errors"
	"fmt"

	"github.com/justyntemme/lv2go/pkg/dsp/envelope"
)

// ErrConfig is returned for envelope settings that cannot be used.
var ErrConfig = errors.New("synth: invalid config")

// Config holds the envelope segment lengths in seconds. The sustain level
// is fixed at envelope.DefaultSustainRatio of the note's peak.
type Config struct {
	Attack  float64 `toml:"attack"`
	Decay   float64 `toml:"decay"`
	Release float64 `toml:"release"`
}

// DefaultConfig returns 100 ms for every segment.
func DefaultConfig() Config {
	t := envelope.DefaultTimings()
	return Config{
		Attack:  t.Attack,
		Decay:   t.Decay,
		Release: t.Release,
	}
}

// Validate checks that every segment has a positive length.
func (c Config) Validate() error {
	for _, seg := range []struct {
		name string
		v    float64
	}{
		{"attack", c.Attack},
		{"decay", c.Decay},
		{"release", c.Release},
	} {
		if !(seg.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrConfig, seg.name, seg.v)
		}
	}
	return nil
}

func (c Config) timings() envelope.Timings {
	return envelope.Timings{
		Attack:  c.Attack,
		Decay:   c.Decay,
		Release: c.Release,
		Sustain: envelope.DefaultSustainRatio,
	}
}
