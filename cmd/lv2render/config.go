package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/justyntemme/lv2go/pkg/synth"
)

// ErrConfig is returned for render settings that cannot be used.
var ErrConfig = errors.New("lv2render: invalid config")

// Config is the contents of an lv2render.toml file.
type Config struct {
	// Plugin is the URI of the plugin to render. Empty selects the first
	// registered descriptor.
	Plugin     string  `toml:"plugin"`
	SampleRate float64 `toml:"sample_rate"`
	BlockSize  int     `toml:"block_size"`
	// Tail is rendered after the last event, in seconds.
	Tail float64 `toml:"tail"`
	// SeqCapacity is the size in bytes of the atom sequence buffer handed
	// to the plugin each block.
	SeqCapacity int `toml:"sequence_capacity"`
	// GainDB is applied to the rendered output before it is written.
	GainDB float64 `toml:"gain_db"`
	// FadeOut ramps the end of the output to silence, in seconds.
	FadeOut float64 `toml:"fade_out"`

	Synth synth.Config `toml:"synth"`
	Notes []Note       `toml:"note"`
}

// Note is one [[note]] table of an inline score. Times are in seconds.
type Note struct {
	Key      uint8   `toml:"key"`
	Velocity uint8   `toml:"velocity"`
	Channel  uint8   `toml:"channel"`
	Start    float64 `toml:"start"`
	Length   float64 `toml:"length"`
}

// DefaultConfig returns 48 kHz, 256-frame blocks and a one second tail.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		BlockSize:   256,
		Tail:        1,
		SeqCapacity: 8192,
		FadeOut:     0.005,
		Synth:       synth.DefaultConfig(),
	}
}

// LoadConfig reads a config file. An empty path returns DefaultConfig.
// Keys the file sets override the defaults; unknown keys are returned as
// warnings.
func LoadConfig(path string) (Config, []string, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}

	// Defaults
	for i := range cfg.Notes {
		if cfg.Notes[i].Velocity == 0 {
			cfg.Notes[i].Velocity = 100
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, warnings, nil
}

// Validate checks the render settings and the inline score.
func (c Config) Validate() error {
	var problems []string
	if !(c.SampleRate > 0) {
		problems = append(problems, fmt.Sprintf("sample_rate must be positive, got %v", c.SampleRate))
	}
	if c.BlockSize <= 0 {
		problems = append(problems, fmt.Sprintf("block_size must be positive, got %d", c.BlockSize))
	}
	if c.Tail < 0 {
		problems = append(problems, fmt.Sprintf("tail must not be negative, got %v", c.Tail))
	}
	if c.FadeOut < 0 {
		problems = append(problems, fmt.Sprintf("fade_out must not be negative, got %v", c.FadeOut))
	}
	if math.IsNaN(c.GainDB) || math.IsInf(c.GainDB, 0) {
		problems = append(problems, fmt.Sprintf("gain_db must be finite, got %v", c.GainDB))
	}
	if c.SeqCapacity < 64 {
		problems = append(problems, fmt.Sprintf("sequence_capacity must be at least 64, got %d", c.SeqCapacity))
	}
	for i, n := range c.Notes {
		switch {
		case n.Key > 127:
			problems = append(problems, fmt.Sprintf("note %d: key %d out of range", i, n.Key))
		case n.Velocity > 127:
			problems = append(problems, fmt.Sprintf("note %d: velocity %d out of range", i, n.Velocity))
		case n.Channel > 15:
			problems = append(problems, fmt.Sprintf("note %d: channel %d out of range", i, n.Channel))
		case n.Start < 0 || !(n.Length > 0):
			problems = append(problems, fmt.Sprintf("note %d: needs start >= 0 and length > 0", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfig, strings.Join(problems, "; "))
	}
	if err := c.Synth.Validate(); err != nil {
		return err
	}
	return nil
}
