package main

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/lv2go/pkg/dsp"
	"github.com/justyntemme/lv2go/pkg/dsp/gain"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
)

// Master applies the configured output gain and end fade to samples in
// place.
func Master(samples []float32, cfg Config) {
	gain.ApplyBuffer(samples, float32(gain.DbToLinear(cfg.GainDB)))
	gain.FadeOut(samples, int(secondsToFrame(cfg.FadeOut, cfg.SampleRate)))
}

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1] are
// clipped in place.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	dsp.Clip(samples, 1)

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, 1, wavPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: wavBitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(math.Round(float64(s) * math.MaxInt16))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing WAV file: %w", err)
	}
	return nil
}
