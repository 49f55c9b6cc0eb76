package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	samples := []float32{0, 0.5, -0.5, 1, -1, 2, -3}
	if err := WriteWAV(f, samples, 44100); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if samples[5] != 1 || samples[6] != -1 {
		t.Errorf("Expected out of range samples to be clipped, got %v", samples[5:])
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	d := wav.NewDecoder(r)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}
	if d.SampleRate != 44100 || d.BitDepth != 16 || d.NumChans != 1 {
		t.Errorf("Unexpected format: rate=%d depth=%d chans=%d", d.SampleRate, d.BitDepth, d.NumChans)
	}

	want := []int{0, 16384, -16384, 32767, -32767, 32767, -32767}
	if len(buf.Data) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(buf.Data))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("Sample %d: want %d, got %d", i, want[i], buf.Data[i])
		}
	}
}

func TestMaster(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 1000
	cfg.GainDB = -6.0206
	cfg.FadeOut = 0.004

	samples := make([]float32, 10)
	for i := range samples {
		samples[i] = 1
	}
	Master(samples, cfg)

	for i := 0; i < 6; i++ {
		if math.Abs(float64(samples[i])-0.5) > 1e-4 {
			t.Errorf("Sample %d: expected half amplitude, got %v", i, samples[i])
		}
	}
	if samples[9] != 0 {
		t.Errorf("Expected the last sample faded to zero, got %v", samples[9])
	}
	for i := 6; i < 9; i++ {
		if samples[i+1] >= samples[i] {
			t.Errorf("Fade is not decreasing at %d: %v", i, samples[6:])
		}
	}
}
