// Package oscillator provides the sine oscillator and key tuning used for
// synthesis.
package oscillator

import "math"

const (
	// KeyCount is the number of MIDI keys.
	KeyCount = 128
	// ReferenceKey is A4.
	ReferenceKey = 69
	// ReferenceFrequency is the frequency of ReferenceKey in Hz.
	ReferenceFrequency = 440.0
)

// KeyFrequency returns the equal-tempered frequency of key in Hz.
func KeyFrequency(key uint8) float64 {
	return ReferenceFrequency * math.Exp2((float64(key)-ReferenceKey)/12)
}

// AngularIncrement returns the phase step in radians per sample for a
// frequency.
func AngularIncrement(freq, sampleRate float64) float64 {
	return 2 * math.Pi * freq / sampleRate
}

// KeyTable holds the angular increment of every key at one sample rate.
type KeyTable [KeyCount]float64

// NewKeyTable computes the table for sampleRate.
func NewKeyTable(sampleRate float64) *KeyTable {
	t := new(KeyTable)
	for k := range t {
		t[k] = AngularIncrement(KeyFrequency(uint8(k)), sampleRate)
	}
	return t
}

// Increment returns the angular increment for key. Keys above 127 use
// the low seven bits.
func (t *KeyTable) Increment(key uint8) float64 {
	return t[key&0x7F]
}

// Sine is a sine oscillator with an unbounded phase in radians.
type Sine struct {
	Phase     float64
	Increment float64
}

// Next returns sin(Phase) and advances the phase by one sample.
func (o *Sine) Next() float32 {
	s := float32(math.Sin(o.Phase))
	o.Phase += o.Increment
	return s
}

// Reset restarts the oscillator at phase 0 with the given increment.
func (o *Sine) Reset(increment float64) {
	o.Phase = 0
	o.Increment = increment
}

// ProcessSine adds the next len(buffer) samples, scaled by a fixed gain,
// into buffer.
func (o *Sine) ProcessSine(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] += o.Next() * gain
	}
}
