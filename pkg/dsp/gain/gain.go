// Package gain converts between decibels and linear amplitude and applies
// gain to rendered buffers.
package gain

import (
	"math"
)

// MinDB is reported for silence and treated as silence on input.
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return max(20.0*math.Log10(linear), MinDB)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	if gain == 1 {
		return
	}
	for i := range buffer {
		buffer[i] *= gain
	}
}

// Fade applies a linear ramp from startGain on the first sample to endGain
// on the last.
func Fade(buffer []float32, startGain, endGain float32) {
	if len(buffer) == 0 {
		return
	}

	samples := float32(len(buffer) - 1)
	if samples <= 0 {
		buffer[0] *= startGain
		return
	}

	gainDelta := (endGain - startGain) / samples
	for i := range buffer {
		buffer[i] *= startGain + gainDelta*float32(i)
	}
}

// FadeOut ramps the last n samples of buffer down to zero. n larger than
// the buffer fades all of it.
func FadeOut(buffer []float32, n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(buffer))
	Fade(buffer[len(buffer)-n:], 1, 0)
}
