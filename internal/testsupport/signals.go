// Package testsupport provides fixture helpers shared across package tests:
// deterministic signal generators and WAV file writers.
package testsupport

import (
	"math"
	"math/rand"
)

// Sine generates seconds of a sine tone at the given frequency and rate,
// scaled to amplitude.
func Sine(freq float64, rate int, seconds, amplitude float64) []float64 {
	n := int(math.Round(seconds * float64(rate)))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

// Noise generates n samples of deterministic uniform noise in [-amp, amp).
// The same seed always yields the same sequence.
func Noise(seed int64, n int, amp float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}
	return out
}

// Chirp generates seconds of a linear frequency sweep from f0 to f1. Sweeps
// have a sharp autocorrelation peak, which makes them good alignment
// fixtures.
func Chirp(f0, f1 float64, rate int, seconds, amplitude float64) []float64 {
	n := int(math.Round(seconds * float64(rate)))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(rate)
		phase := 2 * math.Pi * (f0*t + (f1-f0)*t*t/(2*seconds))
		out[i] = amplitude * math.Sin(phase)
	}
	return out
}

// Silence generates n zero samples.
func Silence(n int) []float64 {
	return make([]float64, n)
}

// Concat joins sample slices into one.
func Concat(parts ...[]float64) []float64 {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]float64, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Scale returns a copy of samples multiplied by factor.
func Scale(samples []float64, factor float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v * factor
	}
	return out
}
