package audio

import (
	"fmt"
)

// Signal is an immutable mono PCM buffer at a known sample rate.
type Signal struct {
	samples []float64
	rate    int
}

// NewSignal wraps samples at the given rate. The slice is copied so later
// mutation of the argument cannot alter the signal.
func NewSignal(samples []float64, rate int) (Signal, error) {
	if rate <= 0 {
		return Signal{}, fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	owned := make([]float64, len(samples))
	copy(owned, samples)
	return Signal{samples: owned, rate: rate}, nil
}

// newOwnedSignal adopts a slice the caller promises not to touch again.
func newOwnedSignal(samples []float64, rate int) Signal {
	return Signal{samples: samples, rate: rate}
}

// Samples exposes the underlying buffer for read-only numeric work.
// Callers must not modify it.
func (s Signal) Samples() []float64 { return s.samples }

// Rate returns the sample rate in Hz.
func (s Signal) Rate() int { return s.rate }

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.samples) }

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.rate == 0 {
		return 0
	}
	return float64(len(s.samples)) / float64(s.rate)
}

// Resampled returns a new signal at the target rate, band-limited. The
// receiver is unchanged; when the rates already match the receiver itself
// is returned (it is immutable, so sharing is safe).
func (s Signal) Resampled(rate int) (Signal, error) {
	if rate <= 0 {
		return Signal{}, fmt.Errorf("sample rate must be positive, got %d", rate)
	}
	if rate == s.rate {
		return s, nil
	}
	return newOwnedSignal(resample(s.samples, s.rate, rate), rate), nil
}

// downmix averages interleaved multichannel samples into a mono buffer.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(interleaved))
		copy(out, interleaved)
		return out
	}
	frames := len(interleaved) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)
	for i := 0; i < frames; i++ {
		sum := 0.0
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += interleaved[base+c]
		}
		out[i] = sum * inv
	}
	return out
}
