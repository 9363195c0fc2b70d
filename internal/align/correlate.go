package align

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"avsync/internal/audio"
)

// Result describes where the reference best aligns inside the target.
type Result struct {
	// Lag is the alignment offset in samples from the start of the target.
	Lag int
	// SampleRate converts Lag to seconds.
	SampleRate int
	// Peak is the normalized correlation value at Lag. Identical signals
	// score 1; unrelated material scores near 0. A loud match embedded in
	// an otherwise quiet target can exceed 1 because both signals are
	// normalized globally rather than per window.
	Peak float64
	// Curve holds the normalized correlation for every candidate lag.
	// Diagnostics only; it is never persisted.
	Curve []float64
}

// LagSeconds converts the winning lag to seconds.
func (r Result) LagSeconds() float64 {
	if r.SampleRate == 0 {
		return 0
	}
	return float64(r.Lag) / float64(r.SampleRate)
}

// Correlate computes the normalized cross-correlation of reference against
// target and returns the best-supported lag. Both signals must share a
// sample rate, and the reference must not outlast the target; the latter
// violation is reported as *InsufficientTargetError before any numeric work.
//
// Candidate lags are restricted to [0, target.Len()-reference.Len()]: a lag
// outside that range implies a trim window running off one end of the
// target, so it is excluded even if its raw correlation is higher. Exact
// peak ties resolve to the earliest lag.
func Correlate(reference, target audio.Signal) (Result, error) {
	if reference.Rate() != target.Rate() {
		return Result{}, fmt.Errorf("sample rate mismatch: reference %d Hz, target %d Hz", reference.Rate(), target.Rate())
	}
	if reference.Len() == 0 || target.Len() == 0 {
		return Result{}, errors.New("correlate: empty signal")
	}
	if reference.Len() > target.Len() {
		return Result{}, &InsufficientTargetError{
			ReferenceDuration: reference.Duration(),
			TargetDuration:    target.Duration(),
		}
	}

	n := reference.Len()
	m := target.Len()

	refNorm := zscore(reference.Samples())
	tgtNorm := zscore(target.Samples())

	// Fourier-domain correlation: pad both signals to a shared power-of-two
	// length, multiply the target spectrum by the conjugated reference
	// spectrum, and invert. Lags [0, m-n] are free of circular wraparound
	// because the padding exceeds m+n-1.
	size := nextPow2(m + n)
	refPad := make([]float64, size)
	copy(refPad, refNorm)
	tgtPad := make([]float64, size)
	copy(tgtPad, tgtNorm)

	fft := fourier.NewFFT(size)
	refCoeff := fft.Coefficients(nil, refPad)
	tgtCoeff := fft.Coefficients(nil, tgtPad)
	for i := range refCoeff {
		refCoeff[i] = cmplx.Conj(refCoeff[i]) * tgtCoeff[i]
	}
	raw := fft.Sequence(nil, refCoeff)

	// Sequence(Coefficients(x)) scales by the transform length; folding the
	// reference length in as well makes a perfect self-match score 1.
	scale := 1 / (float64(size) * float64(n))

	lags := m - n + 1
	curve := make([]float64, lags)
	for k := 0; k < lags; k++ {
		curve[k] = raw[k] * scale
	}
	bestLag, bestValue := peakLag(curve)

	return Result{
		Lag:        bestLag,
		SampleRate: reference.Rate(),
		Peak:       bestValue,
		Curve:      curve,
	}, nil
}

// peakLag scans the correlation curve for its maximum. Exact ties keep the
// earliest lag so repeated material resolves to its first occurrence.
func peakLag(curve []float64) (int, float64) {
	bestLag := 0
	bestValue := math.Inf(-1)
	for k, value := range curve {
		if value > bestValue {
			bestValue = value
			bestLag = k
		}
	}
	return bestLag, bestValue
}

// zscore returns samples mean-subtracted and scaled to unit population
// variance, making correlation magnitude loudness-independent. A constant
// signal has no shape to match and maps to all zeros.
func zscore(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	mean := stat.Mean(out, nil)
	floats.AddConst(-mean, out)

	sigma := math.Sqrt(floats.Dot(out, out) / float64(len(out)))
	if sigma == 0 {
		return out
	}
	floats.Scale(1/sigma, out)
	return out
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
