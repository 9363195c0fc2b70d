package align

import (
	"errors"
	"math"
	"testing"

	"avsync/internal/audio"
	"avsync/internal/testsupport"
)

const testRate = 8000

func mustSignal(t *testing.T, samples []float64, rate int) audio.Signal {
	t.Helper()
	sig, err := audio.NewSignal(samples, rate)
	if err != nil {
		t.Fatalf("NewSignal: %v", err)
	}
	return sig
}

func TestCorrelateSelfAlignment(t *testing.T) {
	ref := testsupport.Chirp(200, 1800, testRate, 2.0, 0.8)
	sig := mustSignal(t, ref, testRate)

	result, err := Correlate(sig, sig)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if result.Lag != 0 {
		t.Fatalf("self-correlation lag = %d, want 0", result.Lag)
	}
	if math.Abs(result.Peak-1.0) > 1e-6 {
		t.Fatalf("self-correlation peak = %v, want 1.0", result.Peak)
	}
	if len(result.Curve) != 1 {
		t.Fatalf("curve length = %d, want 1", len(result.Curve))
	}
}

func TestCorrelateRecoversKnownOffset(t *testing.T) {
	ref := testsupport.Chirp(100, 2500, testRate, 1.5, 0.7)
	offsetSamples := testRate * 3 / 2 // 1.5 s
	target := testsupport.Concat(
		testsupport.Noise(11, offsetSamples, 0.05),
		ref,
		testsupport.Noise(17, testRate, 0.05),
	)

	result, err := Correlate(mustSignal(t, ref, testRate), mustSignal(t, target, testRate))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if result.Lag != offsetSamples {
		t.Fatalf("lag = %d, want %d", result.Lag, offsetSamples)
	}
	if got, want := result.LagSeconds(), 1.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("LagSeconds = %v, want %v", got, want)
	}
	if result.Peak < 0.9 {
		t.Fatalf("peak = %v, want a strong match", result.Peak)
	}
}

func TestCorrelateLoudnessIndependent(t *testing.T) {
	ref := testsupport.Chirp(300, 1200, testRate, 1.0, 0.9)
	offsetSamples := testRate / 2
	embedded := testsupport.Scale(ref, 0.1)
	target := testsupport.Concat(
		testsupport.Noise(3, offsetSamples, 0.01),
		embedded,
		testsupport.Noise(5, testRate/4, 0.01),
	)

	result, err := Correlate(mustSignal(t, ref, testRate), mustSignal(t, target, testRate))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if result.Lag != offsetSamples {
		t.Fatalf("lag = %d, want %d", result.Lag, offsetSamples)
	}
	if result.Peak < 0.9 {
		t.Fatalf("peak = %v, normalization should ignore level", result.Peak)
	}
}

func TestCorrelateUnrelatedSignalsScoreLow(t *testing.T) {
	ref := testsupport.Noise(1, testRate, 0.5)
	target := testsupport.Noise(2, testRate*3, 0.5)

	result, err := Correlate(mustSignal(t, ref, testRate), mustSignal(t, target, testRate))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if result.Peak > 0.2 {
		t.Fatalf("peak = %v, unrelated noise should not correlate", result.Peak)
	}
}

func TestCorrelateTargetShorterThanReference(t *testing.T) {
	ref := mustSignal(t, testsupport.Sine(440, testRate, 2.0, 0.5), testRate)
	target := mustSignal(t, testsupport.Sine(440, testRate, 1.0, 0.5), testRate)

	_, err := Correlate(ref, target)
	var insufficient *InsufficientTargetError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want *InsufficientTargetError", err)
	}
	if insufficient.ReferenceDuration <= insufficient.TargetDuration {
		t.Fatalf("error durations inverted: %+v", insufficient)
	}
}

func TestCorrelateRateMismatch(t *testing.T) {
	ref := mustSignal(t, testsupport.Sine(440, testRate, 0.5, 0.5), testRate)
	target := mustSignal(t, testsupport.Sine(440, 16000, 1.0, 0.5), 16000)

	if _, err := Correlate(ref, target); err == nil {
		t.Fatal("expected error for mismatched sample rates")
	}
}

func TestPeakLagEarliestTieWins(t *testing.T) {
	cases := []struct {
		name  string
		curve []float64
		lag   int
		value float64
	}{
		{name: "single peak", curve: []float64{0.1, 0.9, 0.3}, lag: 1, value: 0.9},
		{name: "exact tie keeps first", curve: []float64{0.2, 0.8, 0.5, 0.8}, lag: 1, value: 0.8},
		{name: "all equal", curve: []float64{0.4, 0.4, 0.4}, lag: 0, value: 0.4},
		{name: "negative curve", curve: []float64{-0.6, -0.2, -0.9}, lag: 1, value: -0.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lag, value := peakLag(tc.curve)
			if lag != tc.lag || value != tc.value {
				t.Fatalf("peakLag = (%d, %v), want (%d, %v)", lag, value, tc.lag, tc.value)
			}
		})
	}
}

func TestCorrelateConstantSignal(t *testing.T) {
	ref := testsupport.Silence(testRate / 2)
	target := testsupport.Concat(testsupport.Silence(testRate), testsupport.Noise(9, testRate, 0.3))

	result, err := Correlate(mustSignal(t, ref, testRate), mustSignal(t, target, testRate))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	// A flat reference carries no shape; every lag scores zero and the
	// earliest wins.
	if result.Lag != 0 {
		t.Fatalf("lag = %d, want 0", result.Lag)
	}
	if result.Peak != 0 {
		t.Fatalf("peak = %v, want 0", result.Peak)
	}
}
