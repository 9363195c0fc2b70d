package audio

import (
	"math"
)

// resampleTaps is the number of sinc zero crossings kept on each side of the
// interpolation point.
const resampleTaps = 24

// resample converts samples from srcRate to dstRate with a Hann-windowed
// sinc kernel. The kernel cutoff tracks the lower of the two Nyquist
// frequencies, so downsampling low-pass filters before decimating instead
// of aliasing.
func resample(in []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(in) == 0 {
		out := make([]float64, len(in))
		copy(out, in)
		return out
	}

	ratio := float64(dstRate) / float64(srcRate)
	outLen := int(math.Round(float64(len(in)) * ratio))
	if outLen == 0 {
		return nil
	}

	// Cutoff in cycles per source sample, backed off slightly from the
	// band edge to tame the kernel's transition ripple.
	cutoff := 0.5 * math.Min(1, ratio) * 0.95

	out := make([]float64, outLen)
	for i := range out {
		center := float64(i) / ratio
		left := int(math.Floor(center)) - resampleTaps + 1
		right := int(math.Floor(center)) + resampleTaps

		sum := 0.0
		for j := left; j <= right; j++ {
			if j < 0 || j >= len(in) {
				continue
			}
			sum += in[j] * sincKernel(center-float64(j), cutoff)
		}
		out[i] = sum
	}
	return out
}

// sincKernel evaluates the windowed low-pass kernel at offset x samples.
func sincKernel(x, cutoff float64) float64 {
	ax := math.Abs(x)
	if ax >= resampleTaps {
		return 0
	}
	// Hann window over the truncated support.
	window := 0.5 * (1 + math.Cos(math.Pi*ax/resampleTaps))
	if ax < 1e-12 {
		return 2 * cutoff * window
	}
	return math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x) * window
}
