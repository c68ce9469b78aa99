package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the magnitude of the positive-frequency bins of data
// with its mean removed, zero-padded to a power of two. Bin k corresponds
// to k/len cycles per frame, where len is the padded length.
func Spectrum(data []float64) ([]float64, int) {
	n := nextPow2(len(data))
	if n < 2 {
		return nil, n
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	coeffs := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps, n
}

// DominantPeriod returns the period in frames of the strongest non-DC
// component, or false for a flat signal.
func DominantPeriod(data []float64) (float64, bool) {
	ps, n := Spectrum(data)
	best, bestMag := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 || bestMag < 1e-9 {
		return 0, false
	}
	return float64(n) / float64(best), true
}

func nextPow2(n int) int {
	if n == 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
