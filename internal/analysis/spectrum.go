package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the one-sided power spectrum of x with its mean
// removed. Bin k corresponds to frequency k/(len(x)·dt).
func PowerSpectrum(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		return nil
	}
	mean := stat.Mean(x, nil)
	centered := make([]float64, n)
	copy(centered, x)
	floats.AddConst(-mean, centered)

	coeffs := fft.FFTReal(centered)
	power := make([]float64, n/2+1)
	for k := range power {
		a := cmplx.Abs(coeffs[k])
		power[k] = a * a / float64(n)
	}
	return power
}

// DominantFrequency returns the frequency of the strongest non-zero bin of
// x sampled every dt, or 0 when x is too short or flat.
func DominantFrequency(x []float64, dt float64) float64 {
	power := PowerSpectrum(x)
	if len(power) < 2 || !(dt > 0) {
		return 0
	}
	k := floats.MaxIdx(power[1:]) + 1
	if power[k] == 0 {
		return 0
	}
	return float64(k) / (float64(len(x)) * dt)
}
