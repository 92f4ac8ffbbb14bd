package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data
// after removing its mean, so the zero bin does not swamp the oscillation.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// Dominant returns the strongest non-zero frequency (Hz) of a series
// sampled every dt seconds, and its magnitude.
func Dominant(data []float64, dt float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}
	idx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			power = ps[i]
			idx = i
		}
	}
	return float64(idx) / (float64(len(data)) * dt), power
}

// SettleFrame is the first frame after which the series stays within tol
// (a fraction of its range) of its final value, or -1 for an empty series.
func SettleFrame(data []float64, tol float64) int {
	if len(data) == 0 {
		return -1
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	band := (hi - lo) * tol
	final := data[len(data)-1]

	settled := len(data) - 1
	for i := len(data) - 1; i >= 0; i-- {
		if math.Abs(data[i]-final) > band {
			break
		}
		settled = i
	}
	return settled
}
