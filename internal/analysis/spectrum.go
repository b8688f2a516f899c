package analysis

import (
	"errors"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrTooShort = errors.New("analysis: series too short")

// Spectrum returns |X_k| for k in [0, n/2] of the series with its mean
// removed, so bin 0 is close to zero.
func Spectrum(series []float64) ([]float64, error) {
	if len(series) < 2 {
		return nil, ErrTooShort
	}

	centered := make([]float64, len(series))
	copy(centered, series)
	floats.AddConst(-stat.Mean(series, nil), centered)

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps, nil
}

// Dominant returns the index of the strongest bin above zero and the
// matching frequency in cycles per timestep, for a spectrum of n samples
// spaced spacing timesteps apart.
func Dominant(ps []float64, n int, spacing float64) (int, float64) {
	if len(ps) < 2 || n == 0 || spacing <= 0 {
		return 0, 0
	}
	idx := floats.MaxIdx(ps[1:]) + 1
	return idx, float64(idx) / (float64(n) * spacing)
}

// Spacing returns the median gap between consecutive timesteps, or 1 when
// fewer than two are known.
func Spacing(timesteps []int64) float64 {
	if len(timesteps) < 2 {
		return 1
	}
	gaps := make([]float64, 0, len(timesteps)-1)
	for i := 1; i < len(timesteps); i++ {
		gaps = append(gaps, float64(timesteps[i]-timesteps[i-1]))
	}
	sort.Float64s(gaps)
	m := stat.Quantile(0.5, stat.Empirical, gaps, nil)
	if m <= 0 {
		return 1
	}
	return m
}
