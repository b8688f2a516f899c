package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BlockAverage splits series into blocks equal parts, dropping the
// remainder at the end, and returns the mean of the kept samples with the
// standard error of the block means.
func BlockAverage(series []float64, blocks int) (mean, stderr float64, err error) {
	if blocks < 2 || len(series) < 2*blocks {
		return 0, 0, ErrTooShort
	}

	size := len(series) / blocks
	means := make([]float64, blocks)
	for b := range means {
		means[b] = stat.Mean(series[b*size:(b+1)*size], nil)
	}

	mean = stat.Mean(means, nil)
	stderr = math.Sqrt(stat.Variance(means, nil) / float64(blocks))
	return mean, stderr, nil
}
