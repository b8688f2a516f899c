// Package histo bins per-frame velocity samples into a matrix of
// histograms sharing one set of dividers, one row per selected frame.
package histo

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/lmpdump/internal/dump"
)

const (
	DefaultBins   = 20
	DefaultStride = 100
)

var (
	ErrNoData    = errors.New("histo: no samples to bin")
	ErrBins      = errors.New("histo: bin count must be positive")
	ErrNonFinite = errors.New("histo: sample is NaN or Inf")
)

// Matrix holds one histogram per selected frame. Rows[i][j] counts the
// samples of frame Frames[i] falling in [Dividers[j], Dividers[j+1]); the
// last bin also includes its upper edge.
type Matrix struct {
	Dividers  []float64
	Rows      [][]float64
	Frames    []int
	Timesteps []*int64
}

// Build bins every stride-th frame over a range spanning all frames, so
// rows are comparable. A stride below 1 selects every frame.
func Build(frames [][]float64, bins, stride int) (*Matrix, error) {
	if bins <= 0 {
		return nil, ErrBins
	}
	if stride < 1 {
		stride = 1
	}

	lo, hi, err := bounds(frames)
	if err != nil {
		return nil, err
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram excludes the last divider; nudge it so hi is counted.
	binning := make([]float64, len(dividers))
	copy(binning, dividers)
	binning[bins] = math.Nextafter(hi, math.Inf(1))

	m := &Matrix{Dividers: dividers}
	for i := 0; i < len(frames); i += stride {
		sorted := make([]float64, len(frames[i]))
		copy(sorted, frames[i])
		sort.Float64s(sorted)

		m.Rows = append(m.Rows, stat.Histogram(nil, binning, sorted, nil))
		m.Frames = append(m.Frames, i)
	}
	return m, nil
}

// FromAggregate bins the collected column of agg and labels each row with
// the timestep of its file.
func FromAggregate(agg *dump.Aggregate, bins, stride int) (*Matrix, error) {
	m, err := Build(agg.Velocities, bins, stride)
	if err != nil {
		return nil, err
	}
	m.Timesteps = make([]*int64, len(m.Frames))
	for i, f := range m.Frames {
		m.Timesteps[i] = agg.Energies[f].Timestep
	}
	return m, nil
}

func bounds(frames [][]float64) (float64, float64, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for i, frame := range frames {
		for _, v := range frame {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%w: frame %d", ErrNonFinite, i)
			}
		}
		if len(frame) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(frame))
		hi = math.Max(hi, floats.Max(frame))
		n += len(frame)
	}
	if n == 0 {
		return 0, 0, ErrNoData
	}
	return lo, hi, nil
}

// Dims returns the number of rows (frames) and columns (bins).
func (m *Matrix) Dims() (int, int) {
	return len(m.Rows), len(m.Dividers) - 1
}

// At returns the count of bin c in row r.
func (m *Matrix) At(r, c int) float64 {
	return m.Rows[r][c]
}

// Max returns the largest count in the matrix.
func (m *Matrix) Max() float64 {
	max := 0.0
	for _, row := range m.Rows {
		if len(row) > 0 {
			max = math.Max(max, floats.Max(row))
		}
	}
	return max
}

// Centers returns the midpoint of every bin.
func (m *Matrix) Centers() []float64 {
	c := make([]float64, len(m.Dividers)-1)
	for i := range c {
		c[i] = (m.Dividers[i] + m.Dividers[i+1]) / 2
	}
	return c
}

// Normalized returns a copy whose rows sum to one. Empty rows stay zero.
func (m *Matrix) Normalized() *Matrix {
	out := &Matrix{
		Dividers:  append([]float64(nil), m.Dividers...),
		Rows:      make([][]float64, len(m.Rows)),
		Frames:    append([]int(nil), m.Frames...),
		Timesteps: append([]*int64(nil), m.Timesteps...),
	}
	for i, row := range m.Rows {
		out.Rows[i] = append([]float64(nil), row...)
		if total := floats.Sum(row); total > 0 {
			floats.Scale(1/total, out.Rows[i])
		}
	}
	return out
}

// Label returns the timestep of row r, or its frame index when the file
// carried no timestep.
func (m *Matrix) Label(r int) string {
	if r < len(m.Timesteps) && m.Timesteps[r] != nil {
		return fmt.Sprintf("%d", *m.Timesteps[r])
	}
	return fmt.Sprintf("#%d", m.Frames[r])
}
