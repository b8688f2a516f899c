package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/lmpdump/internal/dump"
)

type MeanEnergy struct {
	name   string
	totals []float64
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "energy_mean"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(p dump.EnergyPoint) {
	e.totals = append(e.totals, p.Total)
}

func (e *MeanEnergy) Value() float64 {
	if len(e.totals) == 0 {
		return 0
	}
	return stat.Mean(e.totals, nil)
}

func (e *MeanEnergy) Reset() { e.totals = e.totals[:0] }

// EnergyFluctuation is the sample standard deviation of the totals.
type EnergyFluctuation struct {
	name   string
	totals []float64
}

func NewEnergyFluctuation() *EnergyFluctuation {
	return &EnergyFluctuation{name: "energy_std"}
}

func (e *EnergyFluctuation) Name() string { return e.name }

func (e *EnergyFluctuation) Observe(p dump.EnergyPoint) {
	e.totals = append(e.totals, p.Total)
}

func (e *EnergyFluctuation) Value() float64 {
	if len(e.totals) < 2 {
		return 0
	}
	return stat.StdDev(e.totals, nil)
}

func (e *EnergyFluctuation) Reset() { e.totals = e.totals[:0] }

// EnergyDrift is the largest relative deviation from the first observed
// total. Order the aggregate by timestep first for a meaningful value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(p dump.EnergyPoint) {
	if e.samples == 0 {
		e.initialEnergy = p.Total
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(p.Total-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergyRange is max minus min of the totals.
type EnergyRange struct {
	name     string
	min, max float64
	samples  int
}

func NewEnergyRange() *EnergyRange {
	return &EnergyRange{name: "energy_range"}
}

func (e *EnergyRange) Name() string { return e.name }

func (e *EnergyRange) Observe(p dump.EnergyPoint) {
	if e.samples == 0 {
		e.min, e.max = p.Total, p.Total
	}
	e.min = math.Min(e.min, p.Total)
	e.max = math.Max(e.max, p.Total)
	e.samples++
}

func (e *EnergyRange) Value() float64 {
	return e.max - e.min
}

func (e *EnergyRange) Reset() {
	e.min, e.max = 0, 0
	e.samples = 0
}
