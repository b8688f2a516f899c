package metrics

import (
	"github.com/san-kum/lmpdump/internal/dump"
)

// Metric accumulates a single statistic over the energy points of an
// aggregate, in the order they are observed.
type Metric interface {
	Name() string
	Observe(p dump.EnergyPoint)
	Value() float64
	Reset()
}

// Default returns the metrics reported for every energy series.
func Default() []Metric {
	return []Metric{
		NewMeanEnergy(),
		NewEnergyFluctuation(),
		NewEnergyDrift(),
		NewEnergyRange(),
	}
}

// Evaluate resets each metric, feeds it every energy point of agg and
// collects the values by name.
func Evaluate(agg *dump.Aggregate, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, p := range agg.Energies {
			m.Observe(p)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
