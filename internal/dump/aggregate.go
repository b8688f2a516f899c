package dump

import (
	"log"
	"sort"
)

// EnergyPoint is the summed total energy of one accepted dump file.
type EnergyPoint struct {
	Timestep *int64
	Total    float64
	Path     string
}

// Aggregate collects the accepted files of a load. Energies and Velocities
// are parallel: entry i of both comes from the same file.
type Aggregate struct {
	Component  Component
	Energies   []EnergyPoint
	Velocities [][]float64
}

func (a *Aggregate) Len() int { return len(a.Energies) }

func (a *Aggregate) Timesteps() []*int64 {
	out := make([]*int64, len(a.Energies))
	for i, e := range a.Energies {
		out[i] = e.Timestep
	}
	return out
}

func (a *Aggregate) Totals() []float64 {
	out := make([]float64, len(a.Energies))
	for i, e := range a.Energies {
		out[i] = e.Total
	}
	return out
}

// SortByTimestep orders both sequences by timestep. Entries without a
// timestep go last; ties keep their load order.
func (a *Aggregate) SortByTimestep() {
	idx := make([]int, len(a.Energies))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		ti, tj := a.Energies[idx[i]].Timestep, a.Energies[idx[j]].Timestep
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return *ti < *tj
		}
	})

	energies := make([]EnergyPoint, len(idx))
	velocities := make([][]float64, len(idx))
	for i, k := range idx {
		energies[i] = a.Energies[k]
		velocities[i] = a.Velocities[k]
	}
	a.Energies, a.Velocities = energies, velocities
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	component Component
	logger    *log.Logger
}

// WithComponent selects the column collected per file. Defaults to vx.
func WithComponent(c Component) Option {
	return func(l *loader) { l.component = c }
}

// WithLogger reports skipped files to logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// Load parses every path in order and aggregates the accepted files.
//
// A file whose per-atom total energy sums to exactly zero is treated as an
// incomplete dump and left out of both sequences. Any parse or read error
// aborts the load and no aggregate is returned.
func Load(paths []string, opts ...Option) (*Aggregate, error) {
	l := &loader{component: CompVX}
	for _, opt := range opts {
		opt(l)
	}
	if _, err := ParseComponent(string(l.component)); err != nil {
		return nil, err
	}

	agg := &Aggregate{
		Component:  l.component,
		Energies:   make([]EnergyPoint, 0, len(paths)),
		Velocities: make([][]float64, 0, len(paths)),
	}
	for _, path := range paths {
		snap, err := ParseFile(path)
		if err != nil {
			return nil, err
		}

		total := snap.TotalEnergy()
		if total == 0 {
			l.logf("skipping %s: total energy is zero (%d atoms)", path, snap.Len())
			continue
		}

		column, err := snap.Component(l.component)
		if err != nil {
			return nil, err
		}
		agg.Energies = append(agg.Energies, EnergyPoint{Timestep: snap.Timestep, Total: total, Path: path})
		agg.Velocities = append(agg.Velocities, column)
	}
	return agg, nil
}

// LoadDir discovers the dumps in dir and loads them.
func LoadDir(dir, prefix string, opts ...Option) (*Aggregate, error) {
	paths, err := Discover(dir, prefix)
	if err != nil {
		return nil, err
	}
	return Load(paths, opts...)
}

func (l *loader) logf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Printf(format, args...)
	}
}
