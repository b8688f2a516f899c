package dump

import (
	"fmt"
	"strings"
)

// NumFields is the number of numeric columns read from every atom line,
// after the atom id and type.
const NumFields = 10

// Snapshot holds the per-atom records of one dump file. All slices have the
// same length and index i refers to the same atom across them.
type Snapshot struct {
	// Timestep is nil when no ITEM: TIMESTEP block precedes the atoms.
	Timestep *int64

	X, Y, Z    []float64
	VX, VY, VZ []float64
	FX, FY, FZ []float64
	Etot       []float64
}

// Len returns the number of atoms in the snapshot.
func (s *Snapshot) Len() int { return len(s.Etot) }

// TotalEnergy sums the per-atom total energy in atom order.
func (s *Snapshot) TotalEnergy() float64 {
	sum := 0.0
	for _, e := range s.Etot {
		sum += e
	}
	return sum
}

// Component returns the column named by c. The slice is shared with the
// snapshot.
func (s *Snapshot) Component(c Component) ([]float64, error) {
	switch c {
	case CompX:
		return s.X, nil
	case CompY:
		return s.Y, nil
	case CompZ:
		return s.Z, nil
	case CompVX:
		return s.VX, nil
	case CompVY:
		return s.VY, nil
	case CompVZ:
		return s.VZ, nil
	case CompFX:
		return s.FX, nil
	case CompFY:
		return s.FY, nil
	case CompFZ:
		return s.FZ, nil
	case CompEtot:
		return s.Etot, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, string(c))
}

// appendRecord stores one parsed atom line. v holds at least NumFields
// values in column order.
func (s *Snapshot) appendRecord(v []float64) {
	s.X = append(s.X, v[0])
	s.Y = append(s.Y, v[1])
	s.Z = append(s.Z, v[2])
	s.VX = append(s.VX, v[3])
	s.VY = append(s.VY, v[4])
	s.VZ = append(s.VZ, v[5])
	s.FX = append(s.FX, v[6])
	s.FY = append(s.FY, v[7])
	s.FZ = append(s.FZ, v[8])
	s.Etot = append(s.Etot, v[9])
}

// Component names one per-atom column of a snapshot.
type Component string

const (
	CompX    Component = "x"
	CompY    Component = "y"
	CompZ    Component = "z"
	CompVX   Component = "vx"
	CompVY   Component = "vy"
	CompVZ   Component = "vz"
	CompFX   Component = "fx"
	CompFY   Component = "fy"
	CompFZ   Component = "fz"
	CompEtot Component = "etot"
)

// Components lists every column in file order.
var Components = []Component{CompX, CompY, CompZ, CompVX, CompVY, CompVZ, CompFX, CompFY, CompFZ, CompEtot}

// ParseComponent resolves a column name, case-insensitively.
func ParseComponent(name string) (Component, error) {
	c := Component(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Components {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownComponent, name)
}
