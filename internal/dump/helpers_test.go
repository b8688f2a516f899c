package dump

import (
	"fmt"
	"strings"
)

// dumpText renders a minimal LAMMPS dump. A nil timestep omits the
// TIMESTEP block.
func dumpText(timestep *int64, rows [][]float64) string {
	var b strings.Builder
	if timestep != nil {
		fmt.Fprintf(&b, "%s\n%d\n", TimestepMarker, *timestep)
	}
	fmt.Fprintf(&b, "ITEM: NUMBER OF ATOMS\n%d\n", len(rows))
	b.WriteString("ITEM: BOX BOUNDS pp pp pp\n0 10\n0 10\n0 10\n")
	b.WriteString(AtomsMarker + " id type x y z vx vy vz fx fy fz c_etot\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%d 1", i+1)
		for _, v := range row {
			fmt.Fprintf(&b, " %g", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func step(v int64) *int64 { return &v }

// atomRow builds a record whose etot column is e and whose vx column is vx.
func atomRow(vx, e float64) []float64 {
	return []float64{1, 2, 3, vx, 0.5, -0.5, 0.1, 0.2, 0.3, e}
}
