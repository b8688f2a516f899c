// Package dump reads LAMMPS text dump files and aggregates them.
//
// A dump is expected to carry, after an "ITEM: ATOMS" header, one line per
// atom with the columns
//
//	id type x y z vx vy vz fx fy fz etot
//
// The package is organised leaves first:
//
//   - [Parse] and [ParseFile]: one file into a [Snapshot]
//   - [Discover]: dump files in a directory sharing a name prefix
//   - [Load]: many files into an [Aggregate] of energy totals and one
//     velocity column per file
//
// # Example
//
//	paths, _ := dump.Discover(dir, dump.DefaultPrefix)
//	agg, err := dump.Load(paths)
//	if err != nil {
//	    return err
//	}
//	agg.SortByTimestep()
//
// Loading is sequential; each file is fully read and closed before the
// next one is opened.
package dump
