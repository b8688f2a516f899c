package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Section markers of a LAMMPS text dump.
const (
	TimestepMarker = "ITEM: TIMESTEP"
	AtomsMarker    = "ITEM: ATOMS"
)

const maxLineSize = 16 << 20

// Parse reads one dump file and returns its snapshot.
//
// The input is decoded as ISO-8859-1, so arbitrary bytes outside the atom
// records never cause a failure. Atom records start after the ITEM: ATOMS
// header and end at the first blank line or at end of input.
func Parse(r io.Reader) (*Snapshot, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Snapshot, error) {
	sc := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	snap := &Snapshot{}
	var (
		lineNo       int
		wantTimestep bool
		inAtoms      bool
		values       = make([]float64, 0, NumFields)
	)

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if wantTimestep {
			wantTimestep = false
			step, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("invalid timestep %q", strings.TrimSpace(line))}
			}
			snap.Timestep = &step
			continue
		}

		if strings.HasPrefix(line, TimestepMarker) {
			wantTimestep = true
		} else if strings.HasPrefix(line, AtomsMarker) {
			inAtoms = true
			continue
		}

		if !inAtoms {
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}

		var err error
		values, err = parseRecord(values[:0], line)
		if err != nil {
			return nil, &FormatError{Path: path, Line: lineNo, Msg: err.Error()}
		}
		snap.appendRecord(values)
	}
	if err := sc.Err(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return nil, err
	}
	if wantTimestep {
		return nil, &FormatError{Path: path, Line: lineNo, Msg: TimestepMarker + " without a step value"}
	}
	return snap, nil
}

// parseRecord converts the tokens after atom id and type into floats.
// Every trailing token must be numeric and at least NumFields are required.
func parseRecord(dst []float64, line string) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		fields = fields[2:]
	} else {
		fields = nil
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return dst, fmt.Errorf("non-numeric field %q", f)
		}
		dst = append(dst, v)
	}
	if len(dst) < NumFields {
		return dst, fmt.Errorf("expected %d numeric fields, got %d", NumFields, len(dst))
	}
	return dst, nil
}
