package export

import (
	"encoding/csv"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/san-kum/lmpdump/internal/dump"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one accepted dump file in an export.
type Record struct {
	Timestep *int64    `json:"timestep"`
	Total    float64   `json:"total_energy"`
	Path     string    `json:"path"`
	Values   []float64 `json:"values,omitempty"`
}

// Data is the JSON layout of an exported aggregate.
type Data struct {
	Component string             `json:"component"`
	Files     int                `json:"files"`
	Records   []Record           `json:"records"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// NewData flattens agg. Per-file values are included only when withValues
// is set, as they dominate the output size.
func NewData(agg *dump.Aggregate, metrics map[string]float64, withValues bool) Data {
	d := Data{
		Component: string(agg.Component),
		Files:     agg.Len(),
		Records:   make([]Record, agg.Len()),
		Metrics:   metrics,
	}
	for i, e := range agg.Energies {
		d.Records[i] = Record{Timestep: e.Timestep, Total: e.Total, Path: e.Path}
		if withValues {
			d.Records[i].Values = agg.Velocities[i]
		}
	}
	return d
}

// WriteJSON writes agg as indented JSON.
func WriteJSON(w io.Writer, agg *dump.Aggregate, metrics map[string]float64, withValues bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewData(agg, metrics, withValues))
}

// WriteCSV writes one row per accepted file: timestep, total energy, atom
// count and path. A missing timestep is an empty cell.
func WriteCSV(w io.Writer, agg *dump.Aggregate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"timestep", "total_energy", "atoms", "path"}); err != nil {
		return err
	}
	for i, e := range agg.Energies {
		ts := ""
		if e.Timestep != nil {
			ts = strconv.FormatInt(*e.Timestep, 10)
		}
		row := []string{
			ts,
			strconv.FormatFloat(e.Total, 'g', -1, 64),
			strconv.Itoa(len(agg.Velocities[i])),
			e.Path,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
