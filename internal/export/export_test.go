package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lmpdump/internal/dump"
	"github.com/san-kum/lmpdump/internal/histo"
	"github.com/san-kum/lmpdump/internal/viz"
)

func step(v int64) *int64 { return &v }

func testAggregate() *dump.Aggregate {
	return &dump.Aggregate{
		Component: dump.CompVX,
		Energies: []dump.EnergyPoint{
			{Timestep: step(0), Total: -120.5, Path: "argon.lj.0"},
			{Timestep: step(100), Total: -119.25, Path: "argon.lj.100"},
			{Timestep: nil, Total: -118, Path: "argon.lj.x"},
		},
		Velocities: [][]float64{{0.1, -0.2}, {0.3}, {0.5, 0.5, -0.5}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testAggregate()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}

	want := [][]string{
		{"timestep", "total_energy", "atoms", "path"},
		{"0", "-120.5", "2", "argon.lj.0"},
		{"100", "-119.25", "1", "argon.lj.100"},
		{"", "-118", "3", "argon.lj.x"},
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d: expected %v, got %v", i, want[i], records[i])
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	metrics := map[string]float64{"energy_mean": -119.25}
	if err := WriteJSON(&buf, testAggregate(), metrics, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got Data
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Component != "vx" || got.Files != 3 {
		t.Errorf("expected vx with 3 files, got %s with %d", got.Component, got.Files)
	}
	if got.Records[2].Timestep != nil {
		t.Errorf("expected null timestep, got %d", *got.Records[2].Timestep)
	}
	if got.Records[1].Values != nil {
		t.Error("expected values to be omitted")
	}
	if got.Metrics["energy_mean"] != -119.25 {
		t.Errorf("expected metric -119.25, got %g", got.Metrics["energy_mean"])
	}
}

func TestWriteJSONWithValues(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testAggregate(), nil, true); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got Data
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got.Records[2].Values) != 3 {
		t.Errorf("expected 3 values, got %v", got.Records[2].Values)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 4, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if CanvasToSVG(nil, 4, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{5, 5, 5}, 200, 100, "#00ccff")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %q", svg)
	}
	if SeriesToSVG([]float64{0}, []float64{1}, 200, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestEnergyPlot(t *testing.T) {
	agg := testAggregate()
	agg.Energies = agg.Energies[:2]
	agg.Velocities = agg.Velocities[:2]

	p, err := EnergyPlot(agg)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if p.X.Label.Text != "Timestep" {
		t.Errorf("expected timestep axis, got %q", p.X.Label.Text)
	}

	path := filepath.Join(t.TempDir(), "energy.png")
	if err := SavePlot(p, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty png, got %v", err)
	}
}

func TestEnergyPlotFallsBackToIndex(t *testing.T) {
	p, err := EnergyPlot(testAggregate())
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if p.X.Label.Text != "File" {
		t.Errorf("expected file index axis, got %q", p.X.Label.Text)
	}

	if _, err := EnergyPlot(&dump.Aggregate{}); err != histo.ErrNoData {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestHistogramPlot(t *testing.T) {
	m, err := histo.FromAggregate(testAggregate(), 4, 1)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	p, err := HistogramPlot(m, "vx")
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "hist.png")
	if err := SavePlot(p, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty png, got %v", err)
	}
}

func TestHeatGridDims(t *testing.T) {
	m, err := histo.Build([][]float64{{0, 1}, {1, 2}, {2, 3}}, 5, 1)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	g := heatGrid{m: m, x: m.Centers()}
	c, r := g.Dims()
	if c != 5 || r != 3 {
		t.Errorf("expected 5 columns and 3 rows, got %d and %d", c, r)
	}
	if g.Y(2) != 2 {
		t.Errorf("expected row 2 at frame 2, got %g", g.Y(2))
	}
}
