package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lmpdump/internal/dump"
)

func step(v int64) *int64 { return &v }

func testAggregate() *dump.Aggregate {
	return &dump.Aggregate{
		Component: dump.CompVY,
		Energies: []dump.EnergyPoint{
			{Timestep: step(0), Total: -10.5, Path: "dumps/argon.lj.0"},
			{Timestep: nil, Total: -9.75, Path: "dumps/argon.lj.x"},
		},
		Velocities: [][]float64{{0.1}, {0.2, 0.3}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("dumps", "argon.lj.", testAggregate(), map[string]float64{"energy_mean": -10.125})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Component != "vy" {
		t.Errorf("expected component 'vy', got '%s'", meta.Component)
	}

	if meta.Files != 2 {
		t.Errorf("expected 2 files, got %d", meta.Files)
	}

	if meta.Prefix != "argon.lj." || meta.Dir != "dumps" {
		t.Errorf("expected dumps/argon.lj., got %s/%s", meta.Dir, meta.Prefix)
	}

	if meta.Metrics["energy_mean"] != -10.125 {
		t.Errorf("expected energy_mean -10.125, got %f", meta.Metrics["energy_mean"])
	}

	points, err := st.LoadEnergies(runID)
	if err != nil {
		t.Fatalf("load energies failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	if points[0].Timestep == nil || *points[0].Timestep != 0 || points[0].Total != -10.5 {
		t.Errorf("unexpected first point %+v", points[0])
	}

	if points[1].Timestep != nil || points[1].Path != "dumps/argon.lj.x" {
		t.Errorf("unexpected second point %+v", points[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save("dumps", "argon.lj.", testAggregate(), nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].ID == runs[1].ID {
		t.Error("expected distinct run ids")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("dumps", "argon.lj.", testAggregate(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(filepath.Join(runDir, "energy.csv")); os.IsNotExist(err) {
		t.Error("energy.csv not created")
	}
}

func TestStoreUnknownRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	if _, err := st.LoadEnergies("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
