// Package storage keeps analysed runs on disk, one directory per run
// holding metadata.json and energy.csv.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/san-kum/lmpdump/internal/dump"
	"github.com/san-kum/lmpdump/internal/export"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	energyFile   = "energy.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dir       string             `json:"dir"`
	Prefix    string             `json:"prefix"`
	Component string             `json:"component"`
	Files     int                `json:"files"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save records agg under a fresh run id and returns the id.
func (s *Store) Save(dir, prefix string, agg *dump.Aggregate, metrics map[string]float64) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	runID := fmt.Sprintf("%s_%s", agg.Component, id)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dir:       dir,
		Prefix:    prefix,
		Component: string(agg.Component),
		Files:     agg.Len(),
		Metrics:   metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, energyFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := export.WriteCSV(f, agg); err != nil {
		return "", err
	}
	return runID, f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first. A missing base directory
// holds no runs.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEnergies reads back the energy series of a run. Rows with an
// unparsable energy are skipped.
func (s *Store) LoadEnergies(runID string) ([]dump.EnergyPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, energyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dump.EnergyPoint{}, nil
	}

	points := make([]dump.EnergyPoint, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		total, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		p := dump.EnergyPoint{Total: total, Path: record[3]}
		if ts, err := strconv.ParseInt(record[0], 10, 64); err == nil {
			p.Timestep = &ts
		}
		points = append(points, p)
	}
	return points, nil
}
