// Package lmpinput renders LAMMPS input scripts for the liquid argon runs
// whose dumps the rest of lmpdump reads.
package lmpinput

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Params lists every option of the generated script. Values are written
// into the script verbatim and are not checked.
type Params struct {
	LatticeConstant float64 `yaml:"lattice_constant"`
	Cells           int     `yaml:"cells"`
	Temperature     float64 `yaml:"temperature"`
	Seed            int64   `yaml:"seed"`
	Timestep        float64 `yaml:"timestep"`
	DumpPattern     string  `yaml:"dump_pattern"`
	OutputFolder    string  `yaml:"output_folder"`
	Steps           int     `yaml:"steps"`
	Pressure        float64 `yaml:"pressure"`
	Tdamp           float64 `yaml:"tdamp"`
	Pdamp           float64 `yaml:"pdamp"`
	Tchain          int     `yaml:"tchain"`
	Pchain          int     `yaml:"pchain"`
	MTK             bool    `yaml:"mtk"`
	NeighborSkin    float64 `yaml:"neighbor_skin"`
	Mass            float64 `yaml:"mass"`
	PairStyle       string  `yaml:"pair_style"`
	Epsilon         float64 `yaml:"epsilon"`
	Sigma           float64 `yaml:"sigma"`
	DumpEvery       int     `yaml:"dump_every"`
}

// Defaults is an fcc argon crystal melted and held at 85 K and 1 bar.
func Defaults() Params {
	return Params{
		LatticeConstant: 5.26,
		Cells:           10,
		Temperature:     85,
		Seed:            87287,
		Timestep:        0.001,
		DumpPattern:     "argon.lj.*",
		OutputFolder:    "dumps",
		Steps:           100000,
		Pressure:        1.0,
		Tdamp:           0.1,
		Pdamp:           1.0,
		Tchain:          3,
		Pchain:          3,
		MTK:             true,
		NeighborSkin:    2.0,
		Mass:            39.948,
		PairStyle:       "lj/cut 8.5",
		Epsilon:         0.0104,
		Sigma:           3.405,
		DumpEvery:       100,
	}
}

// Decode overlays the YAML document in r on base. Keys that name no
// option are rejected. An empty document returns base unchanged.
func Decode(r io.Reader, base Params) (Params, error) {
	p := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("lmpinput: %w", err)
	}
	return p, nil
}

// LoadFile decodes the params file at path over Defaults.
func LoadFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()
	return Decode(f, Defaults())
}
