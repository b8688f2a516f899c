package lmpinput

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("lmpinput: unknown preset")

var Presets = map[string]Params{
	"liquid": Defaults(),
	"solid": func() Params {
		p := Defaults()
		p.Temperature = 40
		p.Steps = 50000
		return p
	}(),
	"hot-gas": func() Params {
		p := Defaults()
		p.LatticeConstant = 12.0
		p.Temperature = 300
		p.Pressure = 10
		p.Tdamp = 0.5
		p.Pdamp = 5.0
		p.NeighborSkin = 3.0
		return p
	}(),
}

func GetPreset(name string) (Params, error) {
	p, ok := Presets[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
