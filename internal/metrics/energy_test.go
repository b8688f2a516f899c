package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lmpdump/internal/dump"
)

func series(totals ...float64) *dump.Aggregate {
	agg := &dump.Aggregate{}
	for i, v := range totals {
		ts := int64(i * 100)
		agg.Energies = append(agg.Energies, dump.EnergyPoint{Timestep: &ts, Total: v})
		agg.Velocities = append(agg.Velocities, nil)
	}
	return agg
}

func TestEvaluateDefault(t *testing.T) {
	agg := series(-100, -98, -102, -100)
	got := Evaluate(agg, Default()...)

	tests := []struct {
		name     string
		expected float64
	}{
		{"energy_mean", -100},
		{"energy_std", math.Sqrt(8.0 / 3.0)},
		{"energy_drift", 0.02},
		{"energy_range", 4},
	}

	for _, tt := range tests {
		v, ok := got[tt.name]
		if !ok {
			t.Errorf("missing metric %s", tt.name)
			continue
		}
		if math.Abs(v-tt.expected) > 1e-12 {
			t.Errorf("%s: expected %g, got %g", tt.name, tt.expected, v)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	got := Evaluate(series(), Default()...)
	for name, v := range got {
		if v != 0 {
			t.Errorf("%s: expected 0 for empty series, got %g", name, v)
		}
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(dump.EnergyPoint{Total: 10})
	m.Observe(dump.EnergyPoint{Total: 15})
	if m.Value() != 0.5 {
		t.Errorf("expected drift 0.5, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}

	m.Observe(dump.EnergyPoint{Total: 4})
	m.Observe(dump.EnergyPoint{Total: 3})
	if m.Value() != 0.25 {
		t.Errorf("expected drift 0.25 after reset, got %g", m.Value())
	}
}

func TestEvaluateIsRepeatable(t *testing.T) {
	agg := series(1, 2, 3)
	ms := Default()
	first := Evaluate(agg, ms...)
	second := Evaluate(agg, ms...)
	for name, v := range first {
		if second[name] != v {
			t.Errorf("%s: second evaluation gave %g, first %g", name, second[name], v)
		}
	}
}
