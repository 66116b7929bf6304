package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/cnwave/internal/sim"
)

func TestFieldEnergy(t *testing.T) {
	snap := sim.Snapshot{
		PP: []float64{1, 1, 1, 1},
		Pi: []float64{0, 0, 0, 0},
	}

	got := FieldEnergy(snap, 0.5)
	want := 0.5 * 4 * 0.5 // 0.5 * pp^2 * dx per point
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("FieldEnergy = %g, want %g", got, want)
	}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy(1.0)

	m.Observe(sim.Snapshot{PP: []float64{2}, Pi: []float64{0}})
	if math.Abs(m.Value()-2) > 1e-12 {
		t.Errorf("expected energy 2, got %g", m.Value())
	}

	m.Observe(sim.Snapshot{PP: []float64{0}, Pi: []float64{2}})
	if math.Abs(m.Value()-2) > 1e-12 {
		t.Errorf("expected latest energy 2, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(1.0)

	m.Observe(sim.Snapshot{PP: []float64{2}, Pi: []float64{0}}) // energy 2
	m.Observe(sim.Snapshot{PP: []float64{2}, Pi: []float64{0}})
	if m.Value() != 0 {
		t.Errorf("expected zero drift, got %g", m.Value())
	}

	m.Observe(sim.Snapshot{PP: []float64{1}, Pi: []float64{0}}) // energy 0.5
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected drift 0.75, got %g", m.Value())
	}
}

func TestBoundaryAmplitude(t *testing.T) {
	left := NewBoundaryAmplitude(Left)
	right := NewBoundaryAmplitude(Right)

	snap := sim.Snapshot{PP: []float64{-0.3, 1, 0.1}, Pi: []float64{0, 0, 0}}
	left.Observe(snap)
	right.Observe(snap)

	if math.Abs(left.Value()-0.3) > 1e-15 {
		t.Errorf("left: expected 0.3, got %g", left.Value())
	}
	if math.Abs(right.Value()-0.1) > 1e-15 {
		t.Errorf("right: expected 0.1, got %g", right.Value())
	}

	// Max is sticky across observations.
	left.Observe(sim.Snapshot{PP: []float64{0.05, 0, 0}, Pi: []float64{0, 0, 0}})
	if math.Abs(left.Value()-0.3) > 1e-15 {
		t.Errorf("left max not retained: got %g", left.Value())
	}
}

func TestMeanSweeps(t *testing.T) {
	m := NewMeanSweeps()
	if m.Value() != 0 {
		t.Error("expected zero before any observation")
	}

	// The initial state is not a step and must not dilute the mean.
	m.Observe(sim.Snapshot{T: 0, Sweeps: 0})
	m.Observe(sim.Snapshot{T: 0.01, Sweeps: 10})
	m.Observe(sim.Snapshot{T: 0.02, Sweeps: 20})
	if math.Abs(m.Value()-15) > 1e-12 {
		t.Errorf("expected mean 15, got %g", m.Value())
	}
}
