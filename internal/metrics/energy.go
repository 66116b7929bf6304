// Package metrics provides per-run diagnostics fed from committed
// snapshots.
package metrics

import (
	"math"

	"github.com/san-kum/cnwave/internal/sim"
)

// FieldEnergy is the discrete energy 0.5 * sum(pp^2 + pi^2) * dx of one
// snapshot.
func FieldEnergy(s sim.Snapshot, dx float64) float64 {
	var e float64
	for i := range s.PP {
		e += 0.5 * (s.PP[i]*s.PP[i] + s.Pi[i]*s.Pi[i]) * dx
	}
	return e
}

// Energy reports the field energy of the latest snapshot.
type Energy struct {
	name    string
	dx      float64
	current float64
}

func NewEnergy(dx float64) *Energy {
	return &Energy{name: "energy", dx: dx}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Snapshot) {
	e.current = FieldEnergy(s, e.dx)
}

func (e *Energy) Value() float64 {
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
}

// EnergyDrift tracks the largest relative departure from the first observed
// energy. With radiating boundaries energy leaves the domain, so a drift
// toward zero is expected once a pulse exits; the metric is most useful
// before anything reaches an edge.
type EnergyDrift struct {
	name     string
	dx       float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(dx float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", dx: dx}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	energy := FieldEnergy(s, e.dx)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
