package metrics

import (
	"math"

	"github.com/san-kum/cnwave/internal/sim"
)

type Side int

const (
	Left Side = iota
	Right
)

// BoundaryAmplitude tracks the largest |pp| seen at one grid edge over a
// run. Near zero at the edge opposite a single-characteristic pulse means
// no reflected energy re-entered the domain.
type BoundaryAmplitude struct {
	name string
	side Side
	max  float64
}

func NewBoundaryAmplitude(side Side) *BoundaryAmplitude {
	name := "boundary_left"
	if side == Right {
		name = "boundary_right"
	}
	return &BoundaryAmplitude{name: name, side: side}
}

func (b *BoundaryAmplitude) Name() string { return b.name }

func (b *BoundaryAmplitude) Observe(s sim.Snapshot) {
	i := 0
	if b.side == Right {
		i = len(s.PP) - 1
	}
	if v := math.Abs(s.PP[i]); v > b.max {
		b.max = v
	}
}

func (b *BoundaryAmplitude) Value() float64 {
	return b.max
}

func (b *BoundaryAmplitude) Reset() {
	b.max = 0
}

// MeanSweeps reports the average relaxation sweep count per committed step.
type MeanSweeps struct {
	name    string
	total   int
	samples int
}

func NewMeanSweeps() *MeanSweeps {
	return &MeanSweeps{name: "mean_sweeps"}
}

func (m *MeanSweeps) Name() string { return m.name }

func (m *MeanSweeps) Observe(s sim.Snapshot) {
	// The initial state carries no relaxation work.
	if s.T == 0 {
		return
	}
	m.total += s.Sweeps
	m.samples++
}

func (m *MeanSweeps) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanSweeps) Reset() {
	m.total = 0
	m.samples = 0
}
