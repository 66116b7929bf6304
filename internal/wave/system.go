package wave

import (
	"fmt"

	"github.com/san-kum/cnwave/internal/grid"
	"github.com/san-kum/cnwave/internal/stencil"
)

type FieldID int

const (
	FieldPP FieldID = iota
	FieldPi
)

func (id FieldID) String() string {
	if id == FieldPP {
		return "pp"
	}
	return "pi"
}

type Region int

const (
	LeftEdge Region = iota
	Interior
	RightEdge
)

// residualFn evaluates one region's discretized equation at point i for a
// field, given that field's buffers (own) and the coupled field's buffers
// (other) at the known (0) and advanced (1) time levels. Each residual is
// forward time difference minus the time average of a spatial derivative
// evaluated independently at both levels (Crank-Nicolson).
type residualFn func(own0, own1, other0, other1 []float64, i int, dx, dt float64) float64

// Both fields follow the same region pattern with own/other swapped:
// interior points cross-couple to the other field, edges couple a field
// to its own outward derivative.
var regionResiduals = [3]residualFn{
	LeftEdge:  leftResidual,
	Interior:  interiorResidual,
	RightEdge: rightResidual,
}

func leftResidual(own0, own1, _, _ []float64, i int, dx, dt float64) float64 {
	return (own1[i]-own0[i])/dt -
		0.5*(stencil.Forward(own1, i, dx)+stencil.Forward(own0, i, dx))
}

func interiorResidual(own0, own1, other0, other1 []float64, i int, dx, dt float64) float64 {
	return (own1[i]-own0[i])/dt -
		0.5*(stencil.Centered(other1, i, dx)+stencil.Centered(other0, i, dx))
}

func rightResidual(own0, own1, _, _ []float64, i int, dx, dt float64) float64 {
	return (own1[i]-own0[i])/dt +
		0.5*(stencil.Backward(own1, i, dx)+stencil.Backward(own0, i, dx))
}

// System is the discretized wave system on a fixed grid and time step.
type System struct {
	Grid grid.Grid
	Dt   float64
}

func NewSystem(g grid.Grid, dt float64) (*System, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("wave: dt must be positive, got %g", dt)
	}
	return &System{Grid: g, Dt: dt}, nil
}

func (s *System) RegionOf(i int) Region {
	switch {
	case i == 0:
		return LeftEdge
	case i == s.Grid.Nx-1:
		return RightEdge
	default:
		return Interior
	}
}

// Residual evaluates the discretized equation for one field at point i.
// cur holds the known time level; adv holds the level being solved.
func (s *System) Residual(id FieldID, cur, adv *Fields, i int) float64 {
	own0, own1, other0, other1 := s.buffers(id, cur, adv)
	return regionResiduals[s.RegionOf(i)](own0, own1, other0, other1, i, s.Grid.Dx, s.Dt)
}

func (s *System) buffers(id FieldID, cur, adv *Fields) (own0, own1, other0, other1 []float64) {
	if id == FieldPP {
		return cur.PP, adv.PP, cur.Pi, adv.Pi
	}
	return cur.Pi, adv.Pi, cur.PP, adv.PP
}

// Coeff is the derivative of the point residual with respect to its own
// advanced-level unknown: 1/dt in the interior (the spatial term there only
// reads the other field), 1/dt + 3/(4 dx) at the edges. Strictly positive
// for any valid dt and dx, so the local Newton solve never divides by zero.
func (s *System) Coeff(i int) float64 {
	if s.RegionOf(i) == Interior {
		return 1 / s.Dt
	}
	return 1/s.Dt + 3/(4*s.Grid.Dx)
}
