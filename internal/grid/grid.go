package grid

import "fmt"

// Grid is an immutable uniform 1-D grid. Point i (0 <= i < Nx) sits at
// Xmin + i*Dx, with point 0 on Xmin and point Nx-1 on Xmax.
type Grid struct {
	Nx         int
	Xmin, Xmax float64
	Dx         float64
}

// New validates the grid description and computes the spacing. The
// second-order edge stencils need at least 3 points.
func New(nx int, xmin, xmax float64) (Grid, error) {
	if nx < 3 {
		return Grid{}, fmt.Errorf("grid: need at least 3 points, got %d", nx)
	}
	if xmin >= xmax {
		return Grid{}, fmt.Errorf("grid: xmin must be below xmax, got [%g, %g]", xmin, xmax)
	}
	return Grid{
		Nx:   nx,
		Xmin: xmin,
		Xmax: xmax,
		Dx:   (xmax - xmin) / float64(nx-1),
	}, nil
}

// X returns the coordinate of point i.
func (g Grid) X(i int) float64 {
	return g.Xmin + float64(i)*g.Dx
}
