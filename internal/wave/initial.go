package wave

import (
	"fmt"
	"math"

	"github.com/san-kum/cnwave/internal/grid"
)

// Pulse describes the gaussian initial data. Signum selects which
// characteristic of the first-order system is excited: setting pi = ±pp
// isolates a single traveling direction, 0 gives a time-symmetric pulse
// that splits in two.
type Pulse struct {
	Amp    float64
	Center float64
	Width  float64
	Signum int
}

func (p Pulse) Validate() error {
	if p.Width <= 0 {
		return fmt.Errorf("wave: pulse width must be positive, got %g", p.Width)
	}
	if p.Signum < -1 || p.Signum > 1 {
		return fmt.Errorf("wave: pulse signum must be -1, 0 or +1, got %d", p.Signum)
	}
	return nil
}

// Generate builds the t=0 buffers:
//
//	pp[i] = Amp * exp(-((x_i - Center)/Width)^2)
//	pi[i] = Signum * pp[i]
func (p Pulse) Generate(g grid.Grid) (*Fields, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f := NewFields(g.Nx)
	for i := 0; i < g.Nx; i++ {
		r := (g.X(i) - p.Center) / p.Width
		f.PP[i] = p.Amp * math.Exp(-r*r)
		f.Pi[i] = float64(p.Signum) * f.PP[i]
	}
	return f, nil
}
