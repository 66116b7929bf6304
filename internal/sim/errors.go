package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/cnwave/internal/relax"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a configuration rejected before INIT.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrNotStepping indicates Step was called on a finished or failed run.
	ErrNotStepping = errors.New("sim: simulation is not in a stepping state")
)

// ConvergenceError reports a relaxation that exhausted its sweep budget.
// The step it occurred on is terminal: the simulation moves to PhaseFailed
// and no further stepping is possible.
type ConvergenceError struct {
	Step   int
	Norm   float64
	Sweeps int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("sim: step %d did not converge after %d sweeps (residual norm %.3e)",
		e.Step, e.Sweeps, e.Norm)
}

func (e *ConvergenceError) Unwrap() error {
	return relax.ErrNotConverged
}
