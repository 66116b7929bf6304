package relax

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/cnwave/internal/grid"
	"github.com/san-kum/cnwave/internal/wave"
)

func newSystem(t *testing.T, nx int, dt float64) *wave.System {
	t.Helper()
	g, err := grid.New(nx, 0, 1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	sys, err := wave.NewSystem(g, dt)
	if err != nil {
		t.Fatalf("system: %v", err)
	}
	return sys
}

// A constant state already satisfies every equation, so the solver must
// report convergence without running a single sweep.
func TestSolve_ZeroSweepsOnTrivialState(t *testing.T) {
	g := NewWithT(t)

	sys := newSystem(t, 21, 0.01)
	cur := wave.NewFields(21)
	for i := range cur.PP {
		cur.PP[i] = 1.5
		cur.Pi[i] = 1.5
	}
	adv := cur.Clone()

	solver := &Solver{Tolerance: 1e-12, MaxSweeps: 10}
	stats, err := solver.Solve(sys, cur, adv)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stats.Sweeps).To(Equal(0))
	g.Expect(stats.Norm).To(BeNumerically("<", 1e-12))
}

// The reference scenario: 101 points on [0,1], a narrow time-symmetric
// gaussian, dt = dx/2. The initial guess (advanced = current) leaves a
// strictly positive residual, and relaxation must push the max norm below
// 1e-10 within 20 sweeps.
func TestSolve_GaussianPulse(t *testing.T) {
	g := NewWithT(t)

	sys := newSystem(t, 101, 0.005)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0}
	cur, err := pulse.Generate(sys.Grid)
	g.Expect(err).NotTo(HaveOccurred())
	adv := cur.Clone()

	g.Expect(Norm(sys, cur, adv)).To(BeNumerically(">", 0))

	solver := &Solver{Tolerance: 1e-10, MaxSweeps: 20}
	stats, err := solver.Solve(sys, cur, adv)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stats.Norm).To(BeNumerically("<", 1e-10))
	g.Expect(stats.Sweeps).To(BeNumerically(">", 0))
	g.Expect(stats.Sweeps).To(BeNumerically("<=", 20))
}

// The known level must never change during relaxation.
func TestSolve_CurrentLevelUntouched(t *testing.T) {
	g := NewWithT(t)

	sys := newSystem(t, 51, 0.01)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 1}
	cur, err := pulse.Generate(sys.Grid)
	g.Expect(err).NotTo(HaveOccurred())

	before := cur.Clone()
	adv := cur.Clone()

	solver := &Solver{Tolerance: 1e-10, MaxSweeps: 50}
	_, err = solver.Solve(sys, cur, adv)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(cur.PP).To(Equal(before.PP))
	g.Expect(cur.Pi).To(Equal(before.Pi))
}

func TestSolve_SweepBudgetExhausted(t *testing.T) {
	g := NewWithT(t)

	sys := newSystem(t, 101, 0.005)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0}
	cur, err := pulse.Generate(sys.Grid)
	g.Expect(err).NotTo(HaveOccurred())
	adv := cur.Clone()

	solver := &Solver{Tolerance: 1e-10, MaxSweeps: 0}
	stats, err := solver.Solve(sys, cur, adv)

	g.Expect(errors.Is(err, ErrNotConverged)).To(BeTrue())
	g.Expect(stats.Sweeps).To(Equal(0))
	g.Expect(stats.Norm).To(BeNumerically(">", 1e-10))
}
