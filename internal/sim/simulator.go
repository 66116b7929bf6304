package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cnwave/internal/grid"
	"github.com/san-kum/cnwave/internal/relax"
	"github.com/san-kum/cnwave/internal/wave"
)

// Simulation advances the two-field wave system through implicit,
// time-centered steps solved by relaxation.
type Simulation struct {
	sys    *wave.System
	solver relax.Solver
	cfg    Config

	cur *wave.Fields
	adv *wave.Fields

	t     float64
	step  int
	phase Phase

	lastStats relax.Stats
	metrics   []Metric
	observers []Observer
}

// New validates the configuration, generates the t=0 data and returns a
// simulation in PhaseInit.
func New(g grid.Grid, pulse wave.Pulse, cfg Config) (*Simulation, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := pulse.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sys, err := wave.NewSystem(g, cfg.Dt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cur, err := pulse.Generate(g)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Simulation{
		sys:    sys,
		solver: relax.Solver{Tolerance: cfg.Tolerance, MaxSweeps: cfg.MaxSweeps},
		cfg:    cfg,
		cur:    cur,
		adv:    wave.NewFields(g.Nx),
		phase:  PhaseInit,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.FinalTime <= 0 {
		return fmt.Errorf("%w: final time must be positive, got %g", ErrInvalidConfig, cfg.FinalTime)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.MaxSweeps < 1 {
		return fmt.Errorf("%w: need at least 1 relaxation sweep, got %d", ErrInvalidConfig, cfg.MaxSweeps)
	}
	return nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Phase() Phase           { return s.phase }
func (s *Simulation) Time() float64          { return s.t }
func (s *Simulation) StepCount() int         { return s.step }
func (s *Simulation) Grid() grid.Grid        { return s.sys.Grid }
func (s *Simulation) LastStats() relax.Stats { return s.lastStats }

// PlannedSteps is the number of steps Run will attempt.
func (s *Simulation) PlannedSteps() int {
	steps := int(math.Round(s.cfg.FinalTime / s.cfg.Dt))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Snapshot copies the current committed time level.
func (s *Simulation) Snapshot() Snapshot {
	pp := make([]float64, len(s.cur.PP))
	pi := make([]float64, len(s.cur.Pi))
	copy(pp, s.cur.PP)
	copy(pi, s.cur.Pi)
	return Snapshot{T: s.t, PP: pp, Pi: pi, Sweeps: s.lastStats.Sweeps}
}

// Step advances one time level: the advanced buffers are seeded with a copy
// of the current ones, relaxed to convergence, then committed by swapping.
// On convergence failure the simulation moves to PhaseFailed and the
// unconverged buffers are discarded.
func (s *Simulation) Step() error {
	switch s.phase {
	case PhaseInit:
		s.phase = PhaseStepping
	case PhaseStepping:
	default:
		return fmt.Errorf("%w: phase is %s", ErrNotStepping, s.phase)
	}

	s.adv.CopyFrom(s.cur)
	stats, err := s.solver.Solve(s.sys, s.cur, s.adv)
	s.lastStats = stats
	if err != nil {
		s.phase = PhaseFailed
		return &ConvergenceError{Step: s.step, Norm: stats.Norm, Sweeps: stats.Sweeps}
	}

	s.cur, s.adv = s.adv, s.cur
	s.t += s.cfg.Dt
	s.step++

	snap := s.Snapshot()
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnSnapshot(snap)
	}
	return nil
}

// Run steps until the configured final time, collecting a snapshot per
// committed level (the t=0 data included) in strictly increasing time
// order. Metrics observe every collected snapshot, the t=0 one included.
// Cancellation is honored between steps; a sweep in flight always
// finishes.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	steps := s.PlannedSteps()
	result := &Result{
		Snapshots: make([]Snapshot, 0, steps+1),
		Metrics:   make(map[string]float64),
	}

	initial := s.Snapshot()
	for _, m := range s.metrics {
		m.Reset()
		m.Observe(initial)
	}

	result.Snapshots = append(result.Snapshots, initial)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			return result, err
		}

		result.StepsTaken++
		result.TotalSweeps += s.lastStats.Sweeps
		result.Snapshots = append(result.Snapshots, s.Snapshot())
	}

	s.phase = PhaseDone
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
