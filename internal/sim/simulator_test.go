package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cnwave/internal/grid"
	"github.com/san-kum/cnwave/internal/relax"
	"github.com/san-kum/cnwave/internal/wave"
)

func testGrid(t *testing.T, nx int) grid.Grid {
	t.Helper()
	g, err := grid.New(nx, 0, 1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestRun(t *testing.T) {
	g := testGrid(t, 51)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 0}
	cfg := Config{Dt: 0.01, FinalTime: 0.1, Tolerance: 1e-10, MaxSweeps: 50}

	s, err := New(g, pulse, cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Phase() != PhaseInit {
		t.Errorf("expected init phase, got %s", s.Phase())
	}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.Snapshots) != 11 {
		t.Errorf("expected 11 snapshots, got %d", len(result.Snapshots))
	}
	if s.Phase() != PhaseDone {
		t.Errorf("expected done phase, got %s", s.Phase())
	}
	if result.TotalSweeps < result.StepsTaken {
		t.Errorf("expected at least one sweep per step, got %d", result.TotalSweeps)
	}
}

func TestRun_SnapshotOrder(t *testing.T) {
	g := testGrid(t, 31)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 1}
	cfg := Config{Dt: 0.01, FinalTime: 0.2, Tolerance: 1e-10, MaxSweeps: 50}

	s, _ := New(g, pulse, cfg)
	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := 1; i < len(result.Snapshots); i++ {
		if result.Snapshots[i].T <= result.Snapshots[i-1].T {
			t.Fatalf("snapshot times not strictly increasing at %d: %g then %g",
				i, result.Snapshots[i-1].T, result.Snapshots[i].T)
		}
	}
	if result.Snapshots[0].T != 0 {
		t.Errorf("first snapshot should be t=0, got %g", result.Snapshots[0].T)
	}
}

// Snapshots are copies; stepping on must not mutate an emitted one.
func TestSnapshot_Independent(t *testing.T) {
	g := testGrid(t, 31)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 1}
	cfg := Config{Dt: 0.01, FinalTime: 0.5, Tolerance: 1e-10, MaxSweeps: 50}

	s, _ := New(g, pulse, cfg)
	first := s.Snapshot()
	peak := first.PP[15]

	for i := 0; i < 10; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if first.PP[15] != peak {
		t.Error("snapshot mutated by later steps")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	g := testGrid(t, 31)
	okPulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 0}

	tests := []struct {
		name  string
		pulse wave.Pulse
		cfg   Config
	}{
		{"zero dt", okPulse, Config{Dt: 0, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 50}},
		{"negative dt", okPulse, Config{Dt: -0.01, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 50}},
		{"zero final time", okPulse, Config{Dt: 0.01, FinalTime: 0, Tolerance: 1e-10, MaxSweeps: 50}},
		{"zero tolerance", okPulse, Config{Dt: 0.01, FinalTime: 1, Tolerance: 0, MaxSweeps: 50}},
		{"no sweeps", okPulse, Config{Dt: 0.01, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 0}},
		{"bad signum", wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 2},
			Config{Dt: 0.01, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 50}},
		{"bad width", wave.Pulse{Amp: 1, Center: 0.5, Width: 0, Signum: 0},
			Config{Dt: 0.01, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(g, tt.pulse, tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStep_ConvergenceFailure(t *testing.T) {
	g := testGrid(t, 51)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0}
	// Below rounding noise: one sweep can never reach this.
	cfg := Config{Dt: 0.005, FinalTime: 1, Tolerance: 1e-30, MaxSweeps: 1}

	s, err := New(g, pulse, cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	err = s.Step()
	if err == nil {
		t.Fatal("expected convergence failure")
	}

	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConvergenceError, got %T", err)
	}
	if ce.Step != 0 {
		t.Errorf("expected failure on step 0, got %d", ce.Step)
	}
	if ce.Sweeps != 1 {
		t.Errorf("expected 1 sweep recorded, got %d", ce.Sweeps)
	}
	if ce.Norm <= 0 {
		t.Errorf("expected positive final norm, got %g", ce.Norm)
	}
	if !errors.Is(err, relax.ErrNotConverged) {
		t.Error("ConvergenceError should unwrap to relax.ErrNotConverged")
	}

	if s.Phase() != PhaseFailed {
		t.Errorf("expected failed phase, got %s", s.Phase())
	}
	if err := s.Step(); !errors.Is(err, ErrNotStepping) {
		t.Errorf("stepping a failed simulation: got %v, want ErrNotStepping", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	g := testGrid(t, 31)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 0}
	cfg := Config{Dt: 0.01, FinalTime: 1, Tolerance: 1e-10, MaxSweeps: 50}

	s, _ := New(g, pulse, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type recordingMetric struct {
	times []float64
}

func (m *recordingMetric) Name() string       { return "recording" }
func (m *recordingMetric) Observe(s Snapshot) { m.times = append(m.times, s.T) }
func (m *recordingMetric) Value() float64     { return float64(len(m.times)) }
func (m *recordingMetric) Reset()             { m.times = m.times[:0] }

// Metrics must see the initial state, not just the stepped ones.
func TestRun_MetricsObserveInitialState(t *testing.T) {
	g := testGrid(t, 31)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 0}
	cfg := Config{Dt: 0.01, FinalTime: 0.05, Tolerance: 1e-10, MaxSweeps: 50}

	s, _ := New(g, pulse, cfg)
	rec := &recordingMetric{}
	s.AddMetric(rec)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(rec.times) != 6 {
		t.Fatalf("expected 6 observations (t=0 plus 5 steps), got %d", len(rec.times))
	}
	if rec.times[0] != 0 {
		t.Errorf("first observation should be t=0, got %g", rec.times[0])
	}
	if math.Abs(rec.times[5]-0.05) > 1e-12 {
		t.Errorf("last observation should be t=0.05, got %g", rec.times[5])
	}
}

type countingObserver struct {
	count int
	lastT float64
}

func (o *countingObserver) OnSnapshot(s Snapshot) {
	o.count++
	o.lastT = s.T
}

func TestObservers(t *testing.T) {
	g := testGrid(t, 31)
	pulse := wave.Pulse{Amp: 1, Center: 0.5, Width: 0.1, Signum: 0}
	cfg := Config{Dt: 0.01, FinalTime: 0.05, Tolerance: 1e-10, MaxSweeps: 50}

	s, _ := New(g, pulse, cfg)
	obs := &countingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if obs.count != 5 {
		t.Errorf("expected 5 observations, got %d", obs.count)
	}
	if math.Abs(obs.lastT-0.05) > 1e-12 {
		t.Errorf("expected last observation at t=0.05, got %g", obs.lastT)
	}
}
