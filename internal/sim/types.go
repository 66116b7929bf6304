package sim

type Phase int

const (
	PhaseInit Phase = iota
	PhaseStepping
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseStepping:
		return "stepping"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one committed time level. The field buffers are copies; a
// snapshot stays valid after the simulation steps on. Sweeps is the number
// of relaxation sweeps spent to commit this level (0 for the initial data).
type Snapshot struct {
	T      float64   `json:"t"`
	PP     []float64 `json:"pp"`
	Pi     []float64 `json:"pi"`
	Sweeps int       `json:"sweeps"`
}

type Observer interface {
	OnSnapshot(s Snapshot)
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Config struct {
	Dt        float64
	FinalTime float64
	Tolerance float64
	MaxSweeps int
}

func DefaultConfig() Config {
	return Config{
		Dt:        0.0025,
		FinalTime: 0.8,
		Tolerance: 1e-10,
		MaxSweeps: 50,
	}
}

type Result struct {
	Snapshots   []Snapshot
	Metrics     map[string]float64
	StepsTaken  int
	TotalSweeps int
}
