package config

var Presets = map[string]*Config{
	"standing": {
		Grid:   GridConfig{Nx: 201, Xmin: 0, Xmax: 1},
		Time:   TimeConfig{Dt: 0.0025, FinalTime: 0.8},
		Pulse:  PulseConfig{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0},
		Solver: SolverConfig{Tolerance: 1e-10, MaxSweeps: 50},
	},
	"outgoing": {
		Grid:   GridConfig{Nx: 201, Xmin: 0, Xmax: 1},
		Time:   TimeConfig{Dt: 0.0025, FinalTime: 1.2},
		Pulse:  PulseConfig{Amp: 1, Center: 0.5, Width: 0.05, Signum: 1},
		Solver: SolverConfig{Tolerance: 1e-10, MaxSweeps: 50},
	},
	"ingoing": {
		Grid:   GridConfig{Nx: 201, Xmin: 0, Xmax: 1},
		Time:   TimeConfig{Dt: 0.0025, FinalTime: 1.2},
		Pulse:  PulseConfig{Amp: 1, Center: 0.5, Width: 0.05, Signum: -1},
		Solver: SolverConfig{Tolerance: 1e-10, MaxSweeps: 50},
	},
	"coarse": {
		Grid:   GridConfig{Nx: 101, Xmin: 0, Xmax: 1},
		Time:   TimeConfig{Dt: 0.005, FinalTime: 0.8},
		Pulse:  PulseConfig{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0},
		Solver: SolverConfig{Tolerance: 1e-10, MaxSweeps: 50},
	},
	"fine": {
		Grid:   GridConfig{Nx: 401, Xmin: 0, Xmax: 1},
		Time:   TimeConfig{Dt: 0.00125, FinalTime: 0.8},
		Pulse:  PulseConfig{Amp: 1, Center: 0.5, Width: 0.05, Signum: 0},
		Solver: SolverConfig{Tolerance: 1e-11, MaxSweeps: 80},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
