package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNx        = 201
	DefaultXmin      = 0.0
	DefaultXmax      = 1.0
	DefaultDt        = 0.0025
	DefaultFinalTime = 0.8
	DefaultAmp       = 1.0
	DefaultCenter    = 0.5
	DefaultWidth     = 0.05
	DefaultTolerance = 1e-10
	DefaultMaxSweeps = 50
)

type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Time   TimeConfig   `yaml:"time"`
	Pulse  PulseConfig  `yaml:"pulse"`
	Solver SolverConfig `yaml:"solver"`
}

type GridConfig struct {
	Nx   int     `yaml:"nx"`
	Xmin float64 `yaml:"xmin"`
	Xmax float64 `yaml:"xmax"`
}

type TimeConfig struct {
	Dt        float64 `yaml:"dt"`
	FinalTime float64 `yaml:"final_time"`
}

type PulseConfig struct {
	Amp    float64 `yaml:"amp"`
	Center float64 `yaml:"xc"`
	Width  float64 `yaml:"xwid"`
	Signum int     `yaml:"idsignum"`
}

type SolverConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxSweeps int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Nx:   DefaultNx,
			Xmin: DefaultXmin,
			Xmax: DefaultXmax,
		},
		Time: TimeConfig{
			Dt:        DefaultDt,
			FinalTime: DefaultFinalTime,
		},
		Pulse: PulseConfig{
			Amp:    DefaultAmp,
			Center: DefaultCenter,
			Width:  DefaultWidth,
		},
		Solver: SolverConfig{
			Tolerance: DefaultTolerance,
			MaxSweeps: DefaultMaxSweeps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the solver cannot start from.
func (c *Config) Validate() error {
	if c.Grid.Nx < 3 {
		return fmt.Errorf("config: grid needs at least 3 points, got %d", c.Grid.Nx)
	}
	if c.Grid.Xmin >= c.Grid.Xmax {
		return fmt.Errorf("config: xmin must be below xmax, got [%g, %g]", c.Grid.Xmin, c.Grid.Xmax)
	}
	if c.Time.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Time.Dt)
	}
	if c.Time.FinalTime <= 0 {
		return fmt.Errorf("config: final_time must be positive, got %g", c.Time.FinalTime)
	}
	if c.Pulse.Width <= 0 {
		return fmt.Errorf("config: xwid must be positive, got %g", c.Pulse.Width)
	}
	if c.Pulse.Signum < -1 || c.Pulse.Signum > 1 {
		return fmt.Errorf("config: idsignum must be -1, 0 or +1, got %d", c.Pulse.Signum)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if c.Solver.MaxSweeps < 1 {
		return fmt.Errorf("config: max_iterations must be at least 1, got %d", c.Solver.MaxSweeps)
	}
	return nil
}
