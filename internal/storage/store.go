package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cnwave/internal/config"
	"github.com/san-kum/cnwave/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Nx        int                `json:"nx"`
	Xmin      float64            `json:"xmin"`
	Xmax      float64            `json:"xmax"`
	Dt        float64            `json:"dt"`
	FinalTime float64            `json:"final_time"`
	Amp       float64            `json:"amp"`
	Center    float64            `json:"xc"`
	Width     float64            `json:"xwid"`
	Signum    int                `json:"idsignum"`
	Tolerance float64            `json:"tolerance"`
	MaxSweeps int                `json:"max_iterations"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run as a directory holding metadata.json and
// snapshots.csv (time, pp per point, pi per point; one row per committed
// level in increasing time order).
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("wave_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Nx:        cfg.Grid.Nx,
		Xmin:      cfg.Grid.Xmin,
		Xmax:      cfg.Grid.Xmax,
		Dt:        cfg.Time.Dt,
		FinalTime: cfg.Time.FinalTime,
		Amp:       cfg.Pulse.Amp,
		Center:    cfg.Pulse.Center,
		Width:     cfg.Pulse.Width,
		Signum:    cfg.Pulse.Signum,
		Tolerance: cfg.Solver.Tolerance,
		MaxSweeps: cfg.Solver.MaxSweeps,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	n := len(result.Snapshots[0].PP)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("pp%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("pi%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.Snapshots {
		row := make([]string, 0, 1+2*n)
		row = append(row, strconv.FormatFloat(snap.T, 'g', -1, 64))
		for _, v := range snap.PP {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range snap.Pi {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSnapshots reads a run's field history back in time order.
func (s *Store) LoadSnapshots(runID string) ([]sim.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Snapshot{}, nil
	}

	n := (len(records[0]) - 1) / 2
	snaps := make([]sim.Snapshot, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != 1+2*n {
			return nil, fmt.Errorf("storage: malformed snapshot row with %d columns", len(record))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}

		snap := sim.Snapshot{
			T:  t,
			PP: make([]float64, n),
			Pi: make([]float64, n),
		}
		for i := 0; i < n; i++ {
			if snap.PP[i], err = strconv.ParseFloat(record[1+i], 64); err != nil {
				return nil, err
			}
			if snap.Pi[i], err = strconv.ParseFloat(record[1+n+i], 64); err != nil {
				return nil, err
			}
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}
