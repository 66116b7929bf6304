package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cnwave/internal/sim"
)

type ExportData struct {
	Meta      RunMetadata    `json:"meta"`
	Snapshots []sim.Snapshot `json:"snapshots"`
}

func ExportJSON(w io.Writer, meta RunMetadata, snaps []sim.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: meta, Snapshots: snaps})
}

func ExportJSONFile(path string, meta RunMetadata, snaps []sim.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, snaps)
}
