package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Meta     *RunMetadata         `json:"meta"`
	Series   map[string][]float64 `json:"series"`
	Snapshot []SnapshotRow        `json:"snapshot"`
}

// Export gathers everything stored for a run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	snap, err := s.LoadSnapshot(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Meta: meta, Series: series, Snapshot: snap}, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}
