package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	framesFile   = "frames.csv"
	snapshotFile = "snapshot.csv"
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
	Name      string             `json:"name"`
	Instance  int                `json:"instance"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Live      int                `json:"live"`
	Totals    cloth.StepStats    `json:"totals"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
	Series    []string           `json:"series"`
}

// Save writes one run: metadata, the config that produced it, the metric
// series per frame and the final particle snapshot.
func (s *Store) Save(cfg *config.Config, instance int, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Name, now.Unix())
	if instance > 0 {
		runID = fmt.Sprintf("%s_%d", runID, instance)
	}
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Instance:  instance,
		Timestamp: now,
		Width:     cfg.Grid.Width,
		Height:    cfg.Grid.Height,
		Dt:        cfg.Physics.Dt,
		Frames:    result.Frames,
		Live:      len(result.Final),
		Totals:    result.Totals,
		ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:   result.Metrics,
		Series:    names,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, framesFile), names, result.Series); err != nil {
		return "", err
	}
	if err := writeSnapshot(filepath.Join(runDir, snapshotFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSeries(path string, names []string, series map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(append([]string{"frame"}, names...)); err != nil {
		return err
	}

	rows := 0
	for _, name := range names {
		if len(series[name]) > rows {
			rows = len(series[name])
		}
	}
	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			val := 0.0
			if i < len(series[name]) {
				val = series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	membership := make(map[int]string)
	for name, members := range result.Groups {
		for _, p := range members {
			membership[p.Index] = name
		}
	}

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"index", "x", "y", "z", "pinned", "group"}); err != nil {
		return err
	}
	for _, p := range result.Final {
		row := []string{
			strconv.Itoa(p.Index),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Z, 'f', 6, 64),
			strconv.FormatBool(p.Pinned),
			membership[p.Index],
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig returns the config a run was produced with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadSeries reads the per-frame metric series of a run.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	series := make(map[string][]float64)
	if len(records) == 0 {
		return series, nil
	}

	header := records[0]
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		for j := 1; j < len(record) && j < len(header); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}
	return series, nil
}

// SnapshotRow is one particle of a stored snapshot.
type SnapshotRow struct {
	cloth.Sample
	Group string
}

func (s *Store) LoadSnapshot(runID string) ([]SnapshotRow, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []SnapshotRow{}, nil
	}

	rows := make([]SnapshotRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		var pos [3]float64
		valid := true
		for k := 0; k < 3; k++ {
			if pos[k], err = strconv.ParseFloat(record[k+1], 64); err != nil {
				valid = false
			}
		}
		if !valid {
			continue
		}
		pinned, _ := strconv.ParseBool(record[4])
		rows = append(rows, SnapshotRow{
			Sample: cloth.Sample{Index: idx, X: pos[0], Y: pos[1], Z: pos[2], Pinned: pinned},
			Group:  record[5],
		})
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
