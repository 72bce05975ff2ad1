package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gofmi/internal/master"
)

// Store archives runs on disk: one directory per run holding a
// metadata.json and a signals.csv.
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
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Interface  string    `json:"interface"`
	Timestamp  time.Time `json:"timestamp"`
	StartTime  float64   `json:"start_time"`
	StopTime   float64   `json:"stop_time"`
	StepSize   float64   `json:"step_size"`
	Events     int       `json:"events"`
	Terminated bool      `json:"terminated"`
}

// Save archives one run and returns its id.
func (s *Store) Save(model, iface string, cfg master.Config, result *master.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Interface:  iface,
		Timestamp:  time.Now(),
		StartTime:  cfg.StartTime,
		StopTime:   cfg.StopTime,
		StepSize:   cfg.StepSize,
		Events:     result.Events,
		Terminated: result.Terminated,
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

	if err := ExportCSV(filepath.Join(runDir, "signals.csv"), result); err != nil {
		return "", err
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

// LoadSignals reads an archived run's trajectory back: the time axis and
// one series per signal column.
func (s *Store) LoadSignals(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "signals.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 || len(records[0]) < 1 || records[0][0] != "time" {
		return nil, nil, fmt.Errorf("run %s: malformed signals.csv", runID)
	}

	names := records[0][1:]
	times := make([]float64, 0, len(records)-1)
	signals := make(map[string][]float64, len(names))
	for _, name := range names {
		signals[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		for j, name := range names {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, err
			}
			signals[name] = append(signals[name], v)
		}
	}
	return times, signals, nil
}
