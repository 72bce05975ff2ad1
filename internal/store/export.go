package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/san-kum/gofmi/internal/master"
)

// ExportData is the one-shot JSON export of a run.
type ExportData struct {
	Model      string               `json:"model"`
	Interface  string               `json:"interface"`
	StartTime  float64              `json:"start_time"`
	StopTime   float64              `json:"stop_time"`
	StepSize   float64              `json:"step_size"`
	Samples    int                  `json:"samples"`
	Events     int                  `json:"events"`
	Terminated bool                 `json:"terminated"`
	Times      []float64            `json:"times"`
	Signals    map[string][]float64 `json:"signals"`
}

func buildExport(model, iface string, cfg master.Config, result *master.Result) ExportData {
	return ExportData{
		Model:      model,
		Interface:  iface,
		StartTime:  cfg.StartTime,
		StopTime:   cfg.StopTime,
		StepSize:   cfg.StepSize,
		Samples:    len(result.Times),
		Events:     result.Events,
		Terminated: result.Terminated,
		Times:      result.Times,
		Signals:    result.Signals,
	}
}

func ExportJSON(path, model, iface string, cfg master.Config, result *master.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, model, iface, cfg, result)
}

func ExportJSONStdout(model, iface string, cfg master.Config, result *master.Result) error {
	return writeJSON(os.Stdout, model, iface, cfg, result)
}

func writeJSON(w io.Writer, model, iface string, cfg master.Config, result *master.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(model, iface, cfg, result))
}

// ExportCSV writes a time column followed by one column per signal.
func ExportCSV(path string, result *master.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}

func WriteCSV(w io.Writer, result *master.Result) error {
	names := signalNames(result)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"time"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, name := range names {
			series := result.Signals[name]
			if i >= len(series) {
				return fmt.Errorf("signal %q shorter than time axis", name)
			}
			row = append(row, strconv.FormatFloat(series[i], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func signalNames(result *master.Result) []string {
	names := make([]string, 0, len(result.Signals))
	for name := range result.Signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
