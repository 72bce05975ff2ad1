package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gofmi/internal/master"
)

func testResult() *master.Result {
	return &master.Result{
		Times: []float64{0.0, 0.01, 0.02},
		Signals: map[string][]float64{
			"x": {1.0, 0.99, 0.9801},
		},
		Events: 1,
	}
}

func testConfig() master.Config {
	return master.Config{StopTime: 0.02, StepSize: 0.01, Outputs: []string{"x"}}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("Decay", "cs", testConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "Decay" {
		t.Errorf("expected model Decay, got %s", meta.Model)
	}
	if meta.Events != 1 {
		t.Errorf("expected 1 event, got %d", meta.Events)
	}

	times, signals, err := st.LoadSignals(runID)
	if err != nil {
		t.Fatalf("load signals failed: %v", err)
	}
	if len(times) != 3 {
		t.Errorf("expected 3 samples, got %d", len(times))
	}
	series, ok := signals["x"]
	if !ok {
		t.Fatal("signal x missing")
	}
	if series[0] != 1.0 || series[2] != 0.9801 {
		t.Errorf("signal values not round-tripped: %v", series)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("Decay", "cs", testConfig(), testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("Decay", "cs", testConfig(), testResult())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "signals.csv")); os.IsNotExist(err) {
		t.Error("signals.csv not created")
	}
}

func TestExportCSVHeader(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, testResult()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,x" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "Decay", "cs", testConfig(), testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"model": "Decay"`, `"samples": 3`, `"events": 1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("export missing %s", want)
		}
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	points := []Point{{0, 1}, {1, 0.5}, {2, 0.25}}
	svg := TrajectoryToSVG(points, 400, 300, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("expected XML header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected a path element")
	}
	if TrajectoryToSVG(points[:1], 400, 300, "#fff") != "" {
		t.Error("expected empty output for fewer than 2 points")
	}
}
