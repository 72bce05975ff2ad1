package master

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/model"
	"github.com/san-kum/gofmi/internal/models"
)

func newDecayMaster(t *testing.T, opts instance.Options) *Master {
	t.Helper()
	in, err := instance.NewCoSimulation("decay", model.Token("Decay"), models.NewDecay(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return New(in)
}

func TestMasterRun(t *testing.T) {
	m := newDecayMaster(t, instance.Options{})

	result, err := m.Run(context.Background(), Config{
		StopTime: 1.0,
		StepSize: 0.01,
		Outputs:  []string{"x"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 101 {
		t.Errorf("expected 101 samples, got %d", len(result.Times))
	}
	if got := result.Times[len(result.Times)-1]; got != 1.0 {
		t.Errorf("expected final time exactly 1.0, got %v", got)
	}

	series := result.Signals["x"]
	if len(series) != len(result.Times) {
		t.Fatalf("signal length %d does not match times %d", len(series), len(result.Times))
	}
	if series[0] != 1.0 {
		t.Errorf("expected start value 1.0, got %v", series[0])
	}
	want := math.Pow(0.99, 100)
	if got := series[len(series)-1]; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected final x ~%v, got %v", want, got)
	}
}

func TestMasterGridCoversStopTime(t *testing.T) {
	m := newDecayMaster(t, instance.Options{})

	// 0.3/0.1 divides to just under 3 in binary; the grid still carries
	// three communication steps and ends at the stop time.
	result, err := m.Run(context.Background(), Config{
		StopTime: 0.3,
		StepSize: 0.1,
		Outputs:  []string{"x"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 4 {
		t.Fatalf("expected samples at 0, 0.1, 0.2, 0.3, got %d", len(result.Times))
	}
	if got := result.Times[3]; math.Abs(got-0.3) > 1e-12 {
		t.Errorf("expected the last sample at ~0.3, got %v", got)
	}
}

func TestMasterInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero step", Config{StopTime: 1.0}},
		{"negative step", Config{StopTime: 1.0, StepSize: -0.1}},
		{"stop before start", Config{StartTime: 1.0, StopTime: 0.5, StepSize: 0.1}},
		{"unknown output", Config{StopTime: 1.0, StepSize: 0.1, Outputs: []string{"nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newDecayMaster(t, instance.Options{})
			if _, err := m.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMasterCancellation(t *testing.T) {
	m := newDecayMaster(t, instance.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Run(ctx, Config{StopTime: 1.0, StepSize: 0.01, Outputs: []string{"x"}}); err == nil {
		t.Error("expected context error, got nil")
	}
}

func TestMasterEventHandling(t *testing.T) {
	in, err := instance.NewCoSimulation("ball", model.Token("BouncingBall"), models.NewBouncingBall(), instance.Options{
		EventModeUsed:      true,
		EarlyReturnAllowed: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	m := New(in)

	result, err := m.Run(context.Background(), Config{
		StopTime: 2.0,
		StepSize: 0.1,
		Outputs:  []string{"h", "v"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The initial event-mode pass plus at least the first two bounces.
	if result.Events < 3 {
		t.Errorf("expected at least 3 event excursions, got %d", result.Events)
	}
	for i, h := range result.Signals["h"] {
		if h < 0 {
			t.Errorf("ball below ground at sample %d: %v", i, h)
		}
	}
}

type countingObserver struct{ calls int }

func (c *countingObserver) OnStep(t float64, values []float64) { c.calls++ }

func TestMasterObserver(t *testing.T) {
	m := newDecayMaster(t, instance.Options{})
	obs := &countingObserver{}
	m.AddObserver(obs)

	if _, err := m.Run(context.Background(), Config{StopTime: 0.5, StepSize: 0.1, Outputs: []string{"x"}}); err != nil {
		t.Fatal(err)
	}
	if obs.calls != 6 {
		t.Errorf("expected 6 observer calls, got %d", obs.calls)
	}
}
