package master

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/model"
	"github.com/san-kum/gofmi/internal/models"
)

func decayFactory() (*instance.Instance, error) {
	return instance.NewCoSimulation("decay", model.Token("Decay"), models.NewDecay(), instance.Options{})
}

func TestBatchParameterSweep(t *testing.T) {
	rates := []float64{0.5, 1.0, 2.0}
	variations := make([]Variation, len(rates))
	for i, k := range rates {
		variations[i] = Variation{
			Name:       "k",
			Parameters: map[string]float64{"k": k},
		}
	}

	b := NewBatch(decayFactory, variations)
	results, err := b.Run(context.Background(), Config{
		StopTime: 1.0,
		StepSize: 0.01,
		Outputs:  []string{"x"},
	})
	if err != nil {
		t.Fatalf("batch run failed: %v", err)
	}
	if len(results) != len(rates) {
		t.Fatalf("expected %d results, got %d", len(rates), len(results))
	}

	for i, k := range rates {
		series := results[i].Signals["x"]
		if len(series) != 101 {
			t.Fatalf("variation %d: expected 101 samples, got %d", i, len(series))
		}
		// Forward Euler with the model's internal 0.01 step.
		want := math.Pow(1.0-k*0.01, 100)
		if got := series[len(series)-1]; math.Abs(got-want) > 1e-12 {
			t.Errorf("k=%v: expected final x ~%v, got %v", k, want, got)
		}
	}
}

func TestBatchUnknownParameter(t *testing.T) {
	b := NewBatch(decayFactory, []Variation{
		{Name: "bad", Parameters: map[string]float64{"nope": 1.0}},
	})
	if _, err := b.Run(context.Background(), Config{StopTime: 0.1, StepSize: 0.01, Outputs: []string{"x"}}); err == nil {
		t.Error("expected error for unknown parameter, got nil")
	}
}
