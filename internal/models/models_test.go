package models

import (
	"math"
	"testing"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

func TestDecayDerivative(t *testing.T) {
	d := NewDecay()
	d.SetStartValues()

	if err := d.SetFloat64([]fmi.ValueReference{decayVRK}, []float64{2.0}); err != nil {
		t.Fatal(err)
	}
	if err := d.CalculateValues(nil); err != nil {
		t.Fatal(err)
	}

	dx := make([]float64, 1)
	if err := d.GetContinuousStateDerivatives(dx); err != nil {
		t.Fatal(err)
	}
	if dx[0] != -2.0 {
		t.Errorf("expected dx = -k*x = -2.0, got %v", dx[0])
	}
}

func TestBouncingBallEventUpdate(t *testing.T) {
	tests := []struct {
		name       string
		h, v       float64
		wantUp     bool
		wantParked bool
	}{
		{"falling above ground", 1.0, -1.0, false, false},
		{"ground contact", -0.001, -3.0, true, false},
		{"slow contact parks the ball", -0.001, -0.05, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBouncingBall()
			b.SetStartValues()
			b.h = tt.h
			b.v = tt.v

			var flags fmi.EventFlags
			if err := b.EventUpdate(nil, &flags); err != nil {
				t.Fatal(err)
			}

			switch {
			case tt.wantParked:
				if b.v != 0 || b.g != 0 {
					t.Errorf("expected parked ball, got v = %v, g = %v", b.v, b.g)
				}
			case tt.wantUp:
				if b.v <= 0 {
					t.Errorf("expected upward velocity, got %v", b.v)
				}
				if want := -tt.v * 0.7; math.Abs(b.v-want) > 1e-12 {
					t.Errorf("expected restitution-scaled velocity %v, got %v", want, b.v)
				}
				if !flags.ValuesOfContinuousStatesChanged {
					t.Error("expected state re-initialization flag")
				}
			default:
				if b.v != tt.v || b.h != tt.h {
					t.Error("no contact must leave the state alone")
				}
				if flags.ValuesOfContinuousStatesChanged {
					t.Error("no contact must not flag state changes")
				}
			}
		})
	}
}

func TestBouncingBallIndicatorParked(t *testing.T) {
	b := NewBouncingBall()
	b.SetStartValues()
	b.h = 0
	b.v = 0

	z := make([]float64, 1)
	ok, err := b.GetEventIndicators(nil, z)
	if err != nil || !ok {
		t.Fatalf("indicators failed: ok = %v, err = %v", ok, err)
	}
	if z[0] <= 0 {
		t.Errorf("parked ball must hold the indicator off zero, got %v", z[0])
	}
}

func TestVanDerPolDerivatives(t *testing.T) {
	v := NewVanDerPol()
	v.SetStartValues()

	if err := v.CalculateValues(nil); err != nil {
		t.Fatal(err)
	}
	dx := make([]float64, 2)
	if err := v.GetContinuousStateDerivatives(dx); err != nil {
		t.Fatal(err)
	}

	// At the start point (2, 0): dx0 = 0, dx1 = -x0 = -2.
	if dx[0] != 0 {
		t.Errorf("expected dx0 = 0, got %v", dx[0])
	}
	if dx[1] != -2 {
		t.Errorf("expected dx1 = -2, got %v", dx[1])
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"Decay", "BouncingBall", "VanDerPol"} {
		m, err := r.New(name)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", name, err)
		}
		if got := m.Describe().Name; got != name {
			t.Errorf("descriptor name mismatch: %s vs %s", got, name)
		}

		token, err := r.Token(name)
		if err != nil {
			t.Fatal(err)
		}
		if token != model.Token(name) {
			t.Errorf("token mismatch for %s", name)
		}
	}

	if _, err := r.New("NoSuchModel"); err == nil {
		t.Error("expected error for unknown model")
	}

	names := r.List()
	if len(names) != 3 {
		t.Errorf("expected 3 built-in models, got %d", len(names))
	}
}
