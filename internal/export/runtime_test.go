package export

import (
	"math"
	"testing"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/model"
	"github.com/san-kum/gofmi/internal/models"
)

func TestRuntimeInstantiate(t *testing.T) {
	r := NewRuntime(models.NewRegistry())

	h, st := r.InstantiateCoSimulation("Decay", "decay1", model.Token("Decay"), instance.Options{})
	if st != fmi.StatusOK {
		t.Fatalf("expected OK, got %s", st)
	}
	if h == InvalidHandle {
		t.Fatal("expected a valid handle")
	}
	if r.InstanceCount() != 1 {
		t.Errorf("expected 1 instance, got %d", r.InstanceCount())
	}

	if _, st := r.InstantiateCoSimulation("NoSuchModel", "x", "", instance.Options{}); st != fmi.StatusError {
		t.Errorf("expected Error for unknown model, got %s", st)
	}
	if _, st := r.InstantiateCoSimulation("Decay", "decay2", "wrong-token", instance.Options{}); st != fmi.StatusError {
		t.Errorf("expected Error for bad token, got %s", st)
	}

	r.FreeInstance(h)
	if r.InstanceCount() != 0 {
		t.Errorf("expected 0 instances after free, got %d", r.InstanceCount())
	}
	// Operations on the freed handle fail with the generic status.
	if st := r.Terminate(h); st != fmi.StatusError {
		t.Errorf("expected Error on freed handle, got %s", st)
	}
}

func TestRuntimeCoSimulationRun(t *testing.T) {
	r := NewRuntime(models.NewRegistry())

	h, st := r.InstantiateCoSimulation("Decay", "decay", model.Token("Decay"), instance.Options{})
	if st != fmi.StatusOK {
		t.Fatal(st)
	}
	defer r.FreeInstance(h)

	if st := r.EnterInitializationMode(h, nil, 0, nil); st != fmi.StatusOK {
		t.Fatal(st)
	}
	if st := r.ExitInitializationMode(h); st != fmi.StatusOK {
		t.Fatal(st)
	}

	for i := 0; i < 10; i++ {
		res, st := r.DoStep(h, float64(i)*0.1, 0.1)
		if st != fmi.StatusOK {
			t.Fatalf("step %d: %s", i, st)
		}
		if res.TerminateSimulation {
			t.Fatal("unexpected termination request")
		}
	}

	// One known variable, one unknown; the unknown slot stays untouched.
	values := []float64{0, -1}
	if st := r.GetFloat64(h, []fmi.ValueReference{1, 999}, values); st != fmi.StatusOK {
		t.Fatal(st)
	}
	want := math.Pow(0.99, 100)
	if math.Abs(values[0]-want) > 1e-12 {
		t.Errorf("expected x ~%v, got %v", want, values[0])
	}
	if values[1] != -1 {
		t.Errorf("unknown reference slot changed: %v", values[1])
	}

	if st := r.Terminate(h); st != fmi.StatusOK {
		t.Fatal(st)
	}
}

func TestRuntimeGuardViolationStatus(t *testing.T) {
	r := NewRuntime(models.NewRegistry())

	h, st := r.InstantiateCoSimulation("Decay", "decay", model.Token("Decay"), instance.Options{})
	if st != fmi.StatusOK {
		t.Fatal(st)
	}
	if _, st := r.DoStep(h, 0, 0.1); st != fmi.StatusError {
		t.Errorf("expected Error stepping while instantiated, got %s", st)
	}
	if st := r.ExitInitializationMode(h); st != fmi.StatusError {
		t.Errorf("expected Error, got %s", st)
	}
}
