package master

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
)

// Variation is one batch member: parameter overrides applied to a fresh
// instance before initialization.
type Variation struct {
	Name string
	// Parameters maps variable names to the value set while the instance
	// is still in the Instantiated state.
	Parameters map[string]float64
}

// Batch runs the same configuration across several parameter variations,
// one instance and one goroutine per variation.
type Batch struct {
	factory    func() (*instance.Instance, error)
	variations []Variation
}

// NewBatch builds a batch over a factory producing fresh, identically
// configured instances. Instances are never shared between variations.
func NewBatch(factory func() (*instance.Instance, error), variations []Variation) *Batch {
	return &Batch{factory: factory, variations: variations}
}

// Run executes every variation and returns the results in variation order.
// The first failure wins; remaining runs still finish.
func (b *Batch) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(b.variations))
	errs := make([]error, len(b.variations))

	var wg sync.WaitGroup
	for i := range b.variations {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			inst, err := b.factory()
			if err != nil {
				errs[idx] = err
				return
			}
			if err := applyParameters(inst, b.variations[idx].Parameters); err != nil {
				errs[idx] = fmt.Errorf("variation %s: %w", b.variations[idx].Name, err)
				return
			}
			results[idx], errs[idx] = New(inst).Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// applyParameters writes the overrides one variable at a time, while the
// instance is still Instantiated and parameters are writable.
func applyParameters(inst *instance.Instance, params map[string]float64) error {
	desc := inst.Descriptor()
	for name, value := range params {
		var ref fmi.ValueReference
		found := false
		for _, v := range desc.Variables {
			if v.Name == name {
				ref = v.ValueReference
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("model %s has no variable %q", desc.Name, name)
		}
		if err := inst.SetFloat64([]fmi.ValueReference{ref}, []float64{value}); err != nil {
			return err
		}
	}
	return nil
}
