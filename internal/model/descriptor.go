package model

import "github.com/san-kum/gofmi/internal/fmi"

// Descriptor is the static metadata a code generator derives from an
// annotated model: identity, buffer sizes, the embedded solver step, and
// the value-reference table the dispatch layer consults.
type Descriptor struct {
	Name string
	// StateCount is the length of the continuous-state vector.
	StateCount int
	// EventIndicatorCount is the length of the event-indicator vector.
	EventIndicatorCount int
	// FixedSolverStep is the internal step of the Co-Simulation wrapper.
	FixedSolverStep float64
	// Categories lists the logging categories the model declares, beyond
	// the two built-in ones.
	Categories []fmi.Category
	Variables  []fmi.Variable
}

// Variable looks up the table row for a value reference. The tables are
// small; a linear scan matches what the generated dispatch switch costs.
func (d Descriptor) Variable(vr fmi.ValueReference) (fmi.Variable, bool) {
	for _, v := range d.Variables {
		if v.ValueReference == vr {
			return v, true
		}
	}
	return fmi.Variable{}, false
}

// AllCategories returns the built-in logging categories followed by the
// model's own.
func (d Descriptor) AllCategories() []fmi.Category {
	cats := []fmi.Category{fmi.CategoryLogAll, fmi.CategoryTrace}
	return append(cats, d.Categories...)
}
