package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/gofmi/internal/model"
)

// Registry maps model names to constructors. The CLI and the export layer
// look models up by the name carried in the run configuration.
type Registry struct {
	models map[string]func() model.Model
}

// NewRegistry returns a registry preloaded with the built-in models.
func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() model.Model)}

	r.models["Decay"] = func() model.Model { return NewDecay() }
	r.models["BouncingBall"] = func() model.Model { return NewBouncingBall() }
	r.models["VanDerPol"] = func() model.Model { return NewVanDerPol() }

	return r
}

// Register adds a constructor under name, replacing any previous entry.
func (r *Registry) Register(name string, fn func() model.Model) {
	r.models[name] = fn
}

// New constructs a fresh instance of the named model.
func (r *Registry) New(name string) (model.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// Token returns the instantiation token of the named model.
func (r *Registry) Token(name string) (string, error) {
	m, err := r.New(name)
	if err != nil {
		return "", err
	}
	return model.Token(m.Describe().Name), nil
}

// List returns the registered model names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
