package instance

import (
	"fmt"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

// Version is the FMI version this runtime implements.
const Version = "3.0"

// Options carries the instantiation arguments shared by both interface
// types. EventModeUsed and EarlyReturnAllowed are only consulted for
// Co-Simulation instances.
type Options struct {
	ResourcePath string
	LoggingOn    bool
	LogMessage   fmi.LogCallback

	EventModeUsed      bool
	EarlyReturnAllowed bool
}

// Instance is one exportable FMU instance: the user model plus the
// lifecycle state, context, and dirty-value cache wrapped around it. An
// instance is exclusively owned by one caller-held handle and must not be
// shared across goroutines.
type Instance struct {
	name  string
	typ   fmi.InterfaceType
	state fmi.ModelState
	ctx   *Context
	desc  model.Descriptor
	model model.Model

	// dirtyValues is set by every successful write and cleared when
	// CalculateValues folds the writes into derived quantities.
	dirtyValues bool
}

// NewModelExchange constructs a Model-Exchange instance. The token must
// match the value derived from the model's name; a mismatch is a hard
// construction failure.
func NewModelExchange(name, token string, m model.Model, opts Options) (*Instance, error) {
	desc := m.Describe()
	ctx := newBasicContext(desc, opts.LoggingOn, opts.LogMessage, opts.ResourcePath)
	return newInstance(name, token, fmi.ModelExchange, m, desc, ctx)
}

// NewCoSimulation constructs a Co-Simulation instance backed by the
// embedded fixed-step solver.
func NewCoSimulation(name, token string, m model.Model, opts Options) (*Instance, error) {
	desc := m.Describe()
	ctx := newWrapperContext(desc, opts.LoggingOn, opts.LogMessage, opts.ResourcePath,
		opts.EventModeUsed, opts.EarlyReturnAllowed)
	return newInstance(name, token, fmi.CoSimulation, m, desc, ctx)
}

func newInstance(name, token string, typ fmi.InterfaceType, m model.Model, desc model.Descriptor, ctx *Context) (*Instance, error) {
	if want := model.Token(desc.Name); token != want {
		ctx.Log(fmi.StatusError, fmi.CategoryLogAll,
			"instantiation token mismatch for model %s: expected %q, got %q", desc.Name, want, token)
		return nil, fmt.Errorf("instantiation token mismatch for model %s", desc.Name)
	}

	in := &Instance{
		name:        name,
		typ:         typ,
		state:       fmi.Instantiated,
		ctx:         ctx,
		desc:        desc,
		model:       m,
		dirtyValues: true,
	}
	in.model.SetStartValues()
	return in, nil
}

// Name returns the instance name given at construction.
func (in *Instance) Name() string { return in.name }

// State returns the current lifecycle state.
func (in *Instance) State() fmi.ModelState { return in.state }

// Time returns the current simulation time.
func (in *Instance) Time() float64 { return in.ctx.Time() }

// Context exposes the instance context, mainly for drivers and tests.
func (in *Instance) Context() *Context { return in.ctx }

// Descriptor returns the model's static metadata.
func (in *Instance) Descriptor() model.Descriptor { return in.desc }

func (in *Instance) assertType(expected fmi.InterfaceType) error {
	if in.typ != expected {
		err := fmt.Errorf("instance type mismatch: expected %s, got %s", expected, in.typ)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return err
	}
	return nil
}

// invalidState logs and returns the uniform guard violation error. The
// state is left unchanged.
func (in *Instance) invalidState(op string) error {
	err := fmt.Errorf("%s called in invalid state %s", op, in.state)
	in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
	return err
}

// validateVariableSetting checks the write-legality rule for one value
// reference in the current state. Unknown references pass: they are
// ignored downstream for forward compatibility.
func (in *Instance) validateVariableSetting(vr fmi.ValueReference) error {
	v, ok := in.desc.Variable(vr)
	if !ok {
		return nil
	}
	if err := v.SettableIn(in.state); err != nil {
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "variable setting error for VR %d: %v", vr, err)
		return err
	}
	return nil
}

func (in *Instance) trace(format string, args ...any) {
	in.ctx.Log(fmi.StatusOK, fmi.CategoryTrace, format, args...)
}
