package export

import (
	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/models"
)

// Runtime binds a model registry to an instance table and exposes the
// entry points the way a C importer sees them: a handle in, a status out.
// Anything richer than "it worked" goes through the log callback.
type Runtime struct {
	registry *models.Registry
	table    *Table
}

// NewRuntime returns a runtime serving the given registry.
func NewRuntime(registry *models.Registry) *Runtime {
	return &Runtime{registry: registry, table: NewTable()}
}

// GetVersion returns the FMI version string.
func (r *Runtime) GetVersion() string { return instance.Version }

// InstanceCount reports the number of live instances.
func (r *Runtime) InstanceCount() int { return r.table.Len() }

// InstantiateModelExchange creates a Model-Exchange instance of the named
// model and returns its handle.
func (r *Runtime) InstantiateModelExchange(modelName, instanceName, token string, opts instance.Options) (Handle, fmi.Status) {
	m, err := r.registry.New(modelName)
	if err != nil {
		return InvalidHandle, fmi.StatusError
	}
	in, err := instance.NewModelExchange(instanceName, token, m, opts)
	if err != nil {
		return InvalidHandle, fmi.StatusError
	}
	return r.table.Put(in), fmi.StatusOK
}

// InstantiateCoSimulation creates a Co-Simulation instance of the named
// model and returns its handle.
func (r *Runtime) InstantiateCoSimulation(modelName, instanceName, token string, opts instance.Options) (Handle, fmi.Status) {
	m, err := r.registry.New(modelName)
	if err != nil {
		return InvalidHandle, fmi.StatusError
	}
	in, err := instance.NewCoSimulation(instanceName, token, m, opts)
	if err != nil {
		return InvalidHandle, fmi.StatusError
	}
	return r.table.Put(in), fmi.StatusOK
}

// FreeInstance releases a handle. Freeing an unknown or stale handle is a
// no-op, matching the C API's void signature.
func (r *Runtime) FreeInstance(h Handle) {
	r.table.Remove(h)
}

// status collapses an error to the single generic failure code.
func status(err error) fmi.Status {
	if err != nil {
		return fmi.StatusError
	}
	return fmi.StatusOK
}

func (r *Runtime) resolve(h Handle) (*instance.Instance, bool) {
	return r.table.Get(h)
}

func (r *Runtime) SetDebugLogging(h Handle, loggingOn bool, categories []string) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetDebugLogging(loggingOn, categories))
}

func (r *Runtime) EnterInitializationMode(h Handle, tolerance *float64, startTime float64, stopTime *float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.EnterInitializationMode(tolerance, startTime, stopTime))
}

func (r *Runtime) ExitInitializationMode(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.ExitInitializationMode())
}

func (r *Runtime) EnterEventMode(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.EnterEventMode())
}

func (r *Runtime) UpdateDiscreteStates(h Handle) (fmi.EventFlags, fmi.Status) {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.EventFlags{}, fmi.StatusError
	}
	flags, err := in.UpdateDiscreteStates()
	return flags, status(err)
}

func (r *Runtime) Terminate(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.Terminate())
}

func (r *Runtime) Reset(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.Reset())
}

func (r *Runtime) EnterContinuousTimeMode(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.EnterContinuousTimeMode())
}

func (r *Runtime) SetTime(h Handle, t float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetTime(t))
}

func (r *Runtime) SetContinuousStates(h Handle, states []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetContinuousStates(states))
}

func (r *Runtime) GetContinuousStates(h Handle, states []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetContinuousStates(states))
}

func (r *Runtime) GetContinuousStateDerivatives(h Handle, derivatives []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetContinuousStateDerivatives(derivatives))
}

func (r *Runtime) GetEventIndicators(h Handle, indicators []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	ok, err := in.GetEventIndicators(indicators)
	if err != nil {
		return fmi.StatusError
	}
	if !ok {
		// The sample is unusable at this point; the importer should retry
		// with a smaller step.
		return fmi.StatusDiscard
	}
	return fmi.StatusOK
}

func (r *Runtime) GetNominalsOfContinuousStates(h Handle, nominals []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetNominalsOfContinuousStates(nominals))
}

func (r *Runtime) CompletedIntegratorStep(h Handle, noSetFMUStatePriorToCurrentPoint bool) (enterEventMode, terminateSimulation bool, st fmi.Status) {
	in, ok := r.resolve(h)
	if !ok {
		return false, false, fmi.StatusError
	}
	enterEventMode, terminateSimulation, err := in.CompletedIntegratorStep(noSetFMUStatePriorToCurrentPoint)
	return enterEventMode, terminateSimulation, status(err)
}

func (r *Runtime) EnterStepMode(h Handle) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.EnterStepMode())
}

func (r *Runtime) DoStep(h Handle, currentCommunicationPoint, stepSize float64) (instance.DoStepResult, fmi.Status) {
	in, ok := r.resolve(h)
	if !ok {
		return instance.DoStepResult{}, fmi.StatusError
	}
	res, err := in.DoStep(currentCommunicationPoint, stepSize)
	return res, status(err)
}

func (r *Runtime) GetFloat64(h Handle, vrs []fmi.ValueReference, values []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetFloat64(vrs, values))
}

func (r *Runtime) SetFloat64(h Handle, vrs []fmi.ValueReference, values []float64) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetFloat64(vrs, values))
}

func (r *Runtime) GetInt32(h Handle, vrs []fmi.ValueReference, values []int32) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetInt32(vrs, values))
}

func (r *Runtime) SetInt32(h Handle, vrs []fmi.ValueReference, values []int32) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetInt32(vrs, values))
}

func (r *Runtime) GetBoolean(h Handle, vrs []fmi.ValueReference, values []bool) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetBoolean(vrs, values))
}

func (r *Runtime) SetBoolean(h Handle, vrs []fmi.ValueReference, values []bool) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetBoolean(vrs, values))
}

func (r *Runtime) GetString(h Handle, vrs []fmi.ValueReference, values []string) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.GetString(vrs, values))
}

func (r *Runtime) SetString(h Handle, vrs []fmi.ValueReference, values []string) fmi.Status {
	in, ok := r.resolve(h)
	if !ok {
		return fmi.StatusError
	}
	return status(in.SetString(vrs, values))
}
