package instance

import (
	"github.com/san-kum/gofmi/internal/fmi"
)

// EnterContinuousTimeMode leaves event handling and resumes continuous
// integration. Model-Exchange instances only, from EventMode.
func (in *Instance) EnterContinuousTimeMode() error {
	in.trace("EnterContinuousTimeMode()")
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	if in.state != fmi.EventMode {
		return in.invalidState("EnterContinuousTimeMode")
	}
	in.state = fmi.ContinuousTimeMode
	return nil
}

// SetTime advances the independent variable. The importer's solver owns
// the clock in Model Exchange, so no monotonicity is enforced here.
func (in *Instance) SetTime(t float64) error {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	in.ctx.time = t
	return nil
}

// SetContinuousStates overwrites the state vector during integration.
func (in *Instance) SetContinuousStates(states []float64) error {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	if err := in.model.SetContinuousStates(states); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

// GetContinuousStates copies the state vector into states.
func (in *Instance) GetContinuousStates(states []float64) error {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	return in.model.GetContinuousStates(states)
}

// GetContinuousStateDerivatives recomputes stale values, then copies the
// derivative vector into derivatives.
func (in *Instance) GetContinuousStateDerivatives(derivatives []float64) error {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return err
		}
		in.dirtyValues = false
	}
	return in.model.GetContinuousStateDerivatives(derivatives)
}

// GetEventIndicators samples the zero-crossing functions. The bool result
// is false when the model could not evaluate them at the current point.
func (in *Instance) GetEventIndicators(indicators []float64) (bool, error) {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return false, err
	}
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return false, err
		}
		in.dirtyValues = false
	}
	return in.model.GetEventIndicators(in.ctx, indicators)
}

// GetNominalsOfContinuousStates fills nominals with the default nominal
// value of 1.0 for every state.
func (in *Instance) GetNominalsOfContinuousStates(nominals []float64) error {
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return err
	}
	for i := range nominals {
		nominals[i] = 1.0
	}
	return nil
}

// CompletedIntegratorStep tells the model the solver finished an accepted
// step. The embedded models keep no step-local state, so this never asks
// for event mode or termination.
func (in *Instance) CompletedIntegratorStep(noSetFMUStatePriorToCurrentPoint bool) (enterEventMode, terminateSimulation bool, err error) {
	_ = noSetFMUStatePriorToCurrentPoint
	if err := in.assertType(fmi.ModelExchange); err != nil {
		return false, false, err
	}
	if in.state != fmi.ContinuousTimeMode {
		return false, false, in.invalidState("CompletedIntegratorStep")
	}
	return false, false, nil
}
