package instance

import (
	"github.com/san-kum/gofmi/internal/fmi"
)

// GetVersion returns the implemented FMI version string.
func (in *Instance) GetVersion() string { return Version }

// SetDebugLogging toggles the given categories on the enable map. An
// unknown category name is an error; previously applied toggles stick.
func (in *Instance) SetDebugLogging(loggingOn bool, categories []string) error {
	for _, name := range categories {
		if err := in.ctx.SetLogging(fmi.Category(name), loggingOn); err != nil {
			in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
			return err
		}
	}
	return nil
}

// EnterInitializationMode starts the initial-condition computation phase.
// The tolerance is accepted for interface compatibility and unused by the
// fixed-step engine.
func (in *Instance) EnterInitializationMode(tolerance *float64, startTime float64, stopTime *float64) error {
	in.trace("EnterInitializationMode(startTime=%v)", startTime)
	if in.state != fmi.Instantiated {
		return in.invalidState("EnterInitializationMode")
	}
	_ = tolerance
	in.ctx.initialize(startTime, stopTime)
	in.state = fmi.InitializationMode
	return nil
}

// ExitInitializationMode flushes pending writes through CalculateValues
// and moves to the mode the interface type dictates: EventMode for Model
// Exchange, EventMode or StepMode for Co-Simulation depending on the
// negotiated eventModeUsed, ClockActivationMode for Scheduled Execution.
func (in *Instance) ExitInitializationMode() error {
	in.trace("ExitInitializationMode()")
	if in.state != fmi.InitializationMode {
		return in.invalidState("ExitInitializationMode")
	}
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return err
		}
		in.dirtyValues = false
	}

	switch in.typ {
	case fmi.ModelExchange:
		in.state = fmi.EventMode
	case fmi.CoSimulation:
		// Seed the crossing detection with the indicator values at the
		// start of the run.
		if w := in.ctx.wrapper; w != nil {
			if err := in.sampleIndicators(w.preZ); err != nil {
				return err
			}
			if w.eventModeUsed {
				in.state = fmi.EventMode
			} else {
				in.state = fmi.StepMode
			}
		}
	case fmi.ScheduledExecution:
		in.state = fmi.ClockActivationMode
	}
	return nil
}

// EnterEventMode is legal in any non-terminated state.
func (in *Instance) EnterEventMode() error {
	in.trace("EnterEventMode()")
	if in.state == fmi.Terminated {
		return in.invalidState("EnterEventMode")
	}
	in.state = fmi.EventMode
	return nil
}

// UpdateDiscreteStates runs the model's event update and returns a fresh
// set of event flags. Legal only in EventMode.
func (in *Instance) UpdateDiscreteStates() (fmi.EventFlags, error) {
	in.trace("UpdateDiscreteStates()")
	var flags fmi.EventFlags
	if in.state != fmi.EventMode {
		return flags, in.invalidState("UpdateDiscreteStates")
	}
	if err := in.model.EventUpdate(in.ctx, &flags); err != nil {
		return fmi.EventFlags{}, err
	}
	in.dirtyValues = true
	return flags, nil
}

// Terminate ends the simulation. Legal in any non-terminated state.
func (in *Instance) Terminate() error {
	in.trace("Terminate()")
	if in.state == fmi.Terminated {
		return in.invalidState("Terminate")
	}
	in.state = fmi.Terminated
	return nil
}

// Reset returns the instance to Instantiated: clock and step counter
// cleared, event-indicator history zeroed, start values re-applied. Legal
// in any state.
func (in *Instance) Reset() error {
	in.trace("Reset()")
	in.state = fmi.Instantiated
	in.ctx.reset()
	in.model.SetStartValues()
	in.dirtyValues = true
	return nil
}
