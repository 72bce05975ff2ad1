package instance

import (
	"fmt"
	"math"

	"github.com/san-kum/gofmi/internal/fmi"
)

// epsilon is the binary64 machine epsilon used for communication-point
// comparisons. Step sizes that are exact binary fractions stay exact; the
// rest accumulate at most one ulp per arithmetic operation, which this
// tolerance absorbs without ever bridging two distinct grid points.
const epsilon = 2.220446049250313e-16

func isClose(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// DoStepResult reports the outcome of one DoStep call.
type DoStepResult struct {
	// EventHandlingNeeded asks the importer to push the instance into
	// EventMode. Only raised when event mode was negotiated at
	// instantiation.
	EventHandlingNeeded bool
	// TerminateSimulation is the model's request to end the run.
	TerminateSimulation bool
	// EarlyReturn reports that the step stopped before the requested
	// communication point.
	EarlyReturn bool
	// LastSuccessfulTime is the internal time after the step.
	LastSuccessfulTime float64
}

// EnterStepMode returns a Co-Simulation instance to StepMode after event
// handling.
func (in *Instance) EnterStepMode() error {
	in.trace("EnterStepMode()")
	if err := in.assertType(fmi.CoSimulation); err != nil {
		return err
	}
	if in.state != fmi.EventMode && in.state != fmi.StepMode {
		return in.invalidState("EnterStepMode")
	}
	in.state = fmi.StepMode
	return nil
}

// DoStep advances the wrapped model from the current communication point
// by stepSize using the embedded fixed-step solver. The call validates
// before it mutates: a rejected step leaves time, states, and indicator
// history untouched.
func (in *Instance) DoStep(currentCommunicationPoint, stepSize float64) (DoStepResult, error) {
	in.trace("DoStep(t=%v, h=%v)", currentCommunicationPoint, stepSize)
	var res DoStepResult
	if err := in.assertType(fmi.CoSimulation); err != nil {
		return res, err
	}
	if in.state != fmi.StepMode {
		return res, in.invalidState("DoStep")
	}
	w := in.ctx.wrapper

	if !isClose(currentCommunicationPoint, w.nextCommunicationPoint) {
		err := fmt.Errorf("communication point %v does not match expected %v",
			currentCommunicationPoint, w.nextCommunicationPoint)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return res, err
	}
	if stepSize <= 0 {
		err := fmt.Errorf("communication step size must be positive, got %v", stepSize)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return res, err
	}
	next := currentCommunicationPoint + stepSize
	if stop, ok := in.ctx.StopTime(); ok && next > stop && !isClose(next, stop) {
		err := fmt.Errorf("communication point %v exceeds stop time %v", next, stop)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return res, err
	}

	var (
		flags               fmi.EventFlags
		eventHandlingNeeded bool
		reached             bool
	)
	for {
		// The communication point counts as reached when the next solver
		// step would overshoot it; a step is never taken past it.
		nextSolverTime := in.ctx.time + in.desc.FixedSolverStep
		reached = nextSolverTime > next && !isClose(nextSolverTime, next)
		if reached || (eventHandlingNeeded && w.earlyReturnAllowed) {
			break
		}

		// An event pending from the previous iteration is still serviced
		// inside the step when early return was not negotiated.
		if eventHandlingNeeded {
			if err := in.eventUpdate(&flags); err != nil {
				return res, err
			}
		}

		stateEvent, timeEvent, err := in.fixedStep()
		if err != nil {
			return res, err
		}

		if stateEvent || timeEvent {
			if w.eventModeUsed {
				// The importer negotiated event mode: hand the event back
				// instead of handling it inline.
				eventHandlingNeeded = true
			} else {
				if err := in.eventUpdate(&flags); err != nil {
					return res, err
				}
			}
			if w.earlyReturnAllowed {
				break
			}
		}

		if flags.TerminateSimulation {
			break
		}
	}

	if reached {
		w.nextCommunicationPoint = currentCommunicationPoint + stepSize
	} else {
		w.nextCommunicationPoint = in.ctx.time
	}

	res.EventHandlingNeeded = eventHandlingNeeded
	res.TerminateSimulation = flags.TerminateSimulation
	res.EarlyReturn = w.earlyReturnAllowed && !reached
	res.LastSuccessfulTime = in.ctx.time
	return res, nil
}

// eventUpdate runs the model's event handler inside the step loop and
// rebases the crossing detection on the post-event indicator sample.
func (in *Instance) eventUpdate(flags *fmi.EventFlags) error {
	if err := in.model.EventUpdate(in.ctx, flags); err != nil {
		return err
	}
	in.dirtyValues = true
	return in.sampleIndicators(in.ctx.wrapper.preZ)
}

// fixedStep performs one forward-Euler step of the model's declared solver
// step size and samples the event indicators for zero crossings. The time
// is recomputed from the step count so that grids like 100 steps of 0.01
// land exactly on their communication points.
func (in *Instance) fixedStep() (stateEvent, timeEvent bool, err error) {
	w := in.ctx.wrapper
	h := in.desc.FixedSolverStep

	if err := in.model.GetContinuousStates(w.x); err != nil {
		return false, false, err
	}
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return false, false, err
		}
		in.dirtyValues = false
	}
	if err := in.model.GetContinuousStateDerivatives(w.dx); err != nil {
		return false, false, err
	}
	for i := range w.x {
		w.x[i] += w.dx[i] * h
	}
	if err := in.model.SetContinuousStates(w.x); err != nil {
		return false, false, err
	}
	w.numSteps++
	in.ctx.time = in.ctx.startTime + float64(w.numSteps)*h
	in.dirtyValues = true

	if err := in.sampleIndicators(w.curZ); err != nil {
		return false, false, err
	}
	for i := range w.curZ {
		if (w.preZ[i] <= 0 && w.curZ[i] > 0) || (w.preZ[i] > 0 && w.curZ[i] <= 0) {
			stateEvent = true
		}
	}
	copy(w.preZ, w.curZ)

	// The fixed-step solver never schedules time events.
	return stateEvent, false, nil
}

// sampleIndicators recomputes stale values and fills z with the current
// event-indicator sample. A sample the model reports as invalid leaves z
// unchanged.
func (in *Instance) sampleIndicators(z []float64) error {
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return err
		}
		in.dirtyValues = false
	}
	ok, err := in.model.GetEventIndicators(in.ctx, z)
	if err != nil {
		return err
	}
	if !ok {
		in.ctx.Log(fmi.StatusWarning, fmi.CategoryLogAll,
			"event indicators could not be evaluated at t=%v; keeping previous sample", in.ctx.time)
	}
	return nil
}
