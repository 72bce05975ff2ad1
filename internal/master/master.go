// Package master drives a Co-Simulation instance through the importer's
// side of the protocol: initialization, the communication-point loop,
// event handling, and termination, recording selected outputs on the way.
package master

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
)

// Config describes one run.
type Config struct {
	StartTime float64
	StopTime  float64
	// StepSize is the communication step.
	StepSize float64
	// Outputs names the variables recorded at every communication point.
	Outputs []string
}

// Result is the recorded trajectory of one run.
type Result struct {
	Times []float64
	// Signals holds one series per requested output, aligned with Times.
	Signals map[string][]float64
	// Events counts the event-mode excursions the run went through.
	Events int
	// Terminated is set when the model requested the end of the run.
	Terminated bool
	StepsTaken int
}

// Observer is notified after every recorded communication point. Values
// are aligned with Config.Outputs.
type Observer interface {
	OnStep(t float64, values []float64)
}

// Master owns one instance for the duration of a run.
type Master struct {
	inst      *instance.Instance
	observers []Observer
}

func New(inst *instance.Instance) *Master {
	return &Master{inst: inst}
}

func (m *Master) AddObserver(o Observer) { m.observers = append(m.observers, o) }

// Run executes the communication-point loop until the stop time, the
// model's termination request, or context cancellation.
func (m *Master) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := m.validateConfig(cfg); err != nil {
		return nil, err
	}
	refs, err := m.resolveOutputs(cfg.Outputs)
	if err != nil {
		return nil, err
	}

	// Rounding keeps grids like 0.3/0.1, whose float division lands just
	// under a whole number, from losing their last communication point.
	steps := int(math.Round((cfg.StopTime - cfg.StartTime) / cfg.StepSize))
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Signals: make(map[string][]float64, len(cfg.Outputs)),
	}
	for _, name := range cfg.Outputs {
		result.Signals[name] = make([]float64, 0, steps+1)
	}

	stop := cfg.StopTime
	if err := m.inst.EnterInitializationMode(nil, cfg.StartTime, &stop); err != nil {
		return nil, err
	}
	if err := m.inst.ExitInitializationMode(); err != nil {
		return nil, err
	}
	if m.inst.State() == fmi.EventMode {
		if err := m.handleEvents(result); err != nil {
			return nil, err
		}
		if err := m.inst.EnterStepMode(); err != nil {
			return nil, err
		}
	}

	if err := m.record(result, cfg.Outputs, refs, cfg.StartTime); err != nil {
		return nil, err
	}

	comm := cfg.StartTime
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// Aim for the grid point even after an early return moved the
		// communication point off it.
		target := cfg.StartTime + float64(i+1)*cfg.StepSize
		for {
			res, err := m.inst.DoStep(comm, target-comm)
			if err != nil {
				return result, err
			}
			comm = res.LastSuccessfulTime
			result.StepsTaken++

			if res.EventHandlingNeeded {
				if err := m.inst.EnterEventMode(); err != nil {
					return result, err
				}
				if err := m.handleEvents(result); err != nil {
					return result, err
				}
				if result.Terminated {
					if err := m.record(result, cfg.Outputs, refs, comm); err != nil {
						return result, err
					}
					if err := m.inst.Terminate(); err != nil {
						return result, err
					}
					return result, nil
				}
				if err := m.inst.EnterStepMode(); err != nil {
					return result, err
				}
			}
			if res.TerminateSimulation {
				result.Terminated = true
				if err := m.record(result, cfg.Outputs, refs, comm); err != nil {
					return result, err
				}
				if err := m.inst.Terminate(); err != nil {
					return result, err
				}
				return result, nil
			}
			if !res.EarlyReturn {
				comm = target
				break
			}
		}

		if err := m.record(result, cfg.Outputs, refs, comm); err != nil {
			return result, err
		}
	}

	if err := m.inst.Terminate(); err != nil {
		return result, err
	}
	return result, nil
}

func (m *Master) validateConfig(cfg Config) error {
	if cfg.StepSize <= 0 {
		return fmt.Errorf("step size must be positive, got %f", cfg.StepSize)
	}
	if cfg.StopTime <= cfg.StartTime {
		return fmt.Errorf("stop time %f must be after start time %f", cfg.StopTime, cfg.StartTime)
	}
	return nil
}

func (m *Master) resolveOutputs(names []string) ([]fmi.ValueReference, error) {
	desc := m.inst.Descriptor()
	refs := make([]fmi.ValueReference, len(names))
outer:
	for i, name := range names {
		for _, v := range desc.Variables {
			if v.Name == name {
				refs[i] = v.ValueReference
				continue outer
			}
		}
		return nil, fmt.Errorf("model %s has no variable %q", desc.Name, name)
	}
	return refs, nil
}

// handleEvents iterates UpdateDiscreteStates until the model settles.
func (m *Master) handleEvents(result *Result) error {
	result.Events++
	for {
		flags, err := m.inst.UpdateDiscreteStates()
		if err != nil {
			return err
		}
		if flags.TerminateSimulation {
			result.Terminated = true
			return nil
		}
		if !flags.DiscreteStatesNeedUpdate {
			return nil
		}
	}
}

func (m *Master) record(result *Result, names []string, refs []fmi.ValueReference, t float64) error {
	values := make([]float64, len(refs))
	if err := m.inst.GetFloat64(refs, values); err != nil {
		return err
	}
	result.Times = append(result.Times, t)
	for i, name := range names {
		result.Signals[name] = append(result.Signals[name], values[i])
	}
	for _, o := range m.observers {
		o.OnStep(t, values)
	}
	return nil
}
