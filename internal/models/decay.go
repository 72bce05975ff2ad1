package models

import (
	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

// Value references of the Decay model.
const (
	decayVRX    fmi.ValueReference = 1
	decayVRDerX fmi.ValueReference = 2
	decayVRK    fmi.ValueReference = 3
)

// Decay is first-order exponential decay:
//
//	dx/dt = -k*x
//
// With the default k = 1 and the 0.01 internal step, one simulated second
// of forward Euler lands at x = 0.99^100.
type Decay struct {
	model.Base

	x    float64
	derX float64
	k    float64
}

func NewDecay() *Decay { return &Decay{} }

func (d *Decay) Describe() model.Descriptor {
	return model.Descriptor{
		Name:            "Decay",
		StateCount:      1,
		FixedSolverStep: 0.01,
		Variables: []fmi.Variable{
			{ValueReference: decayVRX, Name: "x", Kind: fmi.KindFloat64, Causality: fmi.CausalityOutput, Variability: fmi.VariabilityContinuous, State: true},
			{ValueReference: decayVRDerX, Name: "der(x)", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal, Variability: fmi.VariabilityContinuous},
			{ValueReference: decayVRK, Name: "k", Kind: fmi.KindFloat64, Causality: fmi.CausalityParameter},
		},
	}
}

func (d *Decay) SetStartValues() {
	d.x = 1.0
	d.derX = 0.0
	d.k = 1.0
}

func (d *Decay) CalculateValues(model.Context) error {
	d.derX = -d.k * d.x
	return nil
}

func (d *Decay) GetContinuousStates(states []float64) error {
	states[0] = d.x
	return nil
}

func (d *Decay) SetContinuousStates(states []float64) error {
	d.x = states[0]
	return nil
}

func (d *Decay) GetContinuousStateDerivatives(derivatives []float64) error {
	derivatives[0] = d.derX
	return nil
}

func (d *Decay) GetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case decayVRX:
			values[i] = d.x
		case decayVRDerX:
			values[i] = d.derX
		case decayVRK:
			values[i] = d.k
		}
	}
	return nil
}

func (d *Decay) SetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case decayVRX:
			d.x = values[i]
		case decayVRK:
			d.k = values[i]
		}
	}
	return nil
}
