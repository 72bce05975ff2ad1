package models

import (
	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

// Value references of the VanDerPol model.
const (
	vdpVRX0    fmi.ValueReference = 1
	vdpVRDerX0 fmi.ValueReference = 2
	vdpVRX1    fmi.ValueReference = 3
	vdpVRDerX1 fmi.ValueReference = 4
	vdpVRMu    fmi.ValueReference = 5
)

// VanDerPol is the Van der Pol oscillator:
//
//	dx0/dt = x1
//	dx1/dt = mu*(1 - x0^2)*x1 - x0
//
// mu is tunable so importers can retune the damping between steps.
type VanDerPol struct {
	model.Base

	x0, x1       float64
	derX0, derX1 float64
	mu           float64
}

func NewVanDerPol() *VanDerPol { return &VanDerPol{} }

func (v *VanDerPol) Describe() model.Descriptor {
	return model.Descriptor{
		Name:            "VanDerPol",
		StateCount:      2,
		FixedSolverStep: 0.001,
		Variables: []fmi.Variable{
			{ValueReference: vdpVRX0, Name: "x0", Kind: fmi.KindFloat64, Causality: fmi.CausalityOutput, Variability: fmi.VariabilityContinuous, State: true},
			{ValueReference: vdpVRDerX0, Name: "der(x0)", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal, Variability: fmi.VariabilityContinuous},
			{ValueReference: vdpVRX1, Name: "x1", Kind: fmi.KindFloat64, Causality: fmi.CausalityOutput, Variability: fmi.VariabilityContinuous, State: true},
			{ValueReference: vdpVRDerX1, Name: "der(x1)", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal, Variability: fmi.VariabilityContinuous},
			{ValueReference: vdpVRMu, Name: "mu", Kind: fmi.KindFloat64, Causality: fmi.CausalityParameter, Variability: fmi.VariabilityTunable},
		},
	}
}

func (v *VanDerPol) SetStartValues() {
	v.x0 = 2.0
	v.x1 = 0.0
	v.mu = 1.0
}

func (v *VanDerPol) CalculateValues(model.Context) error {
	v.derX0 = v.x1
	v.derX1 = v.mu*(1-v.x0*v.x0)*v.x1 - v.x0
	return nil
}

func (v *VanDerPol) GetContinuousStates(states []float64) error {
	states[0] = v.x0
	states[1] = v.x1
	return nil
}

func (v *VanDerPol) SetContinuousStates(states []float64) error {
	v.x0 = states[0]
	v.x1 = states[1]
	return nil
}

func (v *VanDerPol) GetContinuousStateDerivatives(derivatives []float64) error {
	derivatives[0] = v.derX0
	derivatives[1] = v.derX1
	return nil
}

func (v *VanDerPol) GetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case vdpVRX0:
			values[i] = v.x0
		case vdpVRDerX0:
			values[i] = v.derX0
		case vdpVRX1:
			values[i] = v.x1
		case vdpVRDerX1:
			values[i] = v.derX1
		case vdpVRMu:
			values[i] = v.mu
		}
	}
	return nil
}

func (v *VanDerPol) SetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case vdpVRX0:
			v.x0 = values[i]
		case vdpVRX1:
			v.x1 = values[i]
		case vdpVRMu:
			v.mu = values[i]
		}
	}
	return nil
}
