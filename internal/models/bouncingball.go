package models

import (
	"math"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

// Value references of the BouncingBall model. der(h) and der(v) are
// aliases onto v and g.
const (
	ballVRH    fmi.ValueReference = 1
	ballVRV    fmi.ValueReference = 2
	ballVRDerH fmi.ValueReference = 3
	ballVRG    fmi.ValueReference = 4
	ballVRDerV fmi.ValueReference = 5
	ballVRE    fmi.ValueReference = 6
	ballVRVMin fmi.ValueReference = 7
)

// BouncingBall is a ball falling under gravity that loses energy on each
// ground contact. The single event indicator is the height; a bounce flips
// the velocity scaled by the restitution coefficient, and once the bounce
// velocity drops under vMin the ball is parked and gravity disabled.
type BouncingBall struct {
	model.Base

	h    float64
	v    float64
	g    float64
	e    float64
	vMin float64
}

func NewBouncingBall() *BouncingBall { return &BouncingBall{} }

func (b *BouncingBall) Describe() model.Descriptor {
	return model.Descriptor{
		Name:                "BouncingBall",
		StateCount:          2,
		EventIndicatorCount: 1,
		FixedSolverStep:     0.001,
		Variables: []fmi.Variable{
			{ValueReference: ballVRH, Name: "h", Kind: fmi.KindFloat64, Causality: fmi.CausalityOutput, Variability: fmi.VariabilityContinuous, State: true},
			{ValueReference: ballVRV, Name: "v", Kind: fmi.KindFloat64, Causality: fmi.CausalityOutput, Variability: fmi.VariabilityContinuous, State: true},
			{ValueReference: ballVRDerH, Name: "der(h)", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal, Variability: fmi.VariabilityContinuous},
			{ValueReference: ballVRG, Name: "g", Kind: fmi.KindFloat64, Causality: fmi.CausalityParameter},
			{ValueReference: ballVRDerV, Name: "der(v)", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal, Variability: fmi.VariabilityContinuous},
			{ValueReference: ballVRE, Name: "e", Kind: fmi.KindFloat64, Causality: fmi.CausalityParameter},
			{ValueReference: ballVRVMin, Name: "v_min", Kind: fmi.KindFloat64, Causality: fmi.CausalityLocal},
		},
	}
}

func (b *BouncingBall) SetStartValues() {
	b.h = 1.0
	b.v = 0.0
	b.g = -9.81
	b.e = 0.7
	b.vMin = 0.1
}

// CalculateValues is a no-op: der(h) and der(v) alias v and g directly.
func (b *BouncingBall) CalculateValues(model.Context) error { return nil }

func (b *BouncingBall) EventUpdate(_ model.Context, flags *fmi.EventFlags) error {
	flags.Reset()
	if b.h <= 0 && b.v < 0 {
		b.h = math.SmallestNonzeroFloat64
		b.v = -b.v * b.e
		if b.v < b.vMin {
			b.v = 0
			b.g = 0
		}
		flags.ValuesOfContinuousStatesChanged = true
	}
	return nil
}

func (b *BouncingBall) GetContinuousStates(states []float64) error {
	states[0] = b.h
	states[1] = b.v
	return nil
}

func (b *BouncingBall) SetContinuousStates(states []float64) error {
	b.h = states[0]
	b.v = states[1]
	return nil
}

func (b *BouncingBall) GetContinuousStateDerivatives(derivatives []float64) error {
	derivatives[0] = b.v
	derivatives[1] = b.g
	return nil
}

func (b *BouncingBall) GetEventIndicators(_ model.Context, indicators []float64) (bool, error) {
	if len(indicators) > 0 {
		if b.h == 0 && b.v == 0 {
			// Parked ball: keep the indicator off zero so no further
			// crossings fire.
			indicators[0] = 1.0
		} else {
			indicators[0] = b.h
		}
	}
	return true, nil
}

func (b *BouncingBall) GetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case ballVRH:
			values[i] = b.h
		case ballVRV, ballVRDerH:
			values[i] = b.v
		case ballVRG, ballVRDerV:
			values[i] = b.g
		case ballVRE:
			values[i] = b.e
		case ballVRVMin:
			values[i] = b.vMin
		}
	}
	return nil
}

func (b *BouncingBall) SetFloat64(vrs []fmi.ValueReference, values []float64) error {
	for i, vr := range vrs {
		switch vr {
		case ballVRH:
			b.h = values[i]
		case ballVRV:
			b.v = values[i]
		case ballVRG:
			b.g = values[i]
		case ballVRE:
			b.e = values[i]
		case ballVRVMin:
			b.vMin = values[i]
		}
	}
	return nil
}
