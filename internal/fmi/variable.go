package fmi

import "fmt"

// ValueReference identifies one scalar variable (including each declared
// alias) within a model. References are assigned at generation time and are
// immutable afterwards.
type ValueReference uint32

// Kind is the scalar type of a variable.
type Kind int

const (
	KindFloat64 Kind = iota
	KindFloat32
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindBoolean
	KindString
	KindBinary
	KindClock
)

func (k Kind) numeric() bool {
	return k == KindFloat64 || k == KindFloat32
}

// Causality is the role of a variable.
type Causality int

const (
	CausalityLocal Causality = iota
	CausalityParameter
	CausalityCalculatedParameter
	CausalityInput
	CausalityOutput
	CausalityIndependent
)

func (c Causality) String() string {
	switch c {
	case CausalityLocal:
		return "local"
	case CausalityParameter:
		return "parameter"
	case CausalityCalculatedParameter:
		return "calculatedParameter"
	case CausalityInput:
		return "input"
	case CausalityOutput:
		return "output"
	case CausalityIndependent:
		return "independent"
	default:
		return "unknown"
	}
}

// Variability is how often a variable may change. VariabilityUnspecified is
// resolved through the defaulting rules in EffectiveVariability.
type Variability int

const (
	VariabilityUnspecified Variability = iota
	VariabilityConstant
	VariabilityFixed
	VariabilityTunable
	VariabilityDiscrete
	VariabilityContinuous
)

func (v Variability) String() string {
	switch v {
	case VariabilityConstant:
		return "constant"
	case VariabilityFixed:
		return "fixed"
	case VariabilityTunable:
		return "tunable"
	case VariabilityDiscrete:
		return "discrete"
	case VariabilityContinuous:
		return "continuous"
	default:
		return "unspecified"
	}
}

// Variable is one row of a model's generated value-reference table.
type Variable struct {
	ValueReference ValueReference
	Name           string
	Kind           Kind
	Causality      Causality
	Variability    Variability
	// State marks a continuous-time state variable.
	State bool
}

// EffectiveVariability resolves an unspecified variability per the
// standard's defaults: local and parameter variables default to fixed,
// numeric inputs and outputs to continuous, everything else to discrete.
func (v Variable) EffectiveVariability() Variability {
	if v.Variability != VariabilityUnspecified {
		return v.Variability
	}
	switch v.Causality {
	case CausalityParameter, CausalityLocal:
		return VariabilityFixed
	case CausalityInput, CausalityOutput:
		if v.Kind.numeric() {
			return VariabilityContinuous
		}
		return VariabilityDiscrete
	default:
		return VariabilityDiscrete
	}
}

// SettableIn reports whether the variable may be written in the given
// lifecycle state. The returned error carries the rule that was violated;
// the caller logs it together with the value reference.
func (v Variable) SettableIn(state ModelState) error {
	switch {
	case v.Causality == CausalityParameter && v.EffectiveVariability() == VariabilityTunable:
		if state == Instantiated || state == InitializationMode || state == EventMode {
			return nil
		}
		return fmt.Errorf("variable %s (tunable parameter) can only be set after instantiation, in initialization mode or event mode", v.Name)

	case v.Causality == CausalityParameter || v.Causality == CausalityLocal:
		if v.EffectiveVariability() == VariabilityFixed {
			if state == Instantiated || state == InitializationMode {
				return nil
			}
			return fmt.Errorf("variable %s (fixed %s) can only be set after instantiation or in initialization mode", v.Name, v.Causality)
		}
		if state == Terminated {
			return fmt.Errorf("variable %s cannot be set in terminated state", v.Name)
		}
		return nil

	case v.Causality == CausalityInput:
		if state == Terminated {
			return fmt.Errorf("variable %s (input) cannot be set in terminated state", v.Name)
		}
		return nil

	default:
		if state == Terminated {
			return fmt.Errorf("variable %s cannot be set in terminated state", v.Name)
		}
		return nil
	}
}
