package fmi

// ModelState is the lifecycle state of a model instance. Exactly one state
// is current at a time; transitions happen only through the documented
// instance entry points.
type ModelState int

const (
	// Instantiated allows one-time initialization and start-value setting.
	//
	// See https://fmi-standard.org/docs/3.0.1/#Instantiated
	Instantiated ModelState = iota
	// InitializationMode is where the importer computes consistent initial
	// conditions for the overall system.
	//
	// See https://fmi-standard.org/docs/3.0.1/#InitializationMode
	InitializationMode
	// EventMode evaluates discrete-time equations and event iteration.
	//
	// See https://fmi-standard.org/docs/3.0.1/#EventMode
	EventMode
	ContinuousTimeMode
	StepMode
	ClockActivationMode
	Terminated
)

func (s ModelState) String() string {
	switch s {
	case Instantiated:
		return "Instantiated"
	case InitializationMode:
		return "InitializationMode"
	case EventMode:
		return "EventMode"
	case ContinuousTimeMode:
		return "ContinuousTimeMode"
	case StepMode:
		return "StepMode"
	case ClockActivationMode:
		return "ClockActivationMode"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
