package fmi

// Status is the result classification reported through the logging
// callback, mirroring fmi3Status.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusDiscard
	StatusError
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "Warning"
	case StatusDiscard:
		return "Discard"
	case StatusError:
		return "Error"
	case StatusFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// InterfaceType selects which FMI interface an instance was created for.
type InterfaceType int

const (
	ModelExchange InterfaceType = iota
	CoSimulation
	ScheduledExecution
)

func (t InterfaceType) String() string {
	switch t {
	case ModelExchange:
		return "ModelExchange"
	case CoSimulation:
		return "CoSimulation"
	case ScheduledExecution:
		return "ScheduledExecution"
	default:
		return "Unknown"
	}
}
