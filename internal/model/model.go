package model

import "github.com/san-kum/gofmi/internal/fmi"

// Context is the runtime surface a model sees during calculate/event
// callbacks. It is implemented by the instance's context; models must not
// retain it across calls.
type Context interface {
	// Time returns the current simulation time.
	Time() float64
	// StopTime returns the configured stop time, if one was negotiated.
	StopTime() (float64, bool)
	// ResourcePath is the directory holding the FMU's resources.
	ResourcePath() string
	// Log emits a message on the given category, subject to the
	// per-category enable map.
	Log(status fmi.Status, category fmi.Category, format string, args ...any)
}

// GetSet carries one batched getter/setter pair per scalar kind, keyed by
// value reference. Implementations ignore value references they do not
// know, so importers probing wider variable sets stay compatible.
type GetSet interface {
	GetFloat64(vrs []fmi.ValueReference, values []float64) error
	SetFloat64(vrs []fmi.ValueReference, values []float64) error
	GetFloat32(vrs []fmi.ValueReference, values []float32) error
	SetFloat32(vrs []fmi.ValueReference, values []float32) error
	GetInt8(vrs []fmi.ValueReference, values []int8) error
	SetInt8(vrs []fmi.ValueReference, values []int8) error
	GetInt16(vrs []fmi.ValueReference, values []int16) error
	SetInt16(vrs []fmi.ValueReference, values []int16) error
	GetInt32(vrs []fmi.ValueReference, values []int32) error
	SetInt32(vrs []fmi.ValueReference, values []int32) error
	GetInt64(vrs []fmi.ValueReference, values []int64) error
	SetInt64(vrs []fmi.ValueReference, values []int64) error
	GetUInt8(vrs []fmi.ValueReference, values []uint8) error
	SetUInt8(vrs []fmi.ValueReference, values []uint8) error
	GetUInt16(vrs []fmi.ValueReference, values []uint16) error
	SetUInt16(vrs []fmi.ValueReference, values []uint16) error
	GetUInt32(vrs []fmi.ValueReference, values []uint32) error
	SetUInt32(vrs []fmi.ValueReference, values []uint32) error
	GetUInt64(vrs []fmi.ValueReference, values []uint64) error
	SetUInt64(vrs []fmi.ValueReference, values []uint64) error
	GetBoolean(vrs []fmi.ValueReference, values []bool) error
	SetBoolean(vrs []fmi.ValueReference, values []bool) error
	GetString(vrs []fmi.ValueReference, values []string) error
	SetString(vrs []fmi.ValueReference, values []string) error
	GetBinary(vrs []fmi.ValueReference, values [][]byte) error
	SetBinary(vrs []fmi.ValueReference, values [][]byte) error
	GetClock(vrs []fmi.ValueReference, values []bool) error
	SetClock(vrs []fmi.ValueReference, values []bool) error
}

// Model is everything the runtime needs from a user model. The value
// reference dispatch in the GetSet methods and the Descriptor are the parts
// a generator would emit; the rest is hand-written behavior.
type Model interface {
	GetSet

	// Describe returns the static metadata. It must be constant for the
	// life of the process.
	Describe() Descriptor

	// SetStartValues applies the declared start values. Called at
	// construction and on Reset.
	SetStartValues()

	// CalculateValues recomputes derived quantities (derivatives, outputs)
	// from the stored fields. Called lazily when dirty values are read.
	CalculateValues(ctx Context) error

	// EventUpdate handles a discrete event and reports what changed.
	EventUpdate(ctx Context, flags *fmi.EventFlags) error

	// GetContinuousStates copies the state vector into states, which the
	// caller sizes to StateCount.
	GetContinuousStates(states []float64) error

	// SetContinuousStates overwrites the state vector from states.
	SetContinuousStates(states []float64) error

	// GetContinuousStateDerivatives copies the derivative vector into
	// derivatives. CalculateValues has run beforehand.
	GetContinuousStateDerivatives(derivatives []float64) error

	// GetEventIndicators samples the zero-crossing indicators. The bool
	// result is false when the indicators could not be computed (for
	// example a division by zero), in which case the caller discards the
	// sample rather than treating it as an error.
	GetEventIndicators(ctx Context, indicators []float64) (bool, error)
}

// Base provides default implementations for the optional Model hooks and
// no-op accessors for every scalar kind. Unknown value references are
// ignored by design, so the no-ops are also the correct behavior for kinds
// a model does not expose.
type Base struct{}

func (Base) CalculateValues(Context) error { return nil }

func (Base) EventUpdate(_ Context, flags *fmi.EventFlags) error {
	flags.Reset()
	return nil
}

func (Base) GetContinuousStates([]float64) error { return nil }
func (Base) SetContinuousStates([]float64) error { return nil }
func (Base) GetContinuousStateDerivatives([]float64) error { return nil }

func (Base) GetEventIndicators(_ Context, indicators []float64) (bool, error) {
	for i := range indicators {
		indicators[i] = 0
	}
	return true, nil
}

func (Base) GetFloat64([]fmi.ValueReference, []float64) error { return nil }
func (Base) SetFloat64([]fmi.ValueReference, []float64) error { return nil }
func (Base) GetFloat32([]fmi.ValueReference, []float32) error { return nil }
func (Base) SetFloat32([]fmi.ValueReference, []float32) error { return nil }
func (Base) GetInt8([]fmi.ValueReference, []int8) error { return nil }
func (Base) SetInt8([]fmi.ValueReference, []int8) error { return nil }
func (Base) GetInt16([]fmi.ValueReference, []int16) error { return nil }
func (Base) SetInt16([]fmi.ValueReference, []int16) error { return nil }
func (Base) GetInt32([]fmi.ValueReference, []int32) error { return nil }
func (Base) SetInt32([]fmi.ValueReference, []int32) error { return nil }
func (Base) GetInt64([]fmi.ValueReference, []int64) error { return nil }
func (Base) SetInt64([]fmi.ValueReference, []int64) error { return nil }
func (Base) GetUInt8([]fmi.ValueReference, []uint8) error { return nil }
func (Base) SetUInt8([]fmi.ValueReference, []uint8) error { return nil }
func (Base) GetUInt16([]fmi.ValueReference, []uint16) error { return nil }
func (Base) SetUInt16([]fmi.ValueReference, []uint16) error { return nil }
func (Base) GetUInt32([]fmi.ValueReference, []uint32) error { return nil }
func (Base) SetUInt32([]fmi.ValueReference, []uint32) error { return nil }
func (Base) GetUInt64([]fmi.ValueReference, []uint64) error { return nil }
func (Base) SetUInt64([]fmi.ValueReference, []uint64) error { return nil }
func (Base) GetBoolean([]fmi.ValueReference, []bool) error { return nil }
func (Base) SetBoolean([]fmi.ValueReference, []bool) error { return nil }
func (Base) GetString([]fmi.ValueReference, []string) error { return nil }
func (Base) SetString([]fmi.ValueReference, []string) error { return nil }
func (Base) GetBinary([]fmi.ValueReference, [][]byte) error { return nil }
func (Base) SetBinary([]fmi.ValueReference, [][]byte) error { return nil }
func (Base) GetClock([]fmi.ValueReference, []bool) error { return nil }
func (Base) SetClock([]fmi.ValueReference, []bool) error { return nil }
