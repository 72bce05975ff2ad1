package instance

import (
	"fmt"

	"github.com/san-kum/gofmi/internal/fmi"
)

// beforeGet recomputes derived values when pending writes have made them
// stale. Reads never fail on state; only a failing recompute surfaces.
func (in *Instance) beforeGet(op string, nvr, nvalues int) error {
	if nvr != nvalues {
		err := fmt.Errorf("%s: %d value references but %d values", op, nvr, nvalues)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return err
	}
	if in.dirtyValues {
		if err := in.model.CalculateValues(in.ctx); err != nil {
			return err
		}
		in.dirtyValues = false
	}
	return nil
}

// beforeSet checks write legality for every referenced variable in the
// current state. Nothing is written when any reference fails.
func (in *Instance) beforeSet(op string, vrs []fmi.ValueReference, nvalues int) error {
	if len(vrs) != nvalues {
		err := fmt.Errorf("%s: %d value references but %d values", op, len(vrs), nvalues)
		in.ctx.Log(fmi.StatusError, fmi.CategoryLogAll, "%v", err)
		return err
	}
	for _, vr := range vrs {
		if err := in.validateVariableSetting(vr); err != nil {
			return err
		}
	}
	return nil
}

func (in *Instance) GetFloat64(vrs []fmi.ValueReference, values []float64) error {
	if err := in.beforeGet("GetFloat64", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetFloat64(vrs, values)
}

func (in *Instance) SetFloat64(vrs []fmi.ValueReference, values []float64) error {
	if err := in.beforeSet("SetFloat64", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetFloat64(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetFloat32(vrs []fmi.ValueReference, values []float32) error {
	if err := in.beforeGet("GetFloat32", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetFloat32(vrs, values)
}

func (in *Instance) SetFloat32(vrs []fmi.ValueReference, values []float32) error {
	if err := in.beforeSet("SetFloat32", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetFloat32(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetInt8(vrs []fmi.ValueReference, values []int8) error {
	if err := in.beforeGet("GetInt8", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetInt8(vrs, values)
}

func (in *Instance) SetInt8(vrs []fmi.ValueReference, values []int8) error {
	if err := in.beforeSet("SetInt8", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetInt8(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetInt16(vrs []fmi.ValueReference, values []int16) error {
	if err := in.beforeGet("GetInt16", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetInt16(vrs, values)
}

func (in *Instance) SetInt16(vrs []fmi.ValueReference, values []int16) error {
	if err := in.beforeSet("SetInt16", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetInt16(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetInt32(vrs []fmi.ValueReference, values []int32) error {
	if err := in.beforeGet("GetInt32", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetInt32(vrs, values)
}

func (in *Instance) SetInt32(vrs []fmi.ValueReference, values []int32) error {
	if err := in.beforeSet("SetInt32", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetInt32(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetInt64(vrs []fmi.ValueReference, values []int64) error {
	if err := in.beforeGet("GetInt64", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetInt64(vrs, values)
}

func (in *Instance) SetInt64(vrs []fmi.ValueReference, values []int64) error {
	if err := in.beforeSet("SetInt64", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetInt64(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetUInt8(vrs []fmi.ValueReference, values []uint8) error {
	if err := in.beforeGet("GetUInt8", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetUInt8(vrs, values)
}

func (in *Instance) SetUInt8(vrs []fmi.ValueReference, values []uint8) error {
	if err := in.beforeSet("SetUInt8", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetUInt8(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetUInt16(vrs []fmi.ValueReference, values []uint16) error {
	if err := in.beforeGet("GetUInt16", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetUInt16(vrs, values)
}

func (in *Instance) SetUInt16(vrs []fmi.ValueReference, values []uint16) error {
	if err := in.beforeSet("SetUInt16", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetUInt16(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetUInt32(vrs []fmi.ValueReference, values []uint32) error {
	if err := in.beforeGet("GetUInt32", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetUInt32(vrs, values)
}

func (in *Instance) SetUInt32(vrs []fmi.ValueReference, values []uint32) error {
	if err := in.beforeSet("SetUInt32", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetUInt32(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetUInt64(vrs []fmi.ValueReference, values []uint64) error {
	if err := in.beforeGet("GetUInt64", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetUInt64(vrs, values)
}

func (in *Instance) SetUInt64(vrs []fmi.ValueReference, values []uint64) error {
	if err := in.beforeSet("SetUInt64", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetUInt64(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetBoolean(vrs []fmi.ValueReference, values []bool) error {
	if err := in.beforeGet("GetBoolean", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetBoolean(vrs, values)
}

func (in *Instance) SetBoolean(vrs []fmi.ValueReference, values []bool) error {
	if err := in.beforeSet("SetBoolean", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetBoolean(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetString(vrs []fmi.ValueReference, values []string) error {
	if err := in.beforeGet("GetString", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetString(vrs, values)
}

func (in *Instance) SetString(vrs []fmi.ValueReference, values []string) error {
	if err := in.beforeSet("SetString", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetString(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetBinary(vrs []fmi.ValueReference, values [][]byte) error {
	if err := in.beforeGet("GetBinary", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetBinary(vrs, values)
}

func (in *Instance) SetBinary(vrs []fmi.ValueReference, values [][]byte) error {
	if err := in.beforeSet("SetBinary", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetBinary(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}

func (in *Instance) GetClock(vrs []fmi.ValueReference, values []bool) error {
	if err := in.beforeGet("GetClock", len(vrs), len(values)); err != nil {
		return err
	}
	return in.model.GetClock(vrs, values)
}

func (in *Instance) SetClock(vrs []fmi.ValueReference, values []bool) error {
	if err := in.beforeSet("SetClock", vrs, len(values)); err != nil {
		return err
	}
	if err := in.model.SetClock(vrs, values); err != nil {
		return err
	}
	in.dirtyValues = true
	return nil
}
