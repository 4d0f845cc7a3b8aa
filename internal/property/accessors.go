package property

import (
	"context"
	"fmt"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// read resolves name, checks availability and fetches a value of kind.
// A nil Value means the service reported none.
func (r *Repository) read(ctx context.Context, name string, areaID int32, kind vhal.DataType) (vhal.Value, error) {
	id, err := r.resolveAvailable(ctx, name, areaID)
	if err != nil {
		return nil, err
	}

	v, err := r.service.Get(ctx, id, areaID, kind)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if v != nil && v.DataType() != kind {
		return nil, r.internal(internalErrorf("%s: service returned %s for a %s read", name, v.DataType(), kind))
	}
	return v, nil
}

// write resolves name and forwards v. Writes skip the availability check;
// the service decides whether a write is legal.
func (r *Repository) write(ctx context.Context, name string, areaID int32, v vhal.Value) (string, error) {
	id, err := r.resolve(name)
	if err != nil {
		return "", err
	}

	if err := r.service.Set(ctx, id, areaID, v); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return ResultSuccess, nil
}

// required unwraps a value the service must always report.
func required[T vhal.Value](r *Repository, name string, v vhal.Value) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, r.internal(internalErrorf("%s: service reported no %s value", name, zero.DataType()))
	}
	return t, nil
}

// optional unwraps a value the service may omit, yielding the zero value.
func optional[T vhal.Value](v vhal.Value) T {
	t, _ := v.(T)
	return t
}

// GetString reads a string property. A missing value reads as "".
func (r *Repository) GetString(ctx context.Context, name string, areaID int32) (string, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeString)
	if err != nil {
		return "", err
	}
	return string(optional[vhal.StringValue](v)), nil
}

// GetBool reads a boolean property.
func (r *Repository) GetBool(ctx context.Context, name string, areaID int32) (bool, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeBoolean)
	if err != nil {
		return false, err
	}
	b, err := required[vhal.BoolValue](r, name, v)
	return bool(b), err
}

// GetInt32 reads an int32 property.
func (r *Repository) GetInt32(ctx context.Context, name string, areaID int32) (int32, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeInt32)
	if err != nil {
		return 0, err
	}
	i, err := required[vhal.Int32Value](r, name, v)
	return int32(i), err
}

// GetInt32Array reads an int32 array property.
func (r *Repository) GetInt32Array(ctx context.Context, name string, areaID int32) ([]int32, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeInt32Vec)
	if err != nil {
		return nil, err
	}
	a, err := required[vhal.Int32ArrayValue](r, name, v)
	if err != nil {
		return nil, err
	}
	if a == nil {
		a = vhal.Int32ArrayValue{}
	}
	return []int32(a), nil
}

// GetInt64 reads an int64 property. A missing value reads as 0.
func (r *Repository) GetInt64(ctx context.Context, name string, areaID int32) (int64, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeInt64)
	if err != nil {
		return 0, err
	}
	return int64(optional[vhal.Int64Value](v)), nil
}

// GetInt64Array reads an int64 array property. A missing value reads as an
// empty slice.
func (r *Repository) GetInt64Array(ctx context.Context, name string, areaID int32) ([]int64, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeInt64Vec)
	if err != nil {
		return nil, err
	}
	a := optional[vhal.Int64ArrayValue](v)
	if a == nil {
		return []int64{}, nil
	}
	return []int64(a), nil
}

// GetFloat reads a float property.
func (r *Repository) GetFloat(ctx context.Context, name string, areaID int32) (float32, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeFloat)
	if err != nil {
		return 0, err
	}
	f, err := required[vhal.FloatValue](r, name, v)
	return float32(f), err
}

// GetFloatArray reads a float array property. A missing value reads as an
// empty slice.
func (r *Repository) GetFloatArray(ctx context.Context, name string, areaID int32) ([]float32, error) {
	v, err := r.read(ctx, name, areaID, vhal.DataTypeFloatVec)
	if err != nil {
		return nil, err
	}
	a := optional[vhal.FloatArrayValue](v)
	if a == nil {
		return []float32{}, nil
	}
	return []float32(a), nil
}

// SetString writes a string property.
func (r *Repository) SetString(ctx context.Context, name string, areaID int32, value string) (string, error) {
	return r.write(ctx, name, areaID, vhal.StringValue(value))
}

// SetBool writes a boolean property.
func (r *Repository) SetBool(ctx context.Context, name string, areaID int32, value bool) (string, error) {
	return r.write(ctx, name, areaID, vhal.BoolValue(value))
}

// SetInt32 writes an int32 property.
func (r *Repository) SetInt32(ctx context.Context, name string, areaID int32, value int32) (string, error) {
	return r.write(ctx, name, areaID, vhal.Int32Value(value))
}

// SetInt32Array writes an int32 array property.
func (r *Repository) SetInt32Array(ctx context.Context, name string, areaID int32, value []int32) (string, error) {
	return r.write(ctx, name, areaID, vhal.Int32ArrayValue(value))
}

// SetInt64 writes an int64 property.
func (r *Repository) SetInt64(ctx context.Context, name string, areaID int32, value int64) (string, error) {
	return r.write(ctx, name, areaID, vhal.Int64Value(value))
}

// SetInt64Array writes an int64 array property.
func (r *Repository) SetInt64Array(ctx context.Context, name string, areaID int32, value []int64) (string, error) {
	return r.write(ctx, name, areaID, vhal.Int64ArrayValue(value))
}

// SetFloat writes a float property.
func (r *Repository) SetFloat(ctx context.Context, name string, areaID int32, value float32) (string, error) {
	return r.write(ctx, name, areaID, vhal.FloatValue(value))
}

// SetFloatArray writes a float array property.
func (r *Repository) SetFloatArray(ctx context.Context, name string, areaID int32, value []float32) (string, error) {
	return r.write(ctx, name, areaID, vhal.FloatArrayValue(value))
}

// Get reads a property of the given kind and returns the plain Go value
// (string, bool, int32, []int32, int64, []int64, float32 or []float32).
func (r *Repository) Get(ctx context.Context, name string, areaID int32, kind vhal.DataType) (any, error) {
	switch kind {
	case vhal.DataTypeString:
		return r.GetString(ctx, name, areaID)
	case vhal.DataTypeBoolean:
		return r.GetBool(ctx, name, areaID)
	case vhal.DataTypeInt32:
		return r.GetInt32(ctx, name, areaID)
	case vhal.DataTypeInt32Vec:
		return r.GetInt32Array(ctx, name, areaID)
	case vhal.DataTypeInt64:
		return r.GetInt64(ctx, name, areaID)
	case vhal.DataTypeInt64Vec:
		return r.GetInt64Array(ctx, name, areaID)
	case vhal.DataTypeFloat:
		return r.GetFloat(ctx, name, areaID)
	case vhal.DataTypeFloatVec:
		return r.GetFloatArray(ctx, name, areaID)
	default:
		return nil, r.internal(internalErrorf("no accessor for %s", kind))
	}
}

// Set writes v to a property. The kind is taken from v.
func (r *Repository) Set(ctx context.Context, name string, areaID int32, v vhal.Value) (string, error) {
	switch v := v.(type) {
	case vhal.StringValue:
		return r.SetString(ctx, name, areaID, string(v))
	case vhal.BoolValue:
		return r.SetBool(ctx, name, areaID, bool(v))
	case vhal.Int32Value:
		return r.SetInt32(ctx, name, areaID, int32(v))
	case vhal.Int32ArrayValue:
		return r.SetInt32Array(ctx, name, areaID, []int32(v))
	case vhal.Int64Value:
		return r.SetInt64(ctx, name, areaID, int64(v))
	case vhal.Int64ArrayValue:
		return r.SetInt64Array(ctx, name, areaID, []int64(v))
	case vhal.FloatValue:
		return r.SetFloat(ctx, name, areaID, float32(v))
	case vhal.FloatArrayValue:
		return r.SetFloatArray(ctx, name, areaID, []float32(v))
	default:
		return "", r.internal(internalErrorf("no accessor for value %T", v))
	}
}
