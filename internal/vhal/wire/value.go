package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// EncodeValue encodes a property value.
func EncodeValue(v vhal.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("encoding value: %w", vhal.ErrTypeMismatch)
	}
	b, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s value: %w", v.DataType(), err)
	}
	return b, nil
}

// DecodeValue decodes b as the concrete Value type of kind.
func DecodeValue(kind vhal.DataType, b []byte) (vhal.Value, error) {
	var (
		v   vhal.Value
		err error
	)
	switch kind {
	case vhal.DataTypeString:
		v, err = decodeAs[vhal.StringValue](b)
	case vhal.DataTypeBoolean:
		v, err = decodeAs[vhal.BoolValue](b)
	case vhal.DataTypeInt32:
		v, err = decodeAs[vhal.Int32Value](b)
	case vhal.DataTypeInt32Vec:
		v, err = decodeAs[vhal.Int32ArrayValue](b)
	case vhal.DataTypeInt64:
		v, err = decodeAs[vhal.Int64Value](b)
	case vhal.DataTypeInt64Vec:
		v, err = decodeAs[vhal.Int64ArrayValue](b)
	case vhal.DataTypeFloat:
		v, err = decodeAs[vhal.FloatValue](b)
	case vhal.DataTypeFloatVec:
		v, err = decodeAs[vhal.FloatArrayValue](b)
	default:
		return nil, fmt.Errorf("decoding %s value: %w", kind, vhal.ErrTypeMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s value: %w", kind, err)
	}
	return v, nil
}

// EncodeBound encodes a min or max bound. A nil bound encodes as nil.
func EncodeBound(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding bound: %w", err)
	}
	return b, nil
}

// DecodeBound decodes a bound as the element type of vt. Empty input is a
// missing bound. Value types outside the supported set decode to float64.
func DecodeBound(vt vhal.ValueType, b []byte) (any, error) {
	if len(b) == 0 {
		return nil, nil
	}

	var (
		out any
		err error
	)
	switch vt {
	case vhal.ValueTypeInt32, vhal.ValueTypeInt32Array:
		out, err = decodeAs[int32](b)
	case vhal.ValueTypeInt64, vhal.ValueTypeInt64Array:
		out, err = decodeAs[int64](b)
	case vhal.ValueTypeFloat, vhal.ValueTypeFloatArray:
		out, err = decodeAs[float32](b)
	default:
		out, err = decodeAs[float64](b)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding bound: %w", err)
	}
	return out, nil
}

// EncodeEnum encodes a supported-enum list. Numeric entries are widened
// to int64; anything else is dropped. An empty list encodes as nil.
func EncodeEnum(values []any) ([]byte, error) {
	ints := enumInts(values)
	if len(ints) == 0 {
		return nil, nil
	}
	b, err := cbor.Marshal(ints)
	if err != nil {
		return nil, fmt.Errorf("encoding enum values: %w", err)
	}
	return b, nil
}

// DecodeEnum decodes a supported-enum list into int64 entries.
func DecodeEnum(b []byte) ([]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	values, err := decodeAs[[]int64](b)
	if err != nil {
		return nil, fmt.Errorf("decoding enum values: %w", err)
	}
	return anySlice(values), nil
}

func enumInts(values []any) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int:
			out = append(out, int64(n))
		case int32:
			out = append(out, int64(n))
		case int64:
			out = append(out, n)
		case uint32:
			out = append(out, int64(n))
		case uint64:
			out = append(out, int64(n)) //nolint:gosec // Enum values fit in int64
		case float32:
			out = append(out, int64(n))
		case float64:
			out = append(out, int64(n))
		}
	}
	return out
}

func anySlice(values []int64) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func decodeAs[T any](b []byte) (T, error) {
	var v T
	err := cbor.Unmarshal(b, &v)
	return v, err
}
