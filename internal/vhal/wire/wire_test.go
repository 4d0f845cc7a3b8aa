package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoharness/cartool-core/internal/vhal"
)

func TestValueRoundTrip(t *testing.T) {
	values := []vhal.Value{
		vhal.StringValue("VIN123"),
		vhal.BoolValue(true),
		vhal.Int32Value(-7),
		vhal.Int32ArrayValue{1, 2, 3},
		vhal.Int64Value(1767225600000),
		vhal.Int64ArrayValue{0, 100, 101},
		vhal.FloatValue(21.5),
		vhal.FloatArrayValue{0.1, 2.5},
	}

	for _, v := range values {
		t.Run(v.DataType().String(), func(t *testing.T) {
			b, err := EncodeValue(v)
			require.NoError(t, err)
			got, err := DecodeValue(v.DataType(), b)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestDecodeValue_WrongKind(t *testing.T) {
	b, err := EncodeValue(vhal.StringValue("x"))
	require.NoError(t, err)

	_, err = DecodeValue(vhal.DataTypeInt32, b)
	assert.Error(t, err)

	_, err = DecodeValue(vhal.DataTypeBytes, b)
	assert.ErrorIs(t, err, vhal.ErrTypeMismatch)
}

func TestEncodeValue_Nil(t *testing.T) {
	_, err := EncodeValue(nil)
	assert.ErrorIs(t, err, vhal.ErrTypeMismatch)
}

func TestDescriptorRoundTrip(t *testing.T) {
	d := vhal.Descriptor{
		ID:         vhal.HVACTemperatureSet,
		Access:     vhal.AccessReadWrite,
		ChangeMode: vhal.ChangeModeOnChange,
		AreaType:   vhal.AreaTypeSeat,
		ValueType:  vhal.ValueTypeFloat,
		AreaConfigs: []vhal.AreaConfig{
			{AreaID: vhal.SeatRow1Left, MinValue: float32(16), MaxValue: float32(28.1)},
			{AreaID: vhal.SeatRow1Right},
		},
	}

	w, err := FromDescriptor(d)
	require.NoError(t, err)
	got, err := w.Descriptor()
	require.NoError(t, err)

	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptor_BoundsTakeValueType(t *testing.T) {
	d := vhal.Descriptor{
		ID:        vhal.GearSelection,
		ValueType: vhal.ValueTypeInt32,
		AreaConfigs: []vhal.AreaConfig{
			{MinValue: 1, MaxValue: uint64(8), SupportedEnumValues: []any{1, int32(2), "x", 4.0}},
		},
	}

	w, err := FromDescriptor(d)
	require.NoError(t, err)
	got, err := w.Descriptor()
	require.NoError(t, err)

	ac := got.AreaConfigs[0]
	assert.Equal(t, int32(1), ac.MinValue)
	assert.Equal(t, int32(8), ac.MaxValue)
	assert.Equal(t, []any{int64(1), int64(2), int64(4)}, ac.SupportedEnumValues)
}

func TestEnum(t *testing.T) {
	b, err := EncodeEnum([]any{"a"})
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = EncodeEnum([]any{uint64(3), float32(2.9)})
	require.NoError(t, err)
	got, err := DecodeEnum(b)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3), int64(2)}, got)
}
