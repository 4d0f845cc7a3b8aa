package property

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoharness/cartool-core/internal/vhal"
)

var allKinds = []vhal.DataType{
	vhal.DataTypeString,
	vhal.DataTypeBoolean,
	vhal.DataTypeInt32,
	vhal.DataTypeInt32Vec,
	vhal.DataTypeInt64,
	vhal.DataTypeInt64Vec,
	vhal.DataTypeFloat,
	vhal.DataTypeFloatVec,
}

var sampleValues = []vhal.Value{
	vhal.StringValue("value"),
	vhal.BoolValue(true),
	vhal.Int32Value(42),
	vhal.Int32ArrayValue{1, 2},
	vhal.Int64Value(1 << 40),
	vhal.Int64ArrayValue{3, 4},
	vhal.FloatValue(21.5),
	vhal.FloatArrayValue{0.5},
}

func TestGet_UnauthorizedName(t *testing.T) {
	svc := newFakeService()
	repo := NewRepository(testRegistry(), svc)

	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			_, err := repo.Get(context.Background(), "NOT_ALLOWED", 0, kind)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not exist or is not authorized")
			assert.True(t, errors.Is(err, ErrNotAuthorized))

			var accessErr *AccessError
			require.True(t, errors.As(err, &accessErr))
			assert.Equal(t, "NOT_ALLOWED", accessErr.Property)
		})
	}
	assert.Zero(t, svc.availabilityCalls)
	assert.Zero(t, svc.getCalls)
}

func TestSet_UnauthorizedName(t *testing.T) {
	svc := newFakeService()
	repo := NewRepository(testRegistry(), svc)

	for _, v := range sampleValues {
		_, err := repo.Set(context.Background(), "NOT_ALLOWED", 0, v)
		require.Error(t, err)
		assert.Equal(t, "Property 'NOT_ALLOWED' does not exist or is not authorized", err.Error())
	}
	assert.Empty(t, svc.sets)
}

func TestGet_Unavailable(t *testing.T) {
	svc := newFakeService()
	svc.unavailable[areaKey{vhal.HVACTemperatureSet, vhal.SeatRow1Left}] = true
	repo := NewRepository(testRegistry(), svc)

	for _, kind := range allKinds {
		_, err := repo.Get(context.Background(), "HVAC_TEMPERATURE_SET", vhal.SeatRow1Left, kind)
		require.Error(t, err)
		assert.Equal(t, "Property 'HVAC_TEMPERATURE_SET' is currently not available", err.Error())
		assert.True(t, errors.Is(err, ErrNotAvailable))
		assert.False(t, errors.Is(err, ErrNotAuthorized))
	}
	assert.Zero(t, svc.getCalls)

	// Another area of the same property stays readable.
	svc.values[areaKey{vhal.HVACTemperatureSet, vhal.SeatRow1Right}] = vhal.FloatValue(20)
	got, err := repo.GetFloat(context.Background(), "HVAC_TEMPERATURE_SET", vhal.SeatRow1Right)
	require.NoError(t, err)
	assert.Equal(t, float32(20), got)
}

func TestSet_SkipsAvailability(t *testing.T) {
	svc := newFakeService()
	for _, p := range testRegistry().Properties() {
		svc.unavailable[areaKey{p.ID, 0}] = true
	}
	repo := NewRepository(testRegistry(), svc)
	ctx := context.Background()

	results := make([]string, 0, 8)
	add := func(s string, err error) {
		require.NoError(t, err)
		results = append(results, s)
	}
	add(repo.SetString(ctx, "INFO_VIN", 0, "WAUZZZ"))
	add(repo.SetBool(ctx, "HVAC_AC_ON", 0, true))
	add(repo.SetInt32(ctx, "INFO_MODEL_YEAR", 0, 2024))
	add(repo.SetInt32Array(ctx, "INFO_FUEL_TYPE", 0, []int32{1, 2}))
	add(repo.SetInt64(ctx, "EPOCH_TIME", 0, 1700000000000))
	add(repo.SetInt64Array(ctx, "WHEEL_TICK", 0, []int64{1, 2, 3, 4, 5}))
	add(repo.SetFloat(ctx, "PERF_VEHICLE_SPEED", 0, 12.5))
	add(repo.SetFloatArray(ctx, "VENDOR_FLOATS", 0, []float32{1.5}))

	for _, r := range results {
		assert.Equal(t, "success", r)
	}
	assert.Zero(t, svc.availabilityCalls)
	require.Len(t, svc.sets, 8)
	assert.Equal(t, vhal.InfoVIN, svc.sets[0].id)
	assert.Equal(t, vhal.StringValue("WAUZZZ"), svc.sets[0].value)
	assert.Equal(t, vhal.Int64ArrayValue{1, 2, 3, 4, 5}, svc.sets[5].value)
}

func TestSet_DispatchesByValueKind(t *testing.T) {
	svc := newFakeService()
	repo := NewRepository(testRegistry(), svc)

	for _, v := range sampleValues {
		got, err := repo.Set(context.Background(), "INFO_VIN", 0, v)
		require.NoError(t, err)
		assert.Equal(t, ResultSuccess, got)
	}

	require.Len(t, svc.sets, len(sampleValues))
	for i, call := range svc.sets {
		assert.Equal(t, sampleValues[i], call.value)
	}
	assert.Zero(t, svc.availabilityCalls)

	_, err := repo.Set(context.Background(), "INFO_VIN", 0, nil)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestSet_ServiceErrorIsReturned(t *testing.T) {
	svc := newFakeService()
	svc.setErr = vhal.ErrWriteRejected
	repo := NewRepository(testRegistry(), svc)

	_, err := repo.SetString(context.Background(), "INFO_VIN", 0, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vhal.ErrWriteRejected))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestGet_DefaultsForMissingValues(t *testing.T) {
	svc := newFakeService()
	repo := NewRepository(testRegistry(), svc)
	ctx := context.Background()

	s, err := repo.GetString(ctx, "INFO_VIN", 0)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	i, err := repo.GetInt64(ctx, "EPOCH_TIME", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), i)

	ia, err := repo.GetInt64Array(ctx, "WHEEL_TICK", 0)
	require.NoError(t, err)
	assert.NotNil(t, ia)
	assert.Empty(t, ia)

	fa, err := repo.GetFloatArray(ctx, "VENDOR_FLOATS", 0)
	require.NoError(t, err)
	assert.NotNil(t, fa)
	assert.Empty(t, fa)
}

func TestGet_MissingRequiredValueIsInternal(t *testing.T) {
	svc := newFakeService()
	repo := NewRepository(testRegistry(), svc)
	ctx := context.Background()

	_, err := repo.GetBool(ctx, "HVAC_AC_ON", 0)
	assert.True(t, errors.Is(err, ErrInternal))

	_, err = repo.GetInt32(ctx, "INFO_MODEL_YEAR", 0)
	assert.True(t, errors.Is(err, ErrInternal))

	_, err = repo.GetFloat(ctx, "PERF_VEHICLE_SPEED", 0)
	assert.True(t, errors.Is(err, ErrInternal))

	_, err = repo.GetInt32Array(ctx, "INFO_FUEL_TYPE", 0)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestGet_WrongKindFromServiceIsInternal(t *testing.T) {
	svc := newFakeService()
	svc.values[areaKey{vhal.InfoVIN, 0}] = vhal.Int32Value(1)
	repo := NewRepository(testRegistry(), svc)

	_, err := repo.GetString(context.Background(), "INFO_VIN", 0)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestGet_ReturnsValues(t *testing.T) {
	svc := newFakeService()
	svc.values[areaKey{vhal.InfoVIN, 0}] = vhal.StringValue("1HGCM82633A004352")
	svc.values[areaKey{vhal.HVACACOn, vhal.SeatRow1Left}] = vhal.BoolValue(true)
	svc.values[areaKey{vhal.InfoModelYear, 0}] = vhal.Int32Value(2024)
	svc.values[areaKey{vhal.InfoFuelType, 0}] = vhal.Int32ArrayValue{1, 10}
	svc.values[areaKey{vhal.EpochTime, 0}] = vhal.Int64Value(1700000000000)
	svc.values[areaKey{vhal.WheelTick, 0}] = vhal.Int64ArrayValue{0, 1, 2, 3, 4}
	svc.values[areaKey{vhal.TirePressure, vhal.WheelLeftFront}] = vhal.FloatValue(230.5)
	svc.values[areaKey{testRegistry().Properties()[9].ID, 0}] = vhal.FloatArrayValue{1.25, 2.5}
	repo := NewRepository(testRegistry(), svc)
	ctx := context.Background()

	tests := []struct {
		name   string
		areaID int32
		kind   vhal.DataType
		want   any
	}{
		{"INFO_VIN", 0, vhal.DataTypeString, "1HGCM82633A004352"},
		{"HVAC_AC_ON", vhal.SeatRow1Left, vhal.DataTypeBoolean, true},
		{"INFO_MODEL_YEAR", 0, vhal.DataTypeInt32, int32(2024)},
		{"INFO_FUEL_TYPE", 0, vhal.DataTypeInt32Vec, []int32{1, 10}},
		{"EPOCH_TIME", 0, vhal.DataTypeInt64, int64(1700000000000)},
		{"WHEEL_TICK", 0, vhal.DataTypeInt64Vec, []int64{0, 1, 2, 3, 4}},
		{"TIRE_PRESSURE", vhal.WheelLeftFront, vhal.DataTypeFloat, float32(230.5)},
		{"VENDOR_FLOATS", 0, vhal.DataTypeFloatVec, []float32{1.25, 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Get(ctx, tt.name, tt.areaID, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, len(tests), svc.availabilityCalls)

	_, err := repo.Get(ctx, "INFO_VIN", 0, vhal.DataTypeBytes)
	assert.True(t, errors.Is(err, ErrInternal))
}
