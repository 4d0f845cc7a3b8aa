package property

import (
	"context"
	"sync"

	"github.com/autoharness/cartool-core/internal/registry"
	"github.com/autoharness/cartool-core/internal/vhal"
)

type areaKey struct {
	id     vhal.PropertyID
	areaID int32
}

type setCall struct {
	id     vhal.PropertyID
	areaID int32
	value  vhal.Value
}

// fakeService is an in-memory vhal.Service that records its calls.
type fakeService struct {
	mu sync.Mutex

	descriptors []vhal.Descriptor
	unavailable map[areaKey]bool
	values      map[areaKey]vhal.Value
	setErr      error

	listedIDs         []vhal.PropertyID
	availabilityCalls int
	getCalls          int
	sets              []setCall
}

func newFakeService(descriptors ...vhal.Descriptor) *fakeService {
	return &fakeService{
		descriptors: descriptors,
		unavailable: make(map[areaKey]bool),
		values:      make(map[areaKey]vhal.Value),
	}
}

func (f *fakeService) ListDescriptors(_ context.Context, ids []vhal.PropertyID) ([]vhal.Descriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listedIDs = ids
	return f.descriptors, nil
}

func (f *fakeService) IsAvailable(_ context.Context, id vhal.PropertyID, areaID int32) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availabilityCalls++
	return !f.unavailable[areaKey{id, areaID}], nil
}

func (f *fakeService) Get(_ context.Context, id vhal.PropertyID, areaID int32, _ vhal.DataType) (vhal.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.values[areaKey{id, areaID}], nil
}

func (f *fakeService) Set(_ context.Context, id vhal.PropertyID, areaID int32, v vhal.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets = append(f.sets, setCall{id: id, areaID: areaID, value: v})
	return nil
}

// recordingLogger captures warn and error messages.
type recordingLogger struct {
	mu    sync.Mutex
	warns []map[string]any
	errs  []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}

func (l *recordingLogger) Warn(_ string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		fields[args[i].(string)] = args[i+1]
	}
	l.warns = append(l.warns, fields)
}

func (l *recordingLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, msg)
}

func testRegistry() *registry.Registry {
	return registry.MustNew([]registry.Property{
		{Name: "INFO_VIN", Description: "Vehicle identification number.", ID: vhal.InfoVIN},
		{Name: "HVAC_TEMPERATURE_SET", Description: "Target temperature.", ID: vhal.HVACTemperatureSet},
		{Name: "HVAC_AC_ON", Description: "Air conditioning.", ID: vhal.HVACACOn},
		{Name: "INFO_MODEL_YEAR", Description: "Model year.", ID: vhal.InfoModelYear},
		{Name: "INFO_FUEL_TYPE", Description: "Fuel types.", ID: vhal.InfoFuelType},
		{Name: "EPOCH_TIME", Description: "Epoch time.", ID: vhal.EpochTime},
		{Name: "WHEEL_TICK", Description: "Wheel ticks.", ID: vhal.WheelTick},
		{Name: "PERF_VEHICLE_SPEED", Description: "Speed.", ID: vhal.PerfVehicleSpeed},
		{Name: "TIRE_PRESSURE", Description: "Tire pressure.", ID: vhal.TirePressure},
		{Name: "VENDOR_FLOATS", Description: "Vendor floats.", ID: vhal.VendorPropertyID(vhal.AreaGlobalBits, vhal.TypeFloatVecBits, 3)},
	})
}

func globalDescriptor(id vhal.PropertyID, access vhal.Access, vt vhal.ValueType) vhal.Descriptor {
	return vhal.Descriptor{
		ID:          id,
		Access:      access,
		ChangeMode:  vhal.ChangeModeOnChange,
		AreaType:    vhal.AreaTypeGlobal,
		ValueType:   vt,
		AreaConfigs: []vhal.AreaConfig{{AreaID: 0}},
	}
}
