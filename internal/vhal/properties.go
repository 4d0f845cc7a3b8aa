package vhal

import "sort"

// System-owned property ids.
const (
	InfoVIN                          = PropertyID(groupSystem | areaGlobal | typeString | 0x0100)
	InfoMake                         = PropertyID(groupSystem | areaGlobal | typeString | 0x0101)
	InfoModel                        = PropertyID(groupSystem | areaGlobal | typeString | 0x0102)
	InfoModelYear                    = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0103)
	InfoFuelCapacity                 = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0104)
	InfoFuelType                     = PropertyID(groupSystem | areaGlobal | typeInt32Vec | 0x0105)
	InfoEVBatteryCapacity            = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0106)
	InfoEVConnectorType              = PropertyID(groupSystem | areaGlobal | typeInt32Vec | 0x0107)
	InfoFuelDoorLocation             = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0108)
	InfoEVPortLocation               = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0109)
	InfoDriverSeat                   = PropertyID(groupSystem | areaSeat | typeInt32 | 0x010A)
	PerfOdometer                     = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0204)
	PerfVehicleSpeed                 = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0207)
	PerfVehicleSpeedDisplay          = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0208)
	EngineRPM                        = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0305)
	FuelLevel                        = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0307)
	FuelDoorOpen                     = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x0308)
	RangeRemaining                   = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0308)
	EVBatteryLevel                   = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0309)
	TirePressure                     = PropertyID(groupSystem | areaWheel | typeFloat | 0x0309)
	EVChargePortOpen                 = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x030A)
	EVChargePortConnected            = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x030B)
	EVBatteryInstantaneousChargeRate = PropertyID(groupSystem | areaGlobal | typeFloat | 0x030C)
	GearSelection                    = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0400)
	CurrentGear                      = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0401)
	ParkingBrakeOn                   = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x0402)
	NightMode                        = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x0407)
	TurnSignalState                  = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0408)
	IgnitionState                    = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0409)
	HVACFanSpeed                     = PropertyID(groupSystem | areaSeat | typeInt32 | 0x0500)
	HVACFanDirection                 = PropertyID(groupSystem | areaSeat | typeInt32 | 0x0501)
	HVACTemperatureCurrent           = PropertyID(groupSystem | areaSeat | typeFloat | 0x0502)
	HVACTemperatureSet               = PropertyID(groupSystem | areaSeat | typeFloat | 0x0503)
	HVACDefroster                    = PropertyID(groupSystem | areaWindow | typeBoolean | 0x0504)
	HVACACOn                         = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0505)
	HVACMaxACOn                      = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0506)
	HVACMaxDefrostOn                 = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0507)
	HVACRecircOn                     = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0508)
	HVACDualOn                       = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0509)
	HVACAutoOn                       = PropertyID(groupSystem | areaSeat | typeBoolean | 0x050A)
	HVACSeatTemperature              = PropertyID(groupSystem | areaSeat | typeInt32 | 0x050B)
	HVACTemperatureDisplayUnits      = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x050E)
	HVACPowerOn                      = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0510)
	HVACFanDirectionAvailable        = PropertyID(groupSystem | areaSeat | typeInt32Vec | 0x0511)
	DistanceDisplayUnits             = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0600)
	EnvOutsideTemperature            = PropertyID(groupSystem | areaGlobal | typeFloat | 0x0703)
	DoorPos                          = PropertyID(groupSystem | areaDoor | typeInt32 | 0x0B00)
	DoorLock                         = PropertyID(groupSystem | areaDoor | typeBoolean | 0x0B02)
	MirrorZPos                       = PropertyID(groupSystem | areaMirror | typeInt32 | 0x0B40)
	MirrorFold                       = PropertyID(groupSystem | areaGlobal | typeBoolean | 0x0B45)
	SeatBeltBuckled                  = PropertyID(groupSystem | areaSeat | typeBoolean | 0x0B82)
	WindowPos                        = PropertyID(groupSystem | areaWindow | typeInt32 | 0x0BC0)
	WindowLock                       = PropertyID(groupSystem | areaWindow | typeBoolean | 0x0BC4)
	HeadlightsState                  = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0E00)
	HeadlightsSwitch                 = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0E10)
	CabinLightsState                 = PropertyID(groupSystem | areaGlobal | typeInt32 | 0x0F01)
	ReadingLightsState               = PropertyID(groupSystem | areaSeat | typeInt32 | 0x0F03)
	EpochTime                        = PropertyID(groupSystem | areaGlobal | typeInt64 | 0x0606)
	WheelTick                        = PropertyID(groupSystem | areaGlobal | typeInt64Vec | 0x0306)
)

// SystemProperty is one entry of the canonical platform name table.
type SystemProperty struct {
	// Name is the canonical platform name, e.g. "INFO_VIN".
	Name string
	// Ident is the Go identifier of the constant in this package.
	Ident string
	ID    PropertyID
}

var systemProperties = []SystemProperty{
	{Name: "INFO_VIN", Ident: "InfoVIN", ID: InfoVIN},
	{Name: "INFO_MAKE", Ident: "InfoMake", ID: InfoMake},
	{Name: "INFO_MODEL", Ident: "InfoModel", ID: InfoModel},
	{Name: "INFO_MODEL_YEAR", Ident: "InfoModelYear", ID: InfoModelYear},
	{Name: "INFO_FUEL_CAPACITY", Ident: "InfoFuelCapacity", ID: InfoFuelCapacity},
	{Name: "INFO_FUEL_TYPE", Ident: "InfoFuelType", ID: InfoFuelType},
	{Name: "INFO_EV_BATTERY_CAPACITY", Ident: "InfoEVBatteryCapacity", ID: InfoEVBatteryCapacity},
	{Name: "INFO_EV_CONNECTOR_TYPE", Ident: "InfoEVConnectorType", ID: InfoEVConnectorType},
	{Name: "INFO_FUEL_DOOR_LOCATION", Ident: "InfoFuelDoorLocation", ID: InfoFuelDoorLocation},
	{Name: "INFO_EV_PORT_LOCATION", Ident: "InfoEVPortLocation", ID: InfoEVPortLocation},
	{Name: "INFO_DRIVER_SEAT", Ident: "InfoDriverSeat", ID: InfoDriverSeat},
	{Name: "PERF_ODOMETER", Ident: "PerfOdometer", ID: PerfOdometer},
	{Name: "PERF_VEHICLE_SPEED", Ident: "PerfVehicleSpeed", ID: PerfVehicleSpeed},
	{Name: "PERF_VEHICLE_SPEED_DISPLAY", Ident: "PerfVehicleSpeedDisplay", ID: PerfVehicleSpeedDisplay},
	{Name: "ENGINE_RPM", Ident: "EngineRPM", ID: EngineRPM},
	{Name: "FUEL_LEVEL", Ident: "FuelLevel", ID: FuelLevel},
	{Name: "FUEL_DOOR_OPEN", Ident: "FuelDoorOpen", ID: FuelDoorOpen},
	{Name: "RANGE_REMAINING", Ident: "RangeRemaining", ID: RangeRemaining},
	{Name: "EV_BATTERY_LEVEL", Ident: "EVBatteryLevel", ID: EVBatteryLevel},
	{Name: "TIRE_PRESSURE", Ident: "TirePressure", ID: TirePressure},
	{Name: "EV_CHARGE_PORT_OPEN", Ident: "EVChargePortOpen", ID: EVChargePortOpen},
	{Name: "EV_CHARGE_PORT_CONNECTED", Ident: "EVChargePortConnected", ID: EVChargePortConnected},
	{Name: "EV_BATTERY_INSTANTANEOUS_CHARGE_RATE", Ident: "EVBatteryInstantaneousChargeRate", ID: EVBatteryInstantaneousChargeRate},
	{Name: "GEAR_SELECTION", Ident: "GearSelection", ID: GearSelection},
	{Name: "CURRENT_GEAR", Ident: "CurrentGear", ID: CurrentGear},
	{Name: "PARKING_BRAKE_ON", Ident: "ParkingBrakeOn", ID: ParkingBrakeOn},
	{Name: "NIGHT_MODE", Ident: "NightMode", ID: NightMode},
	{Name: "TURN_SIGNAL_STATE", Ident: "TurnSignalState", ID: TurnSignalState},
	{Name: "IGNITION_STATE", Ident: "IgnitionState", ID: IgnitionState},
	{Name: "HVAC_FAN_SPEED", Ident: "HVACFanSpeed", ID: HVACFanSpeed},
	{Name: "HVAC_FAN_DIRECTION", Ident: "HVACFanDirection", ID: HVACFanDirection},
	{Name: "HVAC_TEMPERATURE_CURRENT", Ident: "HVACTemperatureCurrent", ID: HVACTemperatureCurrent},
	{Name: "HVAC_TEMPERATURE_SET", Ident: "HVACTemperatureSet", ID: HVACTemperatureSet},
	{Name: "HVAC_DEFROSTER", Ident: "HVACDefroster", ID: HVACDefroster},
	{Name: "HVAC_AC_ON", Ident: "HVACACOn", ID: HVACACOn},
	{Name: "HVAC_MAX_AC_ON", Ident: "HVACMaxACOn", ID: HVACMaxACOn},
	{Name: "HVAC_MAX_DEFROST_ON", Ident: "HVACMaxDefrostOn", ID: HVACMaxDefrostOn},
	{Name: "HVAC_RECIRC_ON", Ident: "HVACRecircOn", ID: HVACRecircOn},
	{Name: "HVAC_DUAL_ON", Ident: "HVACDualOn", ID: HVACDualOn},
	{Name: "HVAC_AUTO_ON", Ident: "HVACAutoOn", ID: HVACAutoOn},
	{Name: "HVAC_SEAT_TEMPERATURE", Ident: "HVACSeatTemperature", ID: HVACSeatTemperature},
	{Name: "HVAC_TEMPERATURE_DISPLAY_UNITS", Ident: "HVACTemperatureDisplayUnits", ID: HVACTemperatureDisplayUnits},
	{Name: "HVAC_POWER_ON", Ident: "HVACPowerOn", ID: HVACPowerOn},
	{Name: "HVAC_FAN_DIRECTION_AVAILABLE", Ident: "HVACFanDirectionAvailable", ID: HVACFanDirectionAvailable},
	{Name: "DISTANCE_DISPLAY_UNITS", Ident: "DistanceDisplayUnits", ID: DistanceDisplayUnits},
	{Name: "ENV_OUTSIDE_TEMPERATURE", Ident: "EnvOutsideTemperature", ID: EnvOutsideTemperature},
	{Name: "DOOR_POS", Ident: "DoorPos", ID: DoorPos},
	{Name: "DOOR_LOCK", Ident: "DoorLock", ID: DoorLock},
	{Name: "MIRROR_Z_POS", Ident: "MirrorZPos", ID: MirrorZPos},
	{Name: "MIRROR_FOLD", Ident: "MirrorFold", ID: MirrorFold},
	{Name: "SEAT_BELT_BUCKLED", Ident: "SeatBeltBuckled", ID: SeatBeltBuckled},
	{Name: "WINDOW_POS", Ident: "WindowPos", ID: WindowPos},
	{Name: "WINDOW_LOCK", Ident: "WindowLock", ID: WindowLock},
	{Name: "HEADLIGHTS_STATE", Ident: "HeadlightsState", ID: HeadlightsState},
	{Name: "HEADLIGHTS_SWITCH", Ident: "HeadlightsSwitch", ID: HeadlightsSwitch},
	{Name: "CABIN_LIGHTS_STATE", Ident: "CabinLightsState", ID: CabinLightsState},
	{Name: "READING_LIGHTS_STATE", Ident: "ReadingLightsState", ID: ReadingLightsState},
	{Name: "EPOCH_TIME", Ident: "EpochTime", ID: EpochTime},
	{Name: "WHEEL_TICK", Ident: "WheelTick", ID: WheelTick},
}

var systemByName = func() map[string]SystemProperty {
	m := make(map[string]SystemProperty, len(systemProperties))
	for _, p := range systemProperties {
		m[p.Name] = p
	}
	return m
}()

// LookupSystemProperty resolves a canonical platform property name.
func LookupSystemProperty(name string) (SystemProperty, bool) {
	p, ok := systemByName[name]
	return p, ok
}

// SystemProperties returns the platform table sorted by name.
func SystemProperties() []SystemProperty {
	out := make([]SystemProperty, len(systemProperties))
	copy(out, systemProperties)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
