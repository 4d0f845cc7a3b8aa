package property

import "github.com/autoharness/cartool-core/internal/vhal"

// ResultSuccess is returned by every successful write.
const ResultSuccess = "success"

const (
	globalAreaDescription = "Use this 'areaId' value to apply the property to the entire vehicle."
	areaDescriptionFormat = "This 'areaId' value targets the vehicle property for %s."
)

var supportedAccess = map[vhal.Access]struct{}{
	vhal.AccessRead:      {},
	vhal.AccessWrite:     {},
	vhal.AccessReadWrite: {},
}

var supportedChangeModes = map[vhal.ChangeMode]struct{}{
	vhal.ChangeModeStatic:     {},
	vhal.ChangeModeOnChange:   {},
	vhal.ChangeModeContinuous: {},
}

var supportedAreaTypes = map[vhal.AreaType]struct{}{
	vhal.AreaTypeGlobal: {},
	vhal.AreaTypeWindow: {},
	vhal.AreaTypeSeat:   {},
	vhal.AreaTypeDoor:   {},
	vhal.AreaTypeMirror: {},
	vhal.AreaTypeWheel:  {},
}

// dataTypes maps the external value type tags the core accepts to their
// catalog code. vhal.DataTypeBytes has no entry.
var dataTypes = map[vhal.ValueType]vhal.DataType{
	vhal.ValueTypeString:     vhal.DataTypeString,
	vhal.ValueTypeBoolean:    vhal.DataTypeBoolean,
	vhal.ValueTypeInt32:      vhal.DataTypeInt32,
	vhal.ValueTypeInt32Array: vhal.DataTypeInt32Vec,
	vhal.ValueTypeInt64:      vhal.DataTypeInt64,
	vhal.ValueTypeInt64Array: vhal.DataTypeInt64Vec,
	vhal.ValueTypeFloat:      vhal.DataTypeFloat,
	vhal.ValueTypeFloatArray: vhal.DataTypeFloatVec,
}

type areaFlag struct {
	flag  int32
	label string
}

// areaFlags lists the flags of each non-global area type. Declaration order
// is the order labels appear in a decoded description.
var areaFlags = map[vhal.AreaType][]areaFlag{
	vhal.AreaTypeWindow: {
		{vhal.WindowFrontWindshield, "front windshield"},
		{vhal.WindowRearWindshield, "rear windshield"},
		{vhal.WindowRow1Left, "first row left window"},
		{vhal.WindowRow1Right, "first row right window"},
		{vhal.WindowRow2Left, "second row left window"},
		{vhal.WindowRow2Right, "second row right window"},
		{vhal.WindowRow3Left, "third row left window"},
		{vhal.WindowRow3Right, "third row right window"},
		{vhal.WindowRoofTop1, "first top roof window"},
		{vhal.WindowRoofTop2, "second top roof window"},
	},
	vhal.AreaTypeSeat: {
		{vhal.SeatRow1Left, "first row left seat"},
		{vhal.SeatRow1Center, "first row center seat"},
		{vhal.SeatRow1Right, "first row right seat"},
		{vhal.SeatRow2Left, "second row left seat"},
		{vhal.SeatRow2Center, "second row center seat"},
		{vhal.SeatRow2Right, "second row right seat"},
		{vhal.SeatRow3Left, "third row left seat"},
		{vhal.SeatRow3Center, "third row center seat"},
		{vhal.SeatRow3Right, "third row right seat"},
	},
	vhal.AreaTypeDoor: {
		{vhal.DoorRow1Left, "first row left door"},
		{vhal.DoorRow1Right, "first row right door"},
		{vhal.DoorRow2Left, "second row left door"},
		{vhal.DoorRow2Right, "second row right door"},
		{vhal.DoorRow3Left, "third row left door"},
		{vhal.DoorRow3Right, "third row right door"},
		{vhal.DoorHood, "hood"},
		{vhal.DoorRear, "trunk lid"},
	},
	vhal.AreaTypeMirror: {
		{vhal.MirrorDriverLeft, "left side mirror"},
		{vhal.MirrorDriverRight, "right side mirror"},
		{vhal.MirrorDriverCenter, "rearview mirror"},
	},
	vhal.AreaTypeWheel: {
		{vhal.WheelLeftFront, "left front wheel"},
		{vhal.WheelRightFront, "right front wheel"},
		{vhal.WheelLeftRear, "left rear wheel"},
		{vhal.WheelRightRear, "right rear wheel"},
	},
}

// areaMasks holds the OR of every flag of each non-global area type.
var areaMasks = func() map[vhal.AreaType]int32 {
	masks := make(map[vhal.AreaType]int32, len(areaFlags))
	for areaType, flags := range areaFlags {
		var mask int32
		for _, f := range flags {
			mask |= f.flag
		}
		masks[areaType] = mask
	}
	return masks
}()
