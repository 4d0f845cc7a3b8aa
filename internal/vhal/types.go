package vhal

import "fmt"

// PropertyID is a platform property identifier.
//
// The 32-bit value encodes group | area | type | index. System-owned ids
// carry the 0x10000000 group marker in their top four bits.
type PropertyID int32

// Property id encoding masks.
const (
	groupSystem int32 = 0x10000000
	groupVendor int32 = 0x20000000

	areaGlobal int32 = 0x01000000
	areaWindow int32 = 0x03000000
	areaMirror int32 = 0x04000000
	areaSeat   int32 = 0x05000000
	areaDoor   int32 = 0x06000000
	areaWheel  int32 = 0x07000000

	typeString   int32 = 0x00100000
	typeBoolean  int32 = 0x00200000
	typeInt32    int32 = 0x00400000
	typeInt32Vec int32 = 0x00410000
	typeInt64    int32 = 0x00500000
	typeInt64Vec int32 = 0x00510000
	typeFloat    int32 = 0x00600000
	typeFloatVec int32 = 0x00610000
)

// IsSystemID reports whether id lies in the reserved system-owned range.
func IsSystemID(id int64) bool {
	return id&0xF0000000 == 0x10000000
}

// VendorPropertyID builds a vendor-group property id from its parts.
// area and valueType take the encoded *Bits constants.
func VendorPropertyID(area, valueType, index int32) PropertyID {
	return PropertyID(groupVendor | area | valueType | index&0xFFFF)
}

// String formats the id in hex, the form used in platform documentation.
func (id PropertyID) String() string {
	return fmt.Sprintf("0x%08X", uint32(id))
}

// Encoded area and type bits for building vendor ids.
const (
	AreaGlobalBits = areaGlobal
	AreaWindowBits = areaWindow
	AreaMirrorBits = areaMirror
	AreaSeatBits   = areaSeat
	AreaDoorBits   = areaDoor
	AreaWheelBits  = areaWheel

	TypeStringBits   = typeString
	TypeBooleanBits  = typeBoolean
	TypeInt32Bits    = typeInt32
	TypeInt32VecBits = typeInt32Vec
	TypeInt64Bits    = typeInt64
	TypeInt64VecBits = typeInt64Vec
	TypeFloatBits    = typeFloat
	TypeFloatVecBits = typeFloatVec
)

// Access is the read/write mode of a property.
type Access int32

const (
	AccessNone      Access = 0
	AccessRead      Access = 1
	AccessWrite     Access = 2
	AccessReadWrite Access = 3
)

// CanRead reports whether the access mode permits reads.
func (a Access) CanRead() bool {
	return a == AccessRead || a == AccessReadWrite
}

// CanWrite reports whether the access mode permits writes.
func (a Access) CanWrite() bool {
	return a == AccessWrite || a == AccessReadWrite
}

// ChangeMode describes how value updates are reported.
type ChangeMode int32

const (
	ChangeModeStatic     ChangeMode = 0
	ChangeModeOnChange   ChangeMode = 1
	ChangeModeContinuous ChangeMode = 2
)

// AreaType is the physical category a property's value varies over.
//
// The platform also defines a vendor area type (1) which the core does not
// support.
type AreaType int32

const (
	AreaTypeGlobal AreaType = 0
	AreaTypeVendor AreaType = 1
	AreaTypeWindow AreaType = 2
	AreaTypeSeat   AreaType = 3
	AreaTypeDoor   AreaType = 4
	AreaTypeMirror AreaType = 5
	AreaTypeWheel  AreaType = 6
)

// DataType is the small integer code emitted in the catalog for a value kind.
type DataType int32

const (
	DataTypeString   DataType = 1
	DataTypeBoolean  DataType = 2
	DataTypeInt32    DataType = 3
	DataTypeInt32Vec DataType = 4
	DataTypeInt64    DataType = 5
	DataTypeInt64Vec DataType = 6
	DataTypeFloat    DataType = 7
	DataTypeFloatVec DataType = 8
	// DataTypeBytes is reserved. No supported value type maps to it.
	DataTypeBytes DataType = 9
)

// String returns the kind name for logs and error messages.
func (d DataType) String() string {
	switch d {
	case DataTypeString:
		return "string"
	case DataTypeBoolean:
		return "boolean"
	case DataTypeInt32:
		return "int32"
	case DataTypeInt32Vec:
		return "int32[]"
	case DataTypeInt64:
		return "int64"
	case DataTypeInt64Vec:
		return "int64[]"
	case DataTypeFloat:
		return "float"
	case DataTypeFloatVec:
		return "float[]"
	case DataTypeBytes:
		return "bytes"
	default:
		return fmt.Sprintf("DataType(%d)", int32(d))
	}
}

// ValueType is the external type tag a service attaches to a descriptor.
//
// Services may report tags outside the supported eight; the core filters
// those descriptors out.
type ValueType string

const (
	ValueTypeString     ValueType = "string"
	ValueTypeBoolean    ValueType = "boolean"
	ValueTypeInt32      ValueType = "int32"
	ValueTypeInt32Array ValueType = "int32[]"
	ValueTypeInt64      ValueType = "int64"
	ValueTypeInt64Array ValueType = "int64[]"
	ValueTypeFloat      ValueType = "float"
	ValueTypeFloatArray ValueType = "float[]"

	ValueTypeDouble ValueType = "double"
	ValueTypeBytes  ValueType = "byte[]"
	ValueTypeMixed  ValueType = "mixed"
)
