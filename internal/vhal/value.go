package vhal

// Value is a property value of one of the eight supported kinds.
//
// The set of implementations is closed: only the types in this file satisfy
// it. Code dispatching on a Value switches over the concrete types or over
// DataType(). A nil Value means the service reported no value.
type Value interface {
	DataType() DataType
	isValue()
}

type (
	StringValue     string
	BoolValue       bool
	Int32Value      int32
	Int32ArrayValue []int32
	Int64Value      int64
	Int64ArrayValue []int64
	FloatValue      float32
	FloatArrayValue []float32
)

func (StringValue) DataType() DataType     { return DataTypeString }
func (BoolValue) DataType() DataType       { return DataTypeBoolean }
func (Int32Value) DataType() DataType      { return DataTypeInt32 }
func (Int32ArrayValue) DataType() DataType { return DataTypeInt32Vec }
func (Int64Value) DataType() DataType      { return DataTypeInt64 }
func (Int64ArrayValue) DataType() DataType { return DataTypeInt64Vec }
func (FloatValue) DataType() DataType      { return DataTypeFloat }
func (FloatArrayValue) DataType() DataType { return DataTypeFloatVec }

func (StringValue) isValue()     {}
func (BoolValue) isValue()       {}
func (Int32Value) isValue()      {}
func (Int32ArrayValue) isValue() {}
func (Int64Value) isValue()      {}
func (Int64ArrayValue) isValue() {}
func (FloatValue) isValue()      {}
func (FloatArrayValue) isValue() {}

// ValueTypeFor returns the external type tag matching a data type code.
// The reserved bytes code has no supported tag.
func ValueTypeFor(d DataType) (ValueType, bool) {
	switch d {
	case DataTypeString:
		return ValueTypeString, true
	case DataTypeBoolean:
		return ValueTypeBoolean, true
	case DataTypeInt32:
		return ValueTypeInt32, true
	case DataTypeInt32Vec:
		return ValueTypeInt32Array, true
	case DataTypeInt64:
		return ValueTypeInt64, true
	case DataTypeInt64Vec:
		return ValueTypeInt64Array, true
	case DataTypeFloat:
		return ValueTypeFloat, true
	case DataTypeFloatVec:
		return ValueTypeFloatArray, true
	default:
		return "", false
	}
}

// DataTypeOf returns the data type code for a supported value type tag.
func DataTypeOf(vt ValueType) (DataType, bool) {
	for d := DataTypeString; d <= DataTypeFloatVec; d++ {
		if t, _ := ValueTypeFor(d); t == vt {
			return d, true
		}
	}
	return 0, false
}
