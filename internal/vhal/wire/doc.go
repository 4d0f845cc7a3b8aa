// Package wire is the CBOR encoding of vehicle property values, bounds and
// descriptors shared by the SQLite simulator and the MQTT service protocol.
//
// Values carry no type tag of their own; the reader decodes them as the
// kind it expects. Bounds decode to the element type of the property's
// value type (int32, int64 or float32) so they print exactly as the
// vehicle declared them.
package wire
