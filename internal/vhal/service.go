package vhal

import (
	"context"
	"errors"
)

// Sentinel errors returned by Service implementations.
var (
	// ErrUnknownProperty is returned for an (id, area) pair the vehicle does not expose.
	ErrUnknownProperty = errors.New("vhal: unknown property or area")

	// ErrWriteRejected is returned when the vehicle refuses a write.
	ErrWriteRejected = errors.New("vhal: write rejected")

	// ErrReadRejected is returned when a write-only property is read.
	ErrReadRejected = errors.New("vhal: read rejected")

	// ErrTypeMismatch is returned when a written value does not match the property's type.
	ErrTypeMismatch = errors.New("vhal: value type mismatch")

	// ErrServiceUnavailable is returned when the service cannot be reached.
	ErrServiceUnavailable = errors.New("vhal: service unavailable")
)

// AreaConfig is the per-area part of a property descriptor.
//
// MinValue and MaxValue hold a number (any Go integer or float type) or nil
// when the area has no bound.
type AreaConfig struct {
	AreaID              int32
	MinValue            any
	MaxValue            any
	SupportedEnumValues []any
}

// Descriptor is the raw, loosely typed capability description a service
// reports for one property.
type Descriptor struct {
	ID          PropertyID
	Access      Access
	ChangeMode  ChangeMode
	AreaType    AreaType
	ValueType   ValueType
	AreaConfigs []AreaConfig
}

// Service is the vehicle property service the core consumes.
//
// Implementations must be safe for concurrent use.
type Service interface {
	// ListDescriptors returns descriptors for the requested ids, in the
	// order the vehicle reports them. Ids the vehicle does not expose are
	// omitted.
	ListDescriptors(ctx context.Context, ids []PropertyID) ([]Descriptor, error)

	// IsAvailable reports whether the property can currently be read at areaID.
	IsAvailable(ctx context.Context, id PropertyID, areaID int32) (bool, error)

	// Get reads a value of the given kind. A nil Value with a nil error
	// means the vehicle has no value to report.
	Get(ctx context.Context, id PropertyID, areaID int32, kind DataType) (Value, error)

	// Set writes a value.
	Set(ctx context.Context, id PropertyID, areaID int32, v Value) error
}
