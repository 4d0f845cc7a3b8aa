// Package property is the validated façade between callers and the vehicle
// property service.
//
// It has two halves:
//
//   - The catalog. Repository.Profiles asks the service for the descriptors
//     of every allow-listed property, drops any descriptor that does not
//     conform to the supported enumerations, and turns the rest into
//     CarPropertyProfile values with decoded area descriptions.
//   - Typed access. Repository.GetString, SetFloat and friends resolve a
//     property name through the registry, check availability on reads, and
//     call the service for one of eight value kinds.
//
// # Errors
//
// Callers see two access errors, both *AccessError:
//
//	if errors.Is(err, property.ErrNotAuthorized) { ... }
//	if errors.Is(err, property.ErrNotAvailable) { ... }
//
// ErrInternal marks a broken invariant (a table miss, a service reporting a
// value of the wrong kind). Its details belong in server logs, not in
// responses.
//
// # Thread Safety
//
// A Repository holds no mutable state. It is safe for concurrent use when
// the underlying vhal.Service is.
package property
