// Package vhal describes the vehicle hardware abstraction layer that the
// property core talks to.
//
// It holds three things:
//
//   - The platform enumerations (access, change mode, area type, data type)
//     with their fixed numeric values.
//   - The canonical table of system-owned property ids, used to resolve
//     property names symbolically when the registry is generated.
//   - The Service contract: listing descriptors, checking availability and
//     typed get/set keyed by (property id, area id).
//
// Concrete services live in sub-packages (simvhal, mqttvhal). The core never
// depends on a concrete implementation.
package vhal
