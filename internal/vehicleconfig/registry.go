// Package vehicleconfig holds the generated allow-list registry.
package vehicleconfig

import (
	"sync"

	"github.com/autoharness/cartool-core/internal/registry"
)

//go:generate go run ../../cmd/propgen generate --config ../../configs/vehicle_properties.yaml --output allowed_properties_gen.go

var build = sync.OnceValue(func() *registry.Registry {
	return registry.MustNew(allowedProperties)
})

// Registry returns the generated registry. It is built on first use and
// shared by every caller afterwards.
func Registry() *registry.Registry {
	return build()
}
