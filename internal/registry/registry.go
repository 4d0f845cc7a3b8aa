package registry

import (
	"fmt"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// Property is one allow-listed vehicle property.
type Property struct {
	Name        string
	Description string
	ID          vhal.PropertyID
}

// Registry maps allow-listed property ids to names and descriptions.
//
// A Registry is immutable once built and safe for concurrent reads.
type Registry struct {
	byID   map[vhal.PropertyID]Property
	byName map[string]vhal.PropertyID
	order  []vhal.PropertyID
}

// New builds a Registry from properties in declaration order.
// Names and ids must be unique.
func New(props []Property) (*Registry, error) {
	r := &Registry{
		byID:   make(map[vhal.PropertyID]Property, len(props)),
		byName: make(map[string]vhal.PropertyID, len(props)),
		order:  make([]vhal.PropertyID, 0, len(props)),
	}

	for _, p := range props {
		if _, ok := r.byName[p.Name]; ok {
			return nil, fmt.Errorf("%w: name %s", ErrDuplicateProperty, p.Name)
		}
		if _, ok := r.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateProperty, p.ID)
		}
		r.byID[p.ID] = p
		r.byName[p.Name] = p.ID
		r.order = append(r.order, p.ID)
	}

	return r, nil
}

// MustNew is like New but panics on error. It is meant for generated code,
// where the input has already been validated.
func MustNew(props []Property) *Registry {
	r, err := New(props)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the property registered under id.
func (r *Registry) Lookup(id vhal.PropertyID) (Property, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// IDByName resolves a property name to its id.
func (r *Registry) IDByName(name string) (vhal.PropertyID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// IDs returns every registered id in declaration order.
// The returned slice is a copy.
func (r *Registry) IDs() []vhal.PropertyID {
	out := make([]vhal.PropertyID, len(r.order))
	copy(out, r.order)
	return out
}

// Properties returns every registered property in declaration order.
func (r *Registry) Properties() []Property {
	out := make([]Property, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered properties.
func (r *Registry) Len() int {
	return len(r.order)
}
