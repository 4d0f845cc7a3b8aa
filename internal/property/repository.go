package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/autoharness/cartool-core/internal/registry"
	"github.com/autoharness/cartool-core/internal/vhal"
)

// Logger defines the logging interface used by the Repository.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Repository exposes allow-listed vehicle properties by name.
type Repository struct {
	registry *registry.Registry
	service  vhal.Service
	logger   Logger
}

// NewRepository creates a Repository over the given registry and service.
func NewRepository(reg *registry.Registry, svc vhal.Service) *Repository {
	return &Repository{
		registry: reg,
		service:  svc,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the repository.
func (r *Repository) SetLogger(logger Logger) {
	r.logger = logger
}

// Registry returns the registry the repository resolves names against.
func (r *Repository) Registry() *registry.Registry {
	return r.registry
}

// Profiles returns the catalog: one profile per compatible descriptor, in
// the order the service listed them. Descriptors are fetched on every call.
//
// The result is never nil.
func (r *Repository) Profiles(ctx context.Context) ([]CarPropertyProfile, error) {
	descriptors, err := r.service.ListDescriptors(ctx, r.registry.IDs())
	if err != nil {
		return nil, fmt.Errorf("listing property descriptors: %w", err)
	}

	profiles := make([]CarPropertyProfile, 0, len(descriptors))
	for _, d := range descriptors {
		ok, err := r.compatible(d)
		if err != nil {
			return nil, r.internal(err)
		}
		if !ok {
			continue
		}

		p, err := r.buildProfile(d)
		if err != nil {
			return nil, r.internal(err)
		}
		profiles = append(profiles, p)
	}

	r.logger.Debug("property catalog built", "listed", len(descriptors), "compatible", len(profiles))
	return profiles, nil
}

// PropertyList returns the catalog serialized as a JSON array.
// An empty catalog is "[]".
func (r *Repository) PropertyList(ctx context.Context) (string, error) {
	profiles, err := r.Profiles(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(profiles)
	if err != nil {
		return "", r.internal(internalErrorf("encoding catalog: %v", err))
	}
	return string(data), nil
}

// resolve maps a property name to its id.
func (r *Repository) resolve(name string) (vhal.PropertyID, error) {
	id, ok := r.registry.IDByName(name)
	if !ok {
		return 0, &AccessError{Property: name, Err: ErrNotAuthorized}
	}
	return id, nil
}

// resolveAvailable maps a property name to its id and checks that it can
// currently be read at areaID.
func (r *Repository) resolveAvailable(ctx context.Context, name string, areaID int32) (vhal.PropertyID, error) {
	id, err := r.resolve(name)
	if err != nil {
		return 0, err
	}

	available, err := r.service.IsAvailable(ctx, id, areaID)
	if err != nil {
		return 0, fmt.Errorf("checking availability of %s: %w", name, err)
	}
	if !available {
		return 0, &AccessError{Property: name, Err: ErrNotAvailable}
	}
	return id, nil
}

// internal logs an invariant violation and returns it unchanged.
func (r *Repository) internal(err error) error {
	if errors.Is(err, ErrInternal) {
		r.logger.Error("property invariant violated", "error", err)
	}
	return err
}
