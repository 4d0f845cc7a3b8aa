package simvhal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autoharness/cartool-core/internal/infrastructure/database"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/wire"
)

// Logger defines the logging interface used by the Store.
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

// Store is a simulated vehicle backed by SQLite.
//
// The database must have the simulator migrations applied.
type Store struct {
	db     *database.DB
	logger Logger
}

var _ vhal.Service = (*Store)(nil)

// New creates a Store over a migrated database.
func New(db *database.DB) *Store {
	return &Store{db: db, logger: noopLogger{}}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Seed replaces the whole vehicle with the fixture's properties and values.
func (s *Store) Seed(ctx context.Context, fx *Fixture) error {
	props, err := fx.compile()
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	err = s.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM vehicle_properties"); err != nil {
			return fmt.Errorf("clearing properties: %w", err)
		}
		for pos, p := range props {
			if err := insertProperty(ctx, tx, pos, p, now); err != nil {
				return fmt.Errorf("seeding %s: %w", p.desc.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("simulated vehicle seeded", "properties", len(props))
	return nil
}

// SeedIfEmpty seeds the store only when it holds no properties, keeping
// values written in earlier runs. It reports whether seeding happened.
func (s *Store) SeedIfEmpty(ctx context.Context, fx *Fixture) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vehicle_properties").Scan(&n); err != nil {
		return false, fmt.Errorf("counting properties: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	return true, s.Seed(ctx, fx)
}

func insertProperty(ctx context.Context, tx *sql.Tx, pos int, p seedProperty, now string) error {
	d := p.desc
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO vehicle_properties (id, position, access, change_mode, area_type, value_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, pos, d.Access, d.ChangeMode, d.AreaType, string(d.ValueType),
	); err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}

	for i, ac := range d.AreaConfigs {
		minB, err := wire.EncodeBound(ac.MinValue)
		if err != nil {
			return err
		}
		maxB, err := wire.EncodeBound(ac.MaxValue)
		if err != nil {
			return err
		}
		enumB, err := wire.EncodeEnum(ac.SupportedEnumValues)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vehicle_area_configs (property_id, area_id, position, min_value, max_value, enum_values, available)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, ac.AreaID, i, minB, maxB, enumB, p.areas[i].available,
		); err != nil {
			return fmt.Errorf("inserting area %d: %w", ac.AreaID, err)
		}

		if v := p.areas[i].value; v != nil {
			if err := putValue(ctx, tx, d.ID, ac.AreaID, v, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListDescriptors implements vhal.Service. Descriptors come back in fixture
// order.
func (s *Store) ListDescriptors(ctx context.Context, ids []vhal.PropertyID) ([]vhal.Descriptor, error) {
	if len(ids) == 0 {
		return []vhal.Descriptor{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.access, p.change_mode, p.area_type, p.value_type,
		        a.area_id, a.min_value, a.max_value, a.enum_values
		 FROM vehicle_properties p
		 JOIN vehicle_area_configs a ON a.property_id = p.id
		 WHERE p.id IN (`+placeholders+`)
		 ORDER BY p.position, a.position`, //nolint:gosec // Placeholders only
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying descriptors: %w", err)
	}
	defer rows.Close()

	out := []vhal.Descriptor{}
	for rows.Next() {
		var (
			d                 vhal.Descriptor
			valueType         string
			ac                vhal.AreaConfig
			minB, maxB, enumB []byte
		)
		if err := rows.Scan(&d.ID, &d.Access, &d.ChangeMode, &d.AreaType, &valueType,
			&ac.AreaID, &minB, &maxB, &enumB); err != nil {
			return nil, fmt.Errorf("scanning descriptor: %w", err)
		}
		d.ValueType = vhal.ValueType(valueType)

		if ac.MinValue, err = wire.DecodeBound(d.ValueType, minB); err != nil {
			return nil, err
		}
		if ac.MaxValue, err = wire.DecodeBound(d.ValueType, maxB); err != nil {
			return nil, err
		}
		if ac.SupportedEnumValues, err = wire.DecodeEnum(enumB); err != nil {
			return nil, err
		}

		if n := len(out); n > 0 && out[n-1].ID == d.ID {
			out[n-1].AreaConfigs = append(out[n-1].AreaConfigs, ac)
			continue
		}
		d.AreaConfigs = []vhal.AreaConfig{ac}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating descriptors: %w", err)
	}
	return out, nil
}

// IsAvailable implements vhal.Service. Unknown (id, area) pairs are
// reported as unavailable.
func (s *Store) IsAvailable(ctx context.Context, id vhal.PropertyID, areaID int32) (bool, error) {
	var available bool
	err := s.db.QueryRowContext(ctx,
		"SELECT available FROM vehicle_area_configs WHERE property_id = ? AND area_id = ?",
		id, areaID,
	).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying availability: %w", err)
	}
	return available, nil
}

// SetAvailable marks an area available or unavailable.
func (s *Store) SetAvailable(ctx context.Context, id vhal.PropertyID, areaID int32, available bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE vehicle_area_configs SET available = ? WHERE property_id = ? AND area_id = ?",
		available, id, areaID,
	)
	if err != nil {
		return fmt.Errorf("updating availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 { //nolint:errcheck // sqlite3 always reports rows affected
		return fmt.Errorf("%s area %d: %w", id, areaID, vhal.ErrUnknownProperty)
	}
	return nil
}

// areaState is everything Get and Set need to know about one area.
type areaState struct {
	access    vhal.Access
	valueType vhal.ValueType
	min, max  any
	enum      []any
}

func (s *Store) area(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, id vhal.PropertyID, areaID int32) (areaState, error) {
	var (
		st                areaState
		valueType         string
		minB, maxB, enumB []byte
	)
	err := q.QueryRowContext(ctx,
		`SELECT p.access, p.value_type, a.min_value, a.max_value, a.enum_values
		 FROM vehicle_properties p
		 JOIN vehicle_area_configs a ON a.property_id = p.id
		 WHERE p.id = ? AND a.area_id = ?`,
		id, areaID,
	).Scan(&st.access, &valueType, &minB, &maxB, &enumB)
	if errors.Is(err, sql.ErrNoRows) {
		return st, fmt.Errorf("%s area %d: %w", id, areaID, vhal.ErrUnknownProperty)
	}
	if err != nil {
		return st, fmt.Errorf("querying %s area %d: %w", id, areaID, err)
	}

	st.valueType = vhal.ValueType(valueType)
	if st.min, err = wire.DecodeBound(st.valueType, minB); err != nil {
		return st, err
	}
	if st.max, err = wire.DecodeBound(st.valueType, maxB); err != nil {
		return st, err
	}
	if st.enum, err = wire.DecodeEnum(enumB); err != nil {
		return st, err
	}
	return st, nil
}

// Get implements vhal.Service.
func (s *Store) Get(ctx context.Context, id vhal.PropertyID, areaID int32, kind vhal.DataType) (vhal.Value, error) {
	st, err := s.area(ctx, s.db, id, areaID)
	if err != nil {
		return nil, err
	}
	if !st.access.CanRead() {
		return nil, fmt.Errorf("%s: %w", id, vhal.ErrReadRejected)
	}
	if dt, ok := vhal.DataTypeOf(st.valueType); !ok || dt != kind {
		return nil, fmt.Errorf("%s holds %s, not %s: %w", id, st.valueType, kind, vhal.ErrTypeMismatch)
	}

	var blob []byte
	err = s.db.QueryRowContext(ctx,
		"SELECT value FROM vehicle_property_values WHERE property_id = ? AND area_id = ?",
		id, areaID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying value: %w", err)
	}
	return wire.DecodeValue(kind, blob)
}

// Set implements vhal.Service.
func (s *Store) Set(ctx context.Context, id vhal.PropertyID, areaID int32, v vhal.Value) error {
	if v == nil {
		return fmt.Errorf("%s: nil value: %w", id, vhal.ErrTypeMismatch)
	}

	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		st, err := s.area(ctx, tx, id, areaID)
		if err != nil {
			return err
		}
		if !st.access.CanWrite() {
			return fmt.Errorf("%s is read-only: %w", id, vhal.ErrWriteRejected)
		}
		if dt, ok := vhal.DataTypeOf(st.valueType); !ok || dt != v.DataType() {
			return fmt.Errorf("%s holds %s, not %s: %w", id, st.valueType, v.DataType(), vhal.ErrTypeMismatch)
		}
		if err := st.check(v); err != nil {
			return fmt.Errorf("%s area %d: %w", id, areaID, err)
		}
		return putValue(ctx, tx, id, areaID, v, time.Now().UTC().Format(time.RFC3339Nano))
	})
	if err != nil {
		return err
	}

	s.logger.Debug("simulated property written", "property", id.String(), "area_id", areaID)
	return nil
}

// check enforces bounds and the enum list on scalar numeric writes.
func (st areaState) check(v vhal.Value) error {
	switch n := v.(type) {
	case vhal.Int32Value:
		if lo, ok := st.min.(int32); ok && int32(n) < lo {
			return fmt.Errorf("%d is below minimum %d: %w", n, lo, vhal.ErrWriteRejected)
		}
		if hi, ok := st.max.(int32); ok && int32(n) > hi {
			return fmt.Errorf("%d is above maximum %d: %w", n, hi, vhal.ErrWriteRejected)
		}
		if len(st.enum) > 0 && !containsEnum(st.enum, int64(n)) {
			return fmt.Errorf("%d is not a supported value: %w", n, vhal.ErrWriteRejected)
		}
	case vhal.Int64Value:
		if lo, ok := st.min.(int64); ok && int64(n) < lo {
			return fmt.Errorf("%d is below minimum %d: %w", n, lo, vhal.ErrWriteRejected)
		}
		if hi, ok := st.max.(int64); ok && int64(n) > hi {
			return fmt.Errorf("%d is above maximum %d: %w", n, hi, vhal.ErrWriteRejected)
		}
	case vhal.FloatValue:
		if lo, ok := st.min.(float32); ok && float32(n) < lo {
			return fmt.Errorf("%v is below minimum %v: %w", n, lo, vhal.ErrWriteRejected)
		}
		if hi, ok := st.max.(float32); ok && float32(n) > hi {
			return fmt.Errorf("%v is above maximum %v: %w", n, hi, vhal.ErrWriteRejected)
		}
	}
	return nil
}

func containsEnum(enum []any, n int64) bool {
	for _, e := range enum {
		if v, ok := e.(int64); ok && v == n {
			return true
		}
	}
	return false
}

func putValue(ctx context.Context, tx *sql.Tx, id vhal.PropertyID, areaID int32, v vhal.Value, now string) error {
	blob, err := wire.EncodeValue(v)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO vehicle_property_values (property_id, area_id, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (property_id, area_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		id, areaID, blob, now,
	); err != nil {
		return fmt.Errorf("storing value: %w", err)
	}
	return nil
}
