package simvhal

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// ErrInvalidFixture is returned when a fixture file cannot be used.
var ErrInvalidFixture = errors.New("simvhal: invalid fixture")

// Fixture is the YAML description of a simulated vehicle.
type Fixture struct {
	Properties []FixtureProperty `yaml:"properties"`
}

// FixtureProperty describes one property. Exactly one of Property (a
// platform name) or ID must be set.
type FixtureProperty struct {
	Property   string         `yaml:"property"`
	ID         *int64         `yaml:"id"`
	Access     string         `yaml:"access"`
	ChangeMode string         `yaml:"change_mode"`
	AreaType   string         `yaml:"area_type"`
	ValueType  vhal.ValueType `yaml:"value_type"`
	Areas      []FixtureArea  `yaml:"areas"`
}

// FixtureArea describes one area of a property and its initial value.
// Available defaults to true. A nil Value leaves the area without a value.
type FixtureArea struct {
	AreaID    int32 `yaml:"area_id"`
	Min       any   `yaml:"min"`
	Max       any   `yaml:"max"`
	Enum      []any `yaml:"enum"`
	Available *bool `yaml:"available"`
	Value     any   `yaml:"value"`
}

// seedProperty is a fixture property after validation and conversion.
type seedProperty struct {
	desc  vhal.Descriptor
	areas []seedArea
}

type seedArea struct {
	available bool
	value     vhal.Value
}

var accessNames = map[string]vhal.Access{
	"none":       vhal.AccessNone,
	"read":       vhal.AccessRead,
	"write":      vhal.AccessWrite,
	"read_write": vhal.AccessReadWrite,
}

var changeModeNames = map[string]vhal.ChangeMode{
	"static":     vhal.ChangeModeStatic,
	"on_change":  vhal.ChangeModeOnChange,
	"continuous": vhal.ChangeModeContinuous,
}

var areaTypeNames = map[string]vhal.AreaType{
	"global": vhal.AreaTypeGlobal,
	"vendor": vhal.AreaTypeVendor,
	"window": vhal.AreaTypeWindow,
	"seat":   vhal.AreaTypeSeat,
	"door":   vhal.AreaTypeDoor,
	"mirror": vhal.AreaTypeMirror,
	"wheel":  vhal.AreaTypeWheel,
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses fixture YAML and checks every entry.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidFixture, err)
	}
	if _, err := fx.compile(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) compile() ([]seedProperty, error) {
	out := make([]seedProperty, 0, len(fx.Properties))
	seen := make(map[vhal.PropertyID]bool, len(fx.Properties))

	for i, fp := range fx.Properties {
		sp, err := fp.compile()
		if err != nil {
			return nil, fmt.Errorf("%w: property %d: %w", ErrInvalidFixture, i, err)
		}
		if seen[sp.desc.ID] {
			return nil, fmt.Errorf("%w: property %d: duplicate id %s", ErrInvalidFixture, i, sp.desc.ID)
		}
		seen[sp.desc.ID] = true
		out = append(out, sp)
	}
	return out, nil
}

func (fp FixtureProperty) compile() (seedProperty, error) {
	var sp seedProperty

	id, err := fp.id()
	if err != nil {
		return sp, err
	}

	access, ok := accessNames[fp.Access]
	if !ok {
		return sp, fmt.Errorf("unknown access %q", fp.Access)
	}
	changeMode, ok := changeModeNames[fp.ChangeMode]
	if !ok {
		return sp, fmt.Errorf("unknown change_mode %q", fp.ChangeMode)
	}
	areaType, ok := areaTypeNames[fp.AreaType]
	if !ok {
		return sp, fmt.Errorf("unknown area_type %q", fp.AreaType)
	}
	if fp.ValueType == "" {
		return sp, errors.New("value_type is required")
	}
	if len(fp.Areas) == 0 {
		return sp, errors.New("at least one area is required")
	}

	sp.desc = vhal.Descriptor{
		ID:          id,
		Access:      access,
		ChangeMode:  changeMode,
		AreaType:    areaType,
		ValueType:   fp.ValueType,
		AreaConfigs: make([]vhal.AreaConfig, 0, len(fp.Areas)),
	}

	seenAreas := make(map[int32]bool, len(fp.Areas))
	for _, fa := range fp.Areas {
		if seenAreas[fa.AreaID] {
			return sp, fmt.Errorf("duplicate area_id %d", fa.AreaID)
		}
		seenAreas[fa.AreaID] = true

		ac, sa, err := fa.compile(fp.ValueType)
		if err != nil {
			return sp, fmt.Errorf("area %d: %w", fa.AreaID, err)
		}
		sp.desc.AreaConfigs = append(sp.desc.AreaConfigs, ac)
		sp.areas = append(sp.areas, sa)
	}
	return sp, nil
}

func (fp FixtureProperty) id() (vhal.PropertyID, error) {
	switch {
	case fp.Property != "" && fp.ID != nil:
		return 0, errors.New("set either property or id, not both")
	case fp.Property != "":
		id, ok := vhal.LookupSystemProperty(fp.Property)
		if !ok {
			return 0, fmt.Errorf("unknown platform property %q", fp.Property)
		}
		return id.ID, nil
	case fp.ID != nil:
		v := *fp.ID
		if v < math.MinInt32 || v > math.MaxUint32 {
			return 0, fmt.Errorf("id %d is out of range", v)
		}
		return vhal.PropertyID(int32(uint32(v))), nil //nolint:gosec // Range checked above
	default:
		return 0, errors.New("property or id is required")
	}
}

func (fa FixtureArea) compile(vt vhal.ValueType) (vhal.AreaConfig, seedArea, error) {
	minV, err := boundFromYAML(vt, fa.Min)
	if err != nil {
		return vhal.AreaConfig{}, seedArea{}, fmt.Errorf("min: %w", err)
	}
	maxV, err := boundFromYAML(vt, fa.Max)
	if err != nil {
		return vhal.AreaConfig{}, seedArea{}, fmt.Errorf("max: %w", err)
	}

	var enum []any
	for _, raw := range fa.Enum {
		n, err := toInt64(raw)
		if err != nil {
			return vhal.AreaConfig{}, seedArea{}, fmt.Errorf("enum: %w", err)
		}
		enum = append(enum, n)
	}

	sa := seedArea{available: fa.Available == nil || *fa.Available}
	if fa.Value != nil {
		v, err := valueFromYAML(vt, fa.Value)
		if err != nil {
			return vhal.AreaConfig{}, seedArea{}, fmt.Errorf("value: %w", err)
		}
		sa.value = v
	}

	return vhal.AreaConfig{
		AreaID:              fa.AreaID,
		MinValue:            minV,
		MaxValue:            maxV,
		SupportedEnumValues: enum,
	}, sa, nil
}

// boundFromYAML converts a bound to the element type of vt.
func boundFromYAML(vt vhal.ValueType, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch vt {
	case vhal.ValueTypeInt32, vhal.ValueTypeInt32Array:
		return toInt32(raw)
	case vhal.ValueTypeInt64, vhal.ValueTypeInt64Array:
		return toInt64(raw)
	case vhal.ValueTypeFloat, vhal.ValueTypeFloatArray:
		f, err := toFloat64(raw)
		return float32(f), err
	default:
		return toFloat64(raw)
	}
}

// valueFromYAML converts a YAML scalar or sequence to the Value kind of vt.
func valueFromYAML(vt vhal.ValueType, raw any) (vhal.Value, error) {
	switch vt {
	case vhal.ValueTypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", raw)
		}
		return vhal.StringValue(s), nil
	case vhal.ValueTypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want boolean, got %T", raw)
		}
		return vhal.BoolValue(b), nil
	case vhal.ValueTypeInt32:
		n, err := toInt32(raw)
		return vhal.Int32Value(n), err
	case vhal.ValueTypeInt32Array:
		a, err := sequence(raw, toInt32)
		return vhal.Int32ArrayValue(a), err
	case vhal.ValueTypeInt64:
		n, err := toInt64(raw)
		return vhal.Int64Value(n), err
	case vhal.ValueTypeInt64Array:
		a, err := sequence(raw, toInt64)
		return vhal.Int64ArrayValue(a), err
	case vhal.ValueTypeFloat:
		f, err := toFloat64(raw)
		return vhal.FloatValue(float32(f)), err
	case vhal.ValueTypeFloatArray:
		a, err := sequence(raw, func(v any) (float32, error) {
			f, err := toFloat64(v)
			return float32(f), err
		})
		return vhal.FloatArrayValue(a), err
	default:
		return nil, fmt.Errorf("value type %q cannot hold a value", vt)
	}
}

func sequence[T any](raw any, conv func(any) (T, error)) ([]T, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want sequence, got %T", raw)
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func toInt64(raw any) (int64, error) {
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("want integer, got %T", raw)
	}
}

func toInt32(raw any) (int32, error) {
	n, err := toInt64(raw)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%d overflows int32", n)
	}
	return int32(n), nil
}

func toFloat64(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", raw)
	}
}
