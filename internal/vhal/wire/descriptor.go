package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// Descriptor is the CBOR form of vhal.Descriptor.
type Descriptor struct {
	ID         vhal.PropertyID `cbor:"id"`
	Access     vhal.Access     `cbor:"access"`
	ChangeMode vhal.ChangeMode `cbor:"change_mode"`
	AreaType   vhal.AreaType   `cbor:"area_type"`
	ValueType  vhal.ValueType  `cbor:"value_type"`
	Areas      []Area          `cbor:"areas"`
}

// Area is the CBOR form of vhal.AreaConfig. Bounds stay encoded until the
// value type is known.
type Area struct {
	AreaID int32           `cbor:"area_id"`
	Min    cbor.RawMessage `cbor:"min,omitempty"`
	Max    cbor.RawMessage `cbor:"max,omitempty"`
	Enum   []int64         `cbor:"enum,omitempty"`
}

// FromDescriptor converts a descriptor to its wire form.
func FromDescriptor(d vhal.Descriptor) (Descriptor, error) {
	out := Descriptor{
		ID:         d.ID,
		Access:     d.Access,
		ChangeMode: d.ChangeMode,
		AreaType:   d.AreaType,
		ValueType:  d.ValueType,
		Areas:      make([]Area, 0, len(d.AreaConfigs)),
	}
	for _, ac := range d.AreaConfigs {
		minB, err := EncodeBound(ac.MinValue)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%s area %d: %w", d.ID, ac.AreaID, err)
		}
		maxB, err := EncodeBound(ac.MaxValue)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%s area %d: %w", d.ID, ac.AreaID, err)
		}
		area := Area{AreaID: ac.AreaID, Min: minB, Max: maxB}
		if ints := enumInts(ac.SupportedEnumValues); len(ints) > 0 {
			area.Enum = ints
		}
		out.Areas = append(out.Areas, area)
	}
	return out, nil
}

// Descriptor converts the wire form back, decoding bounds as the element
// type of the value type.
func (d Descriptor) Descriptor() (vhal.Descriptor, error) {
	out := vhal.Descriptor{
		ID:          d.ID,
		Access:      d.Access,
		ChangeMode:  d.ChangeMode,
		AreaType:    d.AreaType,
		ValueType:   d.ValueType,
		AreaConfigs: make([]vhal.AreaConfig, 0, len(d.Areas)),
	}
	for _, a := range d.Areas {
		minV, err := DecodeBound(d.ValueType, a.Min)
		if err != nil {
			return vhal.Descriptor{}, fmt.Errorf("%s area %d: %w", d.ID, a.AreaID, err)
		}
		maxV, err := DecodeBound(d.ValueType, a.Max)
		if err != nil {
			return vhal.Descriptor{}, fmt.Errorf("%s area %d: %w", d.ID, a.AreaID, err)
		}
		out.AreaConfigs = append(out.AreaConfigs, vhal.AreaConfig{
			AreaID:              a.AreaID,
			MinValue:            minV,
			MaxValue:            maxV,
			SupportedEnumValues: anySlice(a.Enum),
		})
	}
	return out, nil
}
