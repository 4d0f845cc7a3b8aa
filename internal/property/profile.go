package property

import (
	"strconv"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// CarPropertyProfile is the catalog entry for one compatible property.
// Name and description come from the registry, never from the service.
type CarPropertyProfile struct {
	PropertyName        string          `json:"propertyName"`
	PropertyDescription string          `json:"propertyDescription"`
	Access              vhal.Access     `json:"access"`
	DataType            vhal.DataType   `json:"dataType"`
	ChangeMode          vhal.ChangeMode `json:"changeMode"`
	AreaType            vhal.AreaType   `json:"areaType"`
	AreaIDProfiles      []AreaIDProfile `json:"areaIdProfiles"`
}

// AreaIDProfile describes one area of a property.
//
// MinValue and MaxValue are decimal strings, empty when the area has no
// bound. SupportedEnumValues is never nil so it encodes as [].
type AreaIDProfile struct {
	AreaID              int32   `json:"areaId"`
	AreaIDDescription   string  `json:"areaIdDescription"`
	MinValue            string  `json:"minValue"`
	MaxValue            string  `json:"maxValue"`
	SupportedEnumValues []int64 `json:"supportedEnumValues"`
}

func (r *Repository) buildProfile(d vhal.Descriptor) (CarPropertyProfile, error) {
	prop, ok := r.registry.Lookup(d.ID)
	if !ok {
		return CarPropertyProfile{}, internalErrorf("property id %s is not in the allowed properties list", d.ID)
	}

	dataType, ok := dataTypes[d.ValueType]
	if !ok {
		return CarPropertyProfile{}, internalErrorf("unsupported value type: %s", d.ValueType)
	}

	areas := make([]AreaIDProfile, 0, len(d.AreaConfigs))
	for _, ac := range d.AreaConfigs {
		desc, err := DescribeArea(d.AreaType, ac.AreaID)
		if err != nil {
			return CarPropertyProfile{}, err
		}
		areas = append(areas, AreaIDProfile{
			AreaID:              ac.AreaID,
			AreaIDDescription:   desc,
			MinValue:            formatNumber(ac.MinValue),
			MaxValue:            formatNumber(ac.MaxValue),
			SupportedEnumValues: enumValues(ac.SupportedEnumValues),
		})
	}

	return CarPropertyProfile{
		PropertyName:        prop.Name,
		PropertyDescription: prop.Description,
		Access:              d.Access,
		DataType:            dataType,
		ChangeMode:          d.ChangeMode,
		AreaType:            d.AreaType,
		AreaIDProfiles:      areas,
	}, nil
}

// formatNumber renders v in the shortest decimal form that parses back to
// the same value. Non-numeric values, nil included, render as "".
func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10)
	case int8:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint:
		return strconv.FormatUint(uint64(n), 10)
	case uint8:
		return strconv.FormatUint(uint64(n), 10)
	case uint16:
		return strconv.FormatUint(uint64(n), 10)
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}

// enumValues widens every numeric entry to int64, truncating floats.
// Non-numeric entries are dropped.
func enumValues(values []any) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int:
			out = append(out, int64(n))
		case int8:
			out = append(out, int64(n))
		case int16:
			out = append(out, int64(n))
		case int32:
			out = append(out, int64(n))
		case int64:
			out = append(out, n)
		case uint:
			out = append(out, int64(n))
		case uint8:
			out = append(out, int64(n))
		case uint16:
			out = append(out, int64(n))
		case uint32:
			out = append(out, int64(n))
		case uint64:
			out = append(out, int64(n))
		case float32:
			out = append(out, int64(n))
		case float64:
			out = append(out, int64(n))
		}
	}
	return out
}
