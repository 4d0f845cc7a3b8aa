package property

import "github.com/autoharness/cartool-core/internal/vhal"

// compatible decides whether a descriptor may appear in the catalog.
//
// Checks short-circuit in order: access, area type, change mode, value
// type, then every area id. Only the first failure is logged. A false
// result is not an error; the descriptor is dropped.
func (r *Repository) compatible(d vhal.Descriptor) (bool, error) {
	prop, _ := r.registry.Lookup(d.ID)

	reject := func(field string, value any) (bool, error) {
		r.logger.Warn("property descriptor incompatible",
			"property", prop.Name,
			"id", d.ID.String(),
			"field", field,
			"value", value,
		)
		return false, nil
	}

	if _, ok := supportedAccess[d.Access]; !ok {
		return reject("access", d.Access)
	}
	if _, ok := supportedAreaTypes[d.AreaType]; !ok {
		return reject("area_type", d.AreaType)
	}
	if _, ok := supportedChangeModes[d.ChangeMode]; !ok {
		return reject("change_mode", d.ChangeMode)
	}
	if _, ok := dataTypes[d.ValueType]; !ok {
		return reject("value_type", d.ValueType)
	}

	for _, ac := range d.AreaConfigs {
		ok, err := validAreaID(d.AreaType, ac.AreaID)
		if err != nil {
			return false, err
		}
		if !ok {
			return reject("area_id", ac.AreaID)
		}
	}

	return true, nil
}
