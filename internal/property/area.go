package property

import (
	"fmt"
	"strings"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// DescribeArea turns an area id into a sentence naming the physical zones it
// covers. Labels appear in flag declaration order, not numeric order.
//
// An area type without a flag table, or an area id that sets none of its
// flags, is an invariant violation and yields ErrInternal.
func DescribeArea(areaType vhal.AreaType, areaID int32) (string, error) {
	if areaType == vhal.AreaTypeGlobal {
		return globalAreaDescription, nil
	}

	flags, ok := areaFlags[areaType]
	if !ok {
		return "", internalErrorf("unsupported area type: %d", areaType)
	}

	labels := make([]string, 0, len(flags))
	for _, f := range flags {
		if areaID&f.flag != 0 {
			labels = append(labels, f.label)
		}
	}
	if len(labels) == 0 {
		return "", internalErrorf("unhandled area id: %d for area type: %d", areaID, areaType)
	}

	return fmt.Sprintf(areaDescriptionFormat, strings.Join(labels, ", ")), nil
}

// validAreaID reports whether areaID is a legal id for areaType: exactly
// zero for global properties, otherwise nonzero and inside the type's mask.
func validAreaID(areaType vhal.AreaType, areaID int32) (bool, error) {
	if areaType == vhal.AreaTypeGlobal {
		return areaID == vhal.GlobalAreaID, nil
	}

	mask, ok := areaMasks[areaType]
	if !ok {
		return false, internalErrorf("unsupported area type: %d", areaType)
	}
	return areaID != 0 && areaID&^mask == 0, nil
}
