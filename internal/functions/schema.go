package functions

// Category groups the property functions.
const Category = "car-property-full"

// Version is the schema version of every function in the table.
const Version = 1

// Parameter describes one named argument.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Items       string `json:"items,omitempty"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Schema is the discoverable description of a function.
type Schema struct {
	Name        string      `json:"name"`
	Version     int         `json:"version"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`

	// Writes is set on functions that change a property value.
	Writes bool `json:"-"`
}

const propertyListDescription = `A list of supported vehicle properties, formatted as a JSON string.

The vehicle functions are described as vehicle properties in JSON format.
Strictly adhere to the following field descriptions when interpreting the data.

| Field Path | Type | Description |
| --- | --- | --- |
| propertyName | String | The unique, machine-readable name of the property (uppercase with underscores). |
| propertyDescription | String | A specific description of what the property represents. |
| access | Integer (Enum) | Access permissions: 1 = Read-only, 2 = Write-only, 3 = Read & Write. |
| dataType | Integer (Enum) | Data type: 1=STRING, 2=BOOLEAN, 3=INT32, 4=INT32_VEC (array of 32-bit integers), 5=LONG, 6=LONG_VEC (array of 64-bit integers), 7=FLOAT, 8=FLOAT_VEC (array of floats), 9=BYTES. |
| changeMode | Integer (Enum) | How updates are reported: 0 (Static) the value never changes, 1 (On Change) reported when the value changes, 2 (Continuous) reported at a regular interval. |
| areaType | Integer (Enum) | Physical area the property applies to: 0 = Global (the entire vehicle), 2 = Window, 3 = Seat, 4 = Door, 5 = Mirror, 6 = Wheel. |
| areaIdProfiles | Array of Objects | How this property applies to different areas of the vehicle. |
| areaIdProfiles[].areaId | Integer | A bitmask naming a physical location such as a seat or window. Pass it to read or write the property for just that zone. |
| areaIdProfiles[].areaIdDescription | String | The exact area or areas covered by the areaId. |
| areaIdProfiles[].minValue | Number | Minimum allowed value in this area. Empty means no minimum is enforced. |
| areaIdProfiles[].maxValue | Number | Maximum allowed value in this area. Empty means no maximum is enforced. |
| areaIdProfiles[].supportedEnumValues | Array | Enumeration values supported in this area. An empty array means the property is not an enum. |`

func readParams() []Parameter {
	return []Parameter{
		{Name: "propertyName", Type: "string", Description: "The unique name of the vehicle property to read.", Required: true},
		{Name: "areaId", Type: "integer", Description: "The specific area ID of the property to read.", Required: true},
	}
}

func writeParams(valueType, items, valueDesc string) []Parameter {
	return []Parameter{
		{Name: "propertyName", Type: "string", Description: "The unique name of the vehicle property to modify.", Required: true},
		{Name: "areaId", Type: "integer", Description: "The specific area ID of the property to modify.", Required: true},
		{Name: "value", Type: valueType, Items: items, Description: valueDesc, Required: true},
	}
}
