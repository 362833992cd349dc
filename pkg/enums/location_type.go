package enums

import "fmt"

// LocationType tags a nearby location as a person, event, or hotspot.
type LocationType string

const (
	LocationTypePerson  LocationType = "person"
	LocationTypeEvent   LocationType = "event"
	LocationTypeHotspot LocationType = "hotspot"
)

var validLocationTypes = []LocationType{
	LocationTypePerson,
	LocationTypeEvent,
	LocationTypeHotspot,
}

// String implements fmt.Stringer.
func (t LocationType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LocationType.
func (t LocationType) IsValid() bool {
	for _, candidate := range validLocationTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLocationType converts raw input into a LocationType.
func ParseLocationType(value string) (LocationType, error) {
	for _, candidate := range validLocationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location type %q", value)
}
