package enums

import "fmt"

// ViewMode selects how a try-on session renders results.
type ViewMode string

const (
	ViewModeAR     ViewMode = "ar"
	ViewModeMirror ViewMode = "mirror"
)

var validViewModes = []ViewMode{
	ViewModeAR,
	ViewModeMirror,
}

// String implements fmt.Stringer.
func (v ViewMode) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViewMode.
func (v ViewMode) IsValid() bool {
	for _, candidate := range validViewModes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViewMode converts raw input into a ViewMode.
func ParseViewMode(value string) (ViewMode, error) {
	for _, candidate := range validViewModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view mode %q", value)
}
