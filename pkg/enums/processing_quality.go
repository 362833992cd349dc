package enums

import "fmt"

// ProcessingQuality selects the fidelity tier for try-on rendering.
type ProcessingQuality string

const (
	ProcessingQualityLow    ProcessingQuality = "low"
	ProcessingQualityMedium ProcessingQuality = "medium"
	ProcessingQualityHigh   ProcessingQuality = "high"
)

var validProcessingQualities = []ProcessingQuality{
	ProcessingQualityLow,
	ProcessingQualityMedium,
	ProcessingQualityHigh,
}

// String implements fmt.Stringer.
func (q ProcessingQuality) String() string {
	return string(q)
}

// IsValid reports whether the value is a known ProcessingQuality.
func (q ProcessingQuality) IsValid() bool {
	for _, candidate := range validProcessingQualities {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseProcessingQuality converts raw input into a ProcessingQuality.
func ParseProcessingQuality(value string) (ProcessingQuality, error) {
	for _, candidate := range validProcessingQualities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid processing quality %q", value)
}
