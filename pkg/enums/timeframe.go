package enums

import (
	"fmt"
	"time"
)

// Timeframe bounds how far back trend queries look.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

var validTimeframes = []Timeframe{
	TimeframeDay,
	TimeframeWeek,
	TimeframeMonth,
}

// String implements fmt.Stringer.
func (t Timeframe) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Timeframe.
func (t Timeframe) IsValid() bool {
	for _, candidate := range validTimeframes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Duration returns the lookback window for the timeframe.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case TimeframeDay:
		return 24 * time.Hour
	case TimeframeWeek:
		return 7 * 24 * time.Hour
	case TimeframeMonth:
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// ParseTimeframe converts raw input into a Timeframe.
func ParseTimeframe(value string) (Timeframe, error) {
	for _, candidate := range validTimeframes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timeframe %q", value)
}
