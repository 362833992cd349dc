package enums

import "fmt"

// TryOnStatus tracks the lifecycle of a try-on session.
type TryOnStatus string

const (
	TryOnStatusPending    TryOnStatus = "pending"
	TryOnStatusProcessing TryOnStatus = "processing"
	TryOnStatusCompleted  TryOnStatus = "completed"
	TryOnStatusFailed     TryOnStatus = "failed"
)

var validTryOnStatuses = []TryOnStatus{
	TryOnStatusPending,
	TryOnStatusProcessing,
	TryOnStatusCompleted,
	TryOnStatusFailed,
}

// String implements fmt.Stringer.
func (s TryOnStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TryOnStatus.
func (s TryOnStatus) IsValid() bool {
	for _, candidate := range validTryOnStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the session can no longer transition.
func (s TryOnStatus) IsTerminal() bool {
	return s == TryOnStatusCompleted || s == TryOnStatusFailed
}

// ParseTryOnStatus converts raw input into a TryOnStatus.
func ParseTryOnStatus(value string) (TryOnStatus, error) {
	for _, candidate := range validTryOnStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid try-on status %q", value)
}
