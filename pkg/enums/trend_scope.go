package enums

import "fmt"

// TrendScope qualifies whether a trend query is global or local.
type TrendScope string

const (
	TrendScopeGlobal TrendScope = "global"
	TrendScopeLocal  TrendScope = "local"
)

var validTrendScopes = []TrendScope{
	TrendScopeGlobal,
	TrendScopeLocal,
}

// String implements fmt.Stringer.
func (s TrendScope) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TrendScope.
func (s TrendScope) IsValid() bool {
	for _, candidate := range validTrendScopes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTrendScope converts raw input into a TrendScope.
func ParseTrendScope(value string) (TrendScope, error) {
	for _, candidate := range validTrendScopes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trend scope %q", value)
}
