package enums

// TrendDirection summarizes how a trend's growth rate is moving.
type TrendDirection string

const (
	TrendDirectionUp     TrendDirection = "up"
	TrendDirectionDown   TrendDirection = "down"
	TrendDirectionStable TrendDirection = "stable"
)

// String implements fmt.Stringer.
func (d TrendDirection) String() string {
	return string(d)
}

// DirectionForGrowthRate derives the direction from a growth rate in [-1, 1].
// Rates of at least +0.05 trend up, at most -0.05 trend down.
func DirectionForGrowthRate(rate float64) TrendDirection {
	switch {
	case rate >= 0.05:
		return TrendDirectionUp
	case rate <= -0.05:
		return TrendDirectionDown
	default:
		return TrendDirectionStable
	}
}
