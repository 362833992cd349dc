package types

// OutfitItem is one garment inside a try-on attempt.
type OutfitItem struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	ImageURL string  `json:"image_url" validate:"required"`
	Color    *string `json:"color,omitempty"`
	Size     *string `json:"size,omitempty"`
	Brand    *string `json:"brand,omitempty"`
}

// FitAnalysis is the per-item fit result attached to a processed attempt.
type FitAnalysis struct {
	ItemID             string             `json:"item_id"`
	FitScore           float64            `json:"fit_score"`
	SizeRecommendation string             `json:"size_recommendation"`
	FitIssues          []string           `json:"fit_issues"`
	Measurements       map[string]float64 `json:"measurements"`
}

// ColorAnalysis is the per-item color result attached to a processed attempt.
type ColorAnalysis struct {
	ItemID              string  `json:"item_id"`
	ColorAccuracy       float64 `json:"color_accuracy"`
	LightingAdjusted    bool    `json:"lighting_adjusted"`
	RecommendedLighting string  `json:"recommended_lighting"`
}
