package recommendations

import (
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/google/uuid"
)

// Weather is the external weather collaborator's shape. When no provider is
// wired, defaultWeather stands in.
type Weather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Unit        string  `json:"unit"`
}

func defaultWeather() Weather {
	return Weather{Temperature: 22.0, Condition: "Clear", Unit: "°C"}
}

// SuggestionItem is one wardrobe item inside a suggestion.
type SuggestionItem struct {
	ID       uuid.UUID              `json:"id"`
	Name     string                 `json:"name"`
	Category enums.ClothingCategory `json:"category"`
	ImageURL string                 `json:"image_url"`
	Color    string                 `json:"color,omitempty"`
}

// Suggestion is one assembled outfit proposal.
type Suggestion struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Occasion        string           `json:"occasion"`
	Items           []SuggestionItem `json:"items"`
	MatchPercentage float64          `json:"match_percentage"`
	Description     string           `json:"description"`
	Weather         Weather          `json:"weather_info"`
	IsFavorite      bool             `json:"is_favorite"`
}

// StyleFocus is the short textual guidance attached to a response.
type StyleFocus struct {
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
}

// Response is the full recommendation payload.
type Response struct {
	Suggestions []Suggestion `json:"suggestions"`
	StyleFocus  StyleFocus   `json:"style_focus"`
}
