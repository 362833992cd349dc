package trends

import (
	"fmt"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/google/uuid"
)

// TrendingStyle is one entry of the trending-styles rail.
type TrendingStyle struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description,omitempty"`
	Category        string               `json:"category,omitempty"`
	ImageURL        string               `json:"image_url,omitempty"`
	PopularityScore float64              `json:"popularity_score"`
	GrowthRate      string               `json:"growth_rate"`
	Direction       enums.TrendDirection `json:"direction"`
	Tags            []string             `json:"tags"`
}

// ExploreItem is one discovery-grid tile.
type ExploreItem struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	TrendingScore float64   `json:"trending_score"`
	IsTrending    bool      `json:"is_trending"`
	IsFeatured    bool      `json:"is_featured"`
}

// CategoryInfo describes one browsable wardrobe category.
type CategoryInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// TrendingNowEntry is one row of the trending-now panel.
type TrendingNowEntry struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Category        string               `json:"category,omitempty"`
	PopularityScore float64              `json:"popularity_score"`
	GrowthRate      string               `json:"growth_rate"`
	Direction       enums.TrendDirection `json:"direction"`
	CreatedAt       time.Time            `json:"created_at"`
}

// FashionInsight is one editorial insight row.
type FashionInsight struct {
	ID         uuid.UUID            `json:"id"`
	Title      string               `json:"title"`
	Insight    string               `json:"insight"`
	GrowthRate string               `json:"growth_rate"`
	Direction  enums.TrendDirection `json:"direction"`
	ValidUntil time.Time            `json:"valid_until"`
}

// Influencer is one spotlight entry.
type Influencer struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Handle        string    `json:"handle"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Specialty     string    `json:"specialty,omitempty"`
	FollowerCount int       `json:"follower_count"`
}

// NearbyPerson projects a person-type location.
type NearbyPerson struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Archetype  string    `json:"archetype,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	DistanceKM float64   `json:"distance_km"`
}

// NearbyEvent projects an event-type location.
type NearbyEvent struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Venue      string     `json:"venue,omitempty"`
	StartsAt   string     `json:"starts_at,omitempty"`
	DistanceKM float64    `json:"distance_km"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// NearbyHotspot projects a hotspot-type location.
type NearbyHotspot struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Rating     string    `json:"rating,omitempty"`
	DistanceKM float64   `json:"distance_km"`
}

// MapPin is the combined projection used by the nearby map.
type MapPin struct {
	ID         uuid.UUID          `json:"id"`
	Type       enums.LocationType `json:"type"`
	Name       string             `json:"name"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	DistanceKM float64            `json:"distance_km"`
}

// FormatGrowthRate renders a growth rate in [-1, 1] as a signed integer
// percentage, truncated toward zero.
func FormatGrowthRate(rate float64) string {
	return fmt.Sprintf("%+d%%", int(rate*100))
}
