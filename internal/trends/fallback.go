package trends

import (
	"time"

	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/google/uuid"
)

// Deterministic defaults served when a discovery query fails. Discovery UIs
// must keep rendering while collaborators degrade, so these are non-empty
// and stable across calls.

var fallbackStyleIDs = []uuid.UUID{
	uuid.MustParse("6f9619ff-8b86-4d01-b42d-00cf4fc964ff"),
	uuid.MustParse("7f9619ff-8b86-4d01-b42d-00cf4fc964ff"),
	uuid.MustParse("8f9619ff-8b86-4d01-b42d-00cf4fc964ff"),
}

func fallbackTrendingStyles(limit int) []TrendingStyle {
	styles := []TrendingStyle{
		{
			ID:              fallbackStyleIDs[0],
			Name:            "Minimalist Neutrals",
			Description:     "Clean lines and muted palettes",
			Category:        string(enums.ClothingCategoryTops),
			PopularityScore: 0.92,
			GrowthRate:      FormatGrowthRate(0.12),
			Direction:       enums.TrendDirectionUp,
			Tags:            []string{"minimalist", "neutral"},
		},
		{
			ID:              fallbackStyleIDs[1],
			Name:            "Streetwear Layers",
			Description:     "Oversized fits and statement sneakers",
			Category:        string(enums.ClothingCategoryOuterwear),
			PopularityScore: 0.88,
			GrowthRate:      FormatGrowthRate(0.08),
			Direction:       enums.TrendDirectionUp,
			Tags:            []string{"streetwear", "urban"},
		},
		{
			ID:              fallbackStyleIDs[2],
			Name:            "Classic Denim",
			Description:     "Timeless washes, straight cuts",
			Category:        string(enums.ClothingCategoryBottoms),
			PopularityScore: 0.84,
			GrowthRate:      FormatGrowthRate(0.01),
			Direction:       enums.TrendDirectionStable,
			Tags:            []string{"denim", "classic"},
		},
	}
	if limit > 0 && limit < len(styles) {
		styles = styles[:limit]
	}
	return styles
}

func fallbackExploreItems(limit int) []ExploreItem {
	items := []ExploreItem{
		{
			ID:            fallbackStyleIDs[0],
			Title:         "Capsule Wardrobe Essentials",
			Category:      string(enums.ClothingCategoryTops),
			TrendingScore: 0.9,
			IsTrending:    true,
			IsFeatured:    true,
		},
		{
			ID:            fallbackStyleIDs[1],
			Title:         "Layering For The Season",
			Category:      string(enums.ClothingCategoryOuterwear),
			TrendingScore: 0.8,
			IsTrending:    true,
		},
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func fallbackTrendingNow(limit int, now time.Time) []TrendingNowEntry {
	entries := []TrendingNowEntry{
		{
			ID:              fallbackStyleIDs[0],
			Name:            "Quiet Luxury",
			PopularityScore: 0.9,
			GrowthRate:      FormatGrowthRate(0.15),
			Direction:       enums.TrendDirectionUp,
			CreatedAt:       now.Truncate(time.Hour),
		},
		{
			ID:              fallbackStyleIDs[1],
			Name:            "Retro Sportswear",
			PopularityScore: 0.82,
			GrowthRate:      FormatGrowthRate(0.06),
			Direction:       enums.TrendDirectionUp,
			CreatedAt:       now.Truncate(time.Hour),
		},
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func fallbackInsights(now time.Time) []FashionInsight {
	return []FashionInsight{
		{
			ID:         fallbackStyleIDs[0],
			Title:      "Neutral palettes keep climbing",
			Insight:    "Earth tones continue to outperform saturated colors this season.",
			GrowthRate: FormatGrowthRate(0.11),
			Direction:  enums.TrendDirectionUp,
			ValidUntil: now.Add(24 * time.Hour).Truncate(time.Hour),
		},
	}
}

func fallbackInfluencers(limit int) []Influencer {
	influencers := []Influencer{
		{
			ID:            fallbackStyleIDs[0],
			Name:          "Ava Laurent",
			Handle:        "@avalaurent",
			Specialty:     "capsule wardrobes",
			FollowerCount: 1200000,
		},
		{
			ID:            fallbackStyleIDs[1],
			Name:          "Marco Reyes",
			Handle:        "@marcostyles",
			Specialty:     "streetwear",
			FollowerCount: 860000,
		},
	}
	if limit > 0 && limit < len(influencers) {
		influencers = influencers[:limit]
	}
	return influencers
}
