package tryon

import (
	"testing"

	"github.com/fitsync/fitsync-backend/pkg/stablehash"
	"github.com/fitsync/fitsync-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitScoreRangeAndDeterminism(t *testing.T) {
	for _, id := range []string{"i1", "i2", "jacket-9f", ""} {
		score := fitScore(id)
		assert.GreaterOrEqual(t, score, 0.80)
		assert.Less(t, score, 1.0)
		assert.Equal(t, score, fitScore(id))
	}
}

func TestFitIssuesThresholds(t *testing.T) {
	assert.Equal(t, []string{"Slightly loose in the waist", "Consider size adjustment"}, fitIssues(0.84))
	assert.Equal(t, []string{"Consider size adjustment"}, fitIssues(0.85))
	assert.Empty(t, fitIssues(0.90))
}

func TestSizeRecommendationThreshold(t *testing.T) {
	assert.Equal(t, "Size down", sizeRecommendation(0.84))
	assert.Equal(t, "True to size", sizeRecommendation(0.85))
}

func TestAnalyzeFitPerItem(t *testing.T) {
	items := []types.OutfitItem{
		{ID: "i1", Name: "Shirt", Category: "tops", ImageURL: "u1"},
		{ID: "i2", Name: "Jeans", Category: "bottoms", ImageURL: "u2"},
	}

	analyses := analyzeFit(items)
	require.Len(t, analyses, 2)
	for i, a := range analyses {
		assert.Equal(t, items[i].ID, a.ItemID)
		assert.Equal(t, 0.80+float64(stablehash.Hash(items[i].ID)%20)/100, a.FitScore)
		assert.Equal(t, map[string]float64{"chest": 36.0, "waist": 32.0, "length": 28.0}, a.Measurements)
	}
}

func TestAnalyzeColorLightingFlag(t *testing.T) {
	items := []types.OutfitItem{{ID: "i1", Name: "Shirt", Category: "tops", ImageURL: "u1"}}

	analyses := analyzeColor(items)
	require.Len(t, analyses, 1)
	accuracy := 0.85 + float64(stablehash.Hash("Shirt")%15)/100
	assert.Equal(t, accuracy, analyses[0].ColorAccuracy)
	assert.Equal(t, accuracy >= 0.90, analyses[0].LightingAdjusted)
	if analyses[0].LightingAdjusted {
		assert.Equal(t, "current lighting", analyses[0].RecommendedLighting)
	} else {
		assert.Equal(t, "natural daylight", analyses[0].RecommendedLighting)
	}
}

func TestStyleScoreMultiCategoryBonus(t *testing.T) {
	single := []types.OutfitItem{{ID: "i1", Category: "tops"}, {ID: "i2", Category: "tops"}}
	multi := []types.OutfitItem{{ID: "i1", Category: "tops"}, {ID: "i2", Category: "bottoms"}}

	base := styleScore(single, "user-a")
	boosted := styleScore(multi, "user-a")
	assert.GreaterOrEqual(t, boosted, base)
	assert.LessOrEqual(t, boosted, 1.0)
	assert.GreaterOrEqual(t, base, 0.80)

	// user variation is capped at 1.0
	for _, userID := range []string{"user-a", "user-b", "user-c"} {
		assert.LessOrEqual(t, styleScore(multi, userID), 1.0)
	}
}
