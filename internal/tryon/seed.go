package tryon

import "github.com/fitsync/fitsync-backend/pkg/db/models"

// DefaultFeatures is the seeded feature registry. It doubles as the
// hardcoded fallback when the registry table is unreachable, so the feature
// surface never comes back empty.
func DefaultFeatures() []models.TryOnFeature {
	return []models.TryOnFeature{
		{
			ID:                  "lighting",
			Name:                "Lighting Adjustment",
			Description:         "Correct colors for the ambient lighting in the camera feed",
			IsPremium:           false,
			ProcessingCost:      1.2,
			AccuracyImprovement: 0.15,
			IsAvailable:         true,
			RequiresGPU:         false,
			MinDeviceCapability: "basic",
		},
		{
			ID:                  "fit",
			Name:                "Fit Analysis",
			Description:         "Per-item fit scoring with size recommendations",
			IsPremium:           false,
			ProcessingCost:      1.5,
			AccuracyImprovement: 0.20,
			IsAvailable:         true,
			RequiresGPU:         false,
			MinDeviceCapability: "basic",
		},
		{
			ID:                  "movement",
			Name:                "Movement Tracking",
			Description:         "Track pose changes for a live mirror experience",
			IsPremium:           true,
			ProcessingCost:      2.5,
			AccuracyImprovement: 0.25,
			IsAvailable:         true,
			RequiresGPU:         true,
			MinDeviceCapability: "advanced",
		},
		{
			ID:                  "color_match",
			Name:                "Color Matching",
			Description:         "Match garment colors against your existing wardrobe palette",
			IsPremium:           false,
			ProcessingCost:      1.1,
			AccuracyImprovement: 0.10,
			IsAvailable:         true,
			RequiresGPU:         false,
			MinDeviceCapability: "basic",
		},
		{
			ID:                  "size_recommendation",
			Name:                "Size Recommendation",
			Description:         "Suggest the best size from body measurements and fit history",
			IsPremium:           true,
			ProcessingCost:      1.8,
			AccuracyImprovement: 0.30,
			IsAvailable:         true,
			RequiresGPU:         false,
			MinDeviceCapability: "standard",
		},
	}
}
