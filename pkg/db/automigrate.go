package db

import (
	"context"

	"github.com/fitsync/fitsync-backend/pkg/config"
	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

// MaybeAutoMigrate creates the schema via GORM in development environments.
// Production schema management happens outside this service.
func MaybeAutoMigrate(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if cfg.App.IsProd() {
		if logg != nil {
			logg.Warn(ctx, "auto-migrate requested in production, skipping")
		}
		return nil
	}

	if logg != nil {
		logg.Info(ctx, "running dev auto-migration")
	}
	return client.DB().WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.StylePreference{},
		&models.ClothingItem{},
		&models.TryOnSession{},
		&models.TryOnOutfitAttempt{},
		&models.TryOnFeature{},
		&models.UserTryOnPreferences{},
		&models.TryOnAnalytics{},
		&models.FashionTrend{},
		&models.ExploreContent{},
		&models.StyleInfluencer{},
		&models.TrendInsight{},
		&models.NearbyLocation{},
	)
}
