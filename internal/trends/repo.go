package trends

import (
	"context"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository reads the externally maintained discovery tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TrendingStyles returns active trends, most popular first.
func (r *Repository) TrendingStyles(ctx context.Context, limit int) ([]models.FashionTrend, error) {
	var rows []models.FashionTrend
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("popularity_score DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExploreItems returns discovery-grid content with optional category and
// trending filters. Featured rows sort first.
func (r *Repository) ExploreItems(ctx context.Context, category *string, trending *bool, limit, offset int) ([]models.ExploreContent, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if trending != nil {
		query = query.Where("is_trending = ?", *trending)
	}

	var rows []models.ExploreContent
	err := query.
		Order("is_featured DESC, trending_score DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TrendingNow returns trends created inside the timeframe window for the
// given scope.
func (r *Repository) TrendingNow(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, limit int, now time.Time) ([]models.FashionTrend, error) {
	var rows []models.FashionTrend
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND scope = ? AND created_at >= ?", true, scope, now.Add(-timeframe.Duration())).
		Order("popularity_score DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Insights returns unexpired insight rows for the scope and timeframe.
func (r *Repository) Insights(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, now time.Time) ([]models.TrendInsight, error) {
	var rows []models.TrendInsight
	err := r.db.WithContext(ctx).
		Where("scope = ? AND timeframe = ? AND valid_until > ?", scope, timeframe, now).
		Order("valid_until DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Influencers returns active influencers for the scope, largest audience
// first.
func (r *Repository) Influencers(ctx context.Context, scope enums.TrendScope, limit int) ([]models.StyleInfluencer, error) {
	var rows []models.StyleInfluencer
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND scope = ?", true, scope).
		Order("follower_count DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CandidateLocations returns active public locations of the given type.
// Event rows past expires_at are excluded; distance filtering happens in the
// service because it needs the caller's coordinate.
func (r *Repository) CandidateLocations(ctx context.Context, locType enums.LocationType, now time.Time) ([]models.NearbyLocation, error) {
	query := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ? AND is_public = ?", locType, true, true)
	if locType == enums.LocationTypeEvent {
		query = query.Where("expires_at IS NULL OR expires_at > ?", now)
	}

	var rows []models.NearbyLocation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
