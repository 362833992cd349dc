package cacheadmin

import (
	"context"

	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/errors"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

// trendWarmer is the slice of the trends service the warm-up pass needs.
type trendWarmer interface {
	GetTrendingStyles(ctx context.Context, limit int) []trends.TrendingStyle
	GetExploreItems(ctx context.Context, category *string, trending *bool, limit, offset int) []trends.ExploreItem
	GetCategories(ctx context.Context) []trends.CategoryInfo
}

// Service is the operator-facing cache surface: stats, targeted
// invalidation, health, and warm-up.
type Service struct {
	layer    *cache.Layer
	trends   trendWarmer
	features func(ctx context.Context) int
	logg     *logger.Logger
}

func NewService(layer *cache.Layer, trendsSvc trendWarmer, features func(ctx context.Context) int, logg *logger.Logger) *Service {
	return &Service{layer: layer, trends: trendsSvc, features: features, logg: logg}
}

// Stats reports backend, entry count, and hit/miss counters.
func (s *Service) Stats(ctx context.Context) cache.Stats {
	return s.layer.Stats(ctx)
}

// Clear flushes every namespace. Destructive, admin-only.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.layer.Clear(ctx); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing cache")
	}
	return nil
}

// InvalidateUser drops every key scoped to the user and reports how many.
func (s *Service) InvalidateUser(ctx context.Context, userID string) int {
	return s.layer.InvalidateUser(ctx, userID)
}

// InvalidateLocation drops every nearby key in the coordinate's bucket.
func (s *Service) InvalidateLocation(ctx context.Context, lat, lng float64) int {
	return s.layer.InvalidateLocation(ctx, lat, lng)
}

// HealthReport is the cache health payload.
type HealthReport struct {
	Healthy bool   `json:"healthy"`
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
}

// Health probes the backend with a set/get round trip.
func (s *Service) Health(ctx context.Context) HealthReport {
	stats := s.layer.Stats(ctx)
	return HealthReport{
		Healthy: s.layer.Healthy(ctx),
		Backend: stats.Backend,
		Entries: stats.Entries,
	}
}

// WarmUpResult reports how many entries each warmed surface produced.
type WarmUpResult struct {
	TrendingStyles int `json:"trending_styles"`
	ExploreItems   int `json:"explore_items"`
	Categories     int `json:"categories"`
	Features       int `json:"features"`
}

// WarmUp primes the hottest read surfaces so the first requests after a
// deploy or flush do not all stampede the database.
func (s *Service) WarmUp(ctx context.Context) WarmUpResult {
	result := WarmUpResult{
		TrendingStyles: len(s.trends.GetTrendingStyles(ctx, 20)),
		ExploreItems:   len(s.trends.GetExploreItems(ctx, nil, nil, 50, 0)),
		Categories:     len(s.trends.GetCategories(ctx)),
	}
	if s.features != nil {
		result.Features = s.features(ctx)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"trending_styles": result.TrendingStyles,
		"explore_items":   result.ExploreItems,
		"categories":      result.Categories,
		"features":        result.Features,
	}), "cache warm-up complete")
	return result
}
