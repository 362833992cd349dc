package cacheadmin

import (
	"context"
	"io"
	"testing"

	"github.com/fitsync/fitsync-backend/internal/trends"
	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrends struct{}

func (fakeTrends) GetTrendingStyles(_ context.Context, limit int) []trends.TrendingStyle {
	return make([]trends.TrendingStyle, 3)
}

func (fakeTrends) GetExploreItems(_ context.Context, _ *string, _ *bool, limit, _ int) []trends.ExploreItem {
	return make([]trends.ExploreItem, 5)
}

func (fakeTrends) GetCategories(_ context.Context) []trends.CategoryInfo {
	return make([]trends.CategoryInfo, 10)
}

func newAdmin(t *testing.T) (*Service, *cache.Layer) {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	layer := cache.NewLayer(store, "memory", logg, nil)
	svc := NewService(layer, fakeTrends{}, func(context.Context) int { return 5 }, logg)
	return svc, layer
}

func TestStatsReflectLayerActivity(t *testing.T) {
	svc, layer := newAdmin(t)
	ctx := context.Background()

	key := cache.BuildKey(cache.NamespaceTrendingStyles, cache.P("limit", 20))
	layer.Set(ctx, key, []string{"a"})
	var out []string
	require.True(t, layer.Get(ctx, key, &out))

	stats := svc.Stats(ctx)
	assert.Equal(t, "memory", stats.Backend)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestClearEmptiesEveryNamespace(t *testing.T) {
	svc, layer := newAdmin(t)
	ctx := context.Background()

	layer.Set(ctx, cache.BuildKey(cache.NamespaceTrendingStyles, cache.P("limit", 20)), "a")
	layer.Set(ctx, cache.BuildKey(cache.NamespaceExploreItems, cache.P("limit", 50)), "b")
	require.NoError(t, svc.Clear(ctx))

	assert.Equal(t, 0, svc.Stats(ctx).Entries)
}

func TestInvalidateUserReportsCount(t *testing.T) {
	svc, layer := newAdmin(t)
	ctx := context.Background()

	layer.Set(ctx, cache.BuildKey(cache.NamespaceRecommendations, cache.P("limit", 3), cache.P("user_id", "u1")), "a")
	layer.Set(ctx, cache.BuildKey(cache.NamespaceRecommendations, cache.P("limit", 3), cache.P("user_id", "u2")), "b")

	removed := svc.InvalidateUser(ctx, "u1")
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, svc.Stats(ctx).Entries)
}

func TestHealthReport(t *testing.T) {
	svc, _ := newAdmin(t)
	report := svc.Health(context.Background())
	assert.True(t, report.Healthy)
	assert.Equal(t, "memory", report.Backend)
}

func TestWarmUpCounts(t *testing.T) {
	svc, _ := newAdmin(t)
	result := svc.WarmUp(context.Background())
	assert.Equal(t, 3, result.TrendingStyles)
	assert.Equal(t, 5, result.ExploreItems)
	assert.Equal(t, 10, result.Categories)
	assert.Equal(t, 5, result.Features)
}
