package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	trends      []models.FashionTrend
	explore     []models.ExploreContent
	insights    []models.TrendInsight
	influencers []models.StyleInfluencer
	locations   []models.NearbyLocation

	failAll   bool
	locCalls  int
	trendCall int
}

func (f *fakeRepo) TrendingStyles(ctx context.Context, limit int) ([]models.FashionTrend, error) {
	f.trendCall++
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	if limit > 0 && len(f.trends) > limit {
		return f.trends[:limit], nil
	}
	return f.trends, nil
}

func (f *fakeRepo) ExploreItems(ctx context.Context, category *string, trending *bool, limit, offset int) ([]models.ExploreContent, error) {
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	return f.explore, nil
}

func (f *fakeRepo) TrendingNow(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, limit int, now time.Time) ([]models.FashionTrend, error) {
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	cutoff := now.Add(-timeframe.Duration())
	var out []models.FashionTrend
	for _, t := range f.trends {
		if !t.CreatedAt.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Insights(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, now time.Time) ([]models.TrendInsight, error) {
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	return f.insights, nil
}

func (f *fakeRepo) Influencers(ctx context.Context, scope enums.TrendScope, limit int) ([]models.StyleInfluencer, error) {
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	return f.influencers, nil
}

func (f *fakeRepo) CandidateLocations(ctx context.Context, locType enums.LocationType, now time.Time) ([]models.NearbyLocation, error) {
	f.locCalls++
	if f.failAll {
		return nil, fmt.Errorf("db down")
	}
	var out []models.NearbyLocation
	for _, l := range f.locations {
		if l.Type == locType {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)
	layer := cache.NewLayer(store, "memory", logg, nil)
	svc := NewService(repo, layer, logg)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGrowthRateFormatting(t *testing.T) {
	assert.Equal(t, "+12%", FormatGrowthRate(0.12))
	assert.Equal(t, "-7%", FormatGrowthRate(-0.073))
	assert.Equal(t, "+0%", FormatGrowthRate(0.004))
}

func TestTrendingStylesFormatsGrowthAndDirection(t *testing.T) {
	repo := &fakeRepo{trends: []models.FashionTrend{
		{ID: uuid.New(), Name: "up", GrowthRate: 0.12, PopularityScore: 0.9, IsActive: true},
		{ID: uuid.New(), Name: "down", GrowthRate: -0.2, PopularityScore: 0.8, IsActive: true},
		{ID: uuid.New(), Name: "flat", GrowthRate: 0.01, PopularityScore: 0.7, IsActive: true},
	}}
	svc := newTestService(t, repo)

	styles := svc.GetTrendingStyles(context.Background(), 10)
	require.Len(t, styles, 3)
	assert.Equal(t, "+12%", styles[0].GrowthRate)
	assert.Equal(t, enums.TrendDirectionUp, styles[0].Direction)
	assert.Equal(t, "-20%", styles[1].GrowthRate)
	assert.Equal(t, enums.TrendDirectionDown, styles[1].Direction)
	assert.Equal(t, enums.TrendDirectionStable, styles[2].Direction)
}

func TestTrendingStylesServedFromCache(t *testing.T) {
	repo := &fakeRepo{trends: []models.FashionTrend{
		{ID: uuid.New(), Name: "cached", PopularityScore: 0.9, IsActive: true},
	}}
	svc := newTestService(t, repo)

	first := svc.GetTrendingStyles(context.Background(), 5)
	second := svc.GetTrendingStyles(context.Background(), 5)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.trendCall)
}

func TestTrendingStylesFallbackOnFailure(t *testing.T) {
	svc := newTestService(t, &fakeRepo{failAll: true})

	styles := svc.GetTrendingStyles(context.Background(), 2)
	require.NotEmpty(t, styles)

	// deterministic across calls
	again := svc.GetTrendingStyles(context.Background(), 2)
	assert.Equal(t, styles, again)
}

func seedLocation(locType enums.LocationType, name string, lat, lng float64) models.NearbyLocation {
	return models.NearbyLocation{
		ID:        uuid.New(),
		Type:      locType,
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		IsActive:  true,
		IsPublic:  true,
	}
}

func TestNearbyHotspotsRadiusCutoffAndOrdering(t *testing.T) {
	near := seedLocation(enums.LocationTypeHotspot, "near", 0.000, 0.000)
	far := seedLocation(enums.LocationTypeHotspot, "far", 0.100, 0.000)
	repo := &fakeRepo{locations: []models.NearbyLocation{far, near}}
	svc := newTestService(t, repo)

	within10 := svc.GetNearbyHotspots(context.Background(), 0, 0, 10, 20)
	require.Len(t, within10, 1)
	assert.Equal(t, "near", within10[0].Name)

	within20 := svc.GetNearbyHotspots(context.Background(), 0.0001, 0, 20, 20)
	require.Len(t, within20, 2)
	assert.Equal(t, "near", within20[0].Name)
	assert.Equal(t, "far", within20[1].Name)
	assert.Less(t, within20[0].DistanceKM, within20[1].DistanceKM)
}

func TestNearbyPeopleSharesCacheBucket(t *testing.T) {
	person := seedLocation(enums.LocationTypePerson, "scout", 37.7750, -122.4195)
	person.Metadata = map[string]any{"archetype": "minimalist"}
	repo := &fakeRepo{locations: []models.NearbyLocation{person}}
	svc := newTestService(t, repo)

	first := svc.GetNearbyPeople(context.Background(), 37.77501, -122.41949, 1, 20)
	second := svc.GetNearbyPeople(context.Background(), 37.77499, -122.41951, 1, 20)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
	assert.Equal(t, 1, repo.locCalls, "second bucket-equal request must hit the cache")
}

func TestNearbyPeopleDifferentBucketsDoNotShare(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	svc.GetNearbyPeople(context.Background(), 37.775, -122.419, 1, 20)
	svc.GetNearbyPeople(context.Background(), 37.776, -122.419, 1, 20)
	assert.Equal(t, 2, repo.locCalls)
}

func TestNearbyMapCombinesTypes(t *testing.T) {
	repo := &fakeRepo{locations: []models.NearbyLocation{
		seedLocation(enums.LocationTypePerson, "p", 0.001, 0),
		seedLocation(enums.LocationTypeEvent, "e", 0.002, 0),
		seedLocation(enums.LocationTypeHotspot, "h", 0.0005, 0),
	}}
	svc := newTestService(t, repo)

	pins := svc.GetNearbyMap(context.Background(), 0, 0, 50, 20)
	require.Len(t, pins, 3)
	assert.Equal(t, "h", pins[0].Name)
	assert.Equal(t, "p", pins[1].Name)
	assert.Equal(t, "e", pins[2].Name)
}

func TestEventExpiryFiltersInRepoContract(t *testing.T) {
	// the fake mirrors the repo contract: expired events never reach the
	// service, so candidates of other types are unaffected
	repo := &fakeRepo{locations: []models.NearbyLocation{
		seedLocation(enums.LocationTypeEvent, "live", 0, 0),
	}}
	svc := newTestService(t, repo)

	events := svc.GetNearbyEvents(context.Background(), 0, 0, 5, 10)
	require.Len(t, events, 1)
	assert.Equal(t, "live", events[0].Name)
}

func TestFashionInsightsFallbackNonEmpty(t *testing.T) {
	svc := newTestService(t, &fakeRepo{failAll: true})
	insights := svc.GetFashionInsights(context.Background(), enums.TrendScopeGlobal, enums.TimeframeWeek)
	assert.NotEmpty(t, insights)
}

func TestCategoriesCachedAndComplete(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	categories := svc.GetCategories(context.Background())
	require.Len(t, categories, 10)
	assert.Equal(t, "tops", categories[0].ID)

	again := svc.GetCategories(context.Background())
	assert.Equal(t, categories, again)
}
