package trends

import (
	"context"
	"sort"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/cache"
	"github.com/fitsync/fitsync-backend/pkg/db/models"
	"github.com/fitsync/fitsync-backend/pkg/enums"
	"github.com/fitsync/fitsync-backend/pkg/geo"
	"github.com/fitsync/fitsync-backend/pkg/logger"
)

type repository interface {
	TrendingStyles(ctx context.Context, limit int) ([]models.FashionTrend, error)
	ExploreItems(ctx context.Context, category *string, trending *bool, limit, offset int) ([]models.ExploreContent, error)
	TrendingNow(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, limit int, now time.Time) ([]models.FashionTrend, error)
	Insights(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, now time.Time) ([]models.TrendInsight, error)
	Influencers(ctx context.Context, scope enums.TrendScope, limit int) ([]models.StyleInfluencer, error)
	CandidateLocations(ctx context.Context, locType enums.LocationType, now time.Time) ([]models.NearbyLocation, error)
}

// Service assembles discovery content. Every read goes through the cache
// layer first; query failures degrade to deterministic defaults so the
// discovery surfaces never blank out.
type Service struct {
	repo  repository
	cache *cache.Layer
	logg  *logger.Logger
	now   func() time.Time
}

func NewService(repo repository, cacheLayer *cache.Layer, logg *logger.Logger) *Service {
	return &Service{repo: repo, cache: cacheLayer, logg: logg, now: time.Now}
}

// GetTrendingStyles returns the trending-styles rail.
func (s *Service) GetTrendingStyles(ctx context.Context, limit int) []TrendingStyle {
	key := cache.BuildKey(cache.NamespaceTrendingStyles, cache.P("limit", limit))
	var cached []TrendingStyle
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	rows, err := s.repo.TrendingStyles(ctx, limit)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "trending_styles"), "discovery query failed, serving defaults")
		return fallbackTrendingStyles(limit)
	}

	styles := make([]TrendingStyle, 0, len(rows))
	for _, row := range rows {
		styles = append(styles, TrendingStyle{
			ID:              row.ID,
			Name:            row.Name,
			Description:     deref(row.Description),
			Category:        deref(row.Category),
			ImageURL:        deref(row.ImageURL),
			PopularityScore: row.PopularityScore,
			GrowthRate:      FormatGrowthRate(row.GrowthRate),
			Direction:       enums.DirectionForGrowthRate(row.GrowthRate),
			Tags:            row.Tags,
		})
	}

	s.cache.Set(ctx, key, styles)
	return styles
}

// GetExploreItems returns the discovery grid page.
func (s *Service) GetExploreItems(ctx context.Context, category *string, trending *bool, limit, offset int) []ExploreItem {
	key := cache.BuildKey(cache.NamespaceExploreItems,
		cache.P("category", category),
		cache.P("trending", trending),
		cache.P("limit", limit),
		cache.P("offset", offset),
	)
	var cached []ExploreItem
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	rows, err := s.repo.ExploreItems(ctx, category, trending, limit, offset)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "explore_items"), "discovery query failed, serving defaults")
		return fallbackExploreItems(limit)
	}

	items := make([]ExploreItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ExploreItem{
			ID:            row.ID,
			Title:         row.Title,
			Category:      deref(row.Category),
			ImageURL:      deref(row.ImageURL),
			TrendingScore: row.TrendingScore,
			IsTrending:    row.IsTrending,
			IsFeatured:    row.IsFeatured,
		})
	}

	s.cache.Set(ctx, key, items)
	return items
}

// GetCategories returns the browsable category list.
func (s *Service) GetCategories(ctx context.Context) []CategoryInfo {
	key := cache.BuildKey(cache.NamespaceCategories)
	var cached []CategoryInfo
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	categories := categoryCatalog()
	s.cache.Set(ctx, key, categories)
	return categories
}

// GetTrendingNow returns trends created inside the timeframe window.
func (s *Service) GetTrendingNow(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe, limit int) []TrendingNowEntry {
	key := cache.BuildKey(cache.NamespaceTrendingNow,
		cache.P("scope", scope),
		cache.P("timeframe", timeframe),
		cache.P("limit", limit),
	)
	var cached []TrendingNowEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	now := s.now()
	rows, err := s.repo.TrendingNow(ctx, scope, timeframe, limit, now)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "trending_now"), "discovery query failed, serving defaults")
		return fallbackTrendingNow(limit, now)
	}

	entries := make([]TrendingNowEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, TrendingNowEntry{
			ID:              row.ID,
			Name:            row.Name,
			Category:        deref(row.Category),
			PopularityScore: row.PopularityScore,
			GrowthRate:      FormatGrowthRate(row.GrowthRate),
			Direction:       enums.DirectionForGrowthRate(row.GrowthRate),
			CreatedAt:       row.CreatedAt,
		})
	}

	s.cache.Set(ctx, key, entries)
	return entries
}

// GetFashionInsights returns unexpired editorial insights.
func (s *Service) GetFashionInsights(ctx context.Context, scope enums.TrendScope, timeframe enums.Timeframe) []FashionInsight {
	key := cache.BuildKey(cache.NamespaceFashionInsights,
		cache.P("scope", scope),
		cache.P("timeframe", timeframe),
	)
	var cached []FashionInsight
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	now := s.now()
	rows, err := s.repo.Insights(ctx, scope, timeframe, now)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "fashion_insights"), "discovery query failed, serving defaults")
		return fallbackInsights(now)
	}

	insights := make([]FashionInsight, 0, len(rows))
	for _, row := range rows {
		insights = append(insights, FashionInsight{
			ID:         row.ID,
			Title:      row.Title,
			Insight:    row.Insight,
			GrowthRate: FormatGrowthRate(row.GrowthRate),
			Direction:  enums.DirectionForGrowthRate(row.GrowthRate),
			ValidUntil: row.ValidUntil,
		})
	}

	s.cache.Set(ctx, key, insights)
	return insights
}

// GetInfluencerSpotlight returns the influencer rail.
func (s *Service) GetInfluencerSpotlight(ctx context.Context, scope enums.TrendScope, limit int) []Influencer {
	key := cache.BuildKey(cache.NamespaceInfluencers,
		cache.P("scope", scope),
		cache.P("limit", limit),
	)
	var cached []Influencer
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	rows, err := s.repo.Influencers(ctx, scope, limit)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "influencer_spotlight"), "discovery query failed, serving defaults")
		return fallbackInfluencers(limit)
	}

	influencers := make([]Influencer, 0, len(rows))
	for _, row := range rows {
		influencers = append(influencers, Influencer{
			ID:            row.ID,
			Name:          row.Name,
			Handle:        row.Handle,
			AvatarURL:     deref(row.AvatarURL),
			Specialty:     deref(row.Specialty),
			FollowerCount: row.FollowerCount,
		})
	}

	s.cache.Set(ctx, key, influencers)
	return influencers
}

// rankedLocation pairs a candidate row with its distance from the caller.
type rankedLocation struct {
	loc      models.NearbyLocation
	distance float64
}

// nearbyCandidates applies the shared nearby pipeline: fetch candidates of
// one type, keep those within radius, sort ascending by distance, truncate.
func (s *Service) nearbyCandidates(ctx context.Context, locType enums.LocationType, lat, lng, radiusKM float64, limit int) ([]rankedLocation, error) {
	rows, err := s.repo.CandidateLocations(ctx, locType, s.now())
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedLocation, 0, len(rows))
	for _, row := range rows {
		d := geo.Distance(lat, lng, row.Latitude, row.Longitude)
		if d <= radiusKM {
			ranked = append(ranked, rankedLocation{loc: row, distance: d})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].loc.ID.String() < ranked[j].loc.ID.String()
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func nearbyKey(namespace string, lat, lng, radiusKM float64, limit int) string {
	return cache.BuildKey(namespace,
		cache.Coord("lat", lat),
		cache.Coord("lng", lng),
		cache.P("radius_km", radiusKM),
		cache.P("limit", limit),
	)
}

// GetNearbyPeople returns style-minded people around the coordinate.
func (s *Service) GetNearbyPeople(ctx context.Context, lat, lng, radiusKM float64, limit int) []NearbyPerson {
	key := nearbyKey(cache.NamespaceNearbyPeople, lat, lng, radiusKM, limit)
	var cached []NearbyPerson
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	ranked, err := s.nearbyCandidates(ctx, enums.LocationTypePerson, lat, lng, radiusKM, limit)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "nearby_people"), "discovery query failed, serving defaults")
		return fallbackNearbyPeople()
	}

	people := make([]NearbyPerson, 0, len(ranked))
	for _, r := range ranked {
		people = append(people, NearbyPerson{
			ID:         r.loc.ID,
			Name:       r.loc.Name,
			Archetype:  r.loc.Metadata.String("archetype"),
			AvatarURL:  r.loc.Metadata.String("avatar_url"),
			DistanceKM: roundDistance(r.distance),
		})
	}

	s.cache.Set(ctx, key, people)
	return people
}

// GetNearbyEvents returns fashion events around the coordinate.
func (s *Service) GetNearbyEvents(ctx context.Context, lat, lng, radiusKM float64, limit int) []NearbyEvent {
	key := nearbyKey(cache.NamespaceNearbyEvents, lat, lng, radiusKM, limit)
	var cached []NearbyEvent
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	ranked, err := s.nearbyCandidates(ctx, enums.LocationTypeEvent, lat, lng, radiusKM, limit)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "nearby_events"), "discovery query failed, serving defaults")
		return fallbackNearbyEvents()
	}

	events := make([]NearbyEvent, 0, len(ranked))
	for _, r := range ranked {
		events = append(events, NearbyEvent{
			ID:         r.loc.ID,
			Name:       r.loc.Name,
			Venue:      r.loc.Metadata.String("venue"),
			StartsAt:   r.loc.Metadata.String("starts_at"),
			DistanceKM: roundDistance(r.distance),
			ExpiresAt:  r.loc.ExpiresAt,
		})
	}

	s.cache.Set(ctx, key, events)
	return events
}

// GetNearbyHotspots returns shopping and style hotspots around the
// coordinate.
func (s *Service) GetNearbyHotspots(ctx context.Context, lat, lng, radiusKM float64, limit int) []NearbyHotspot {
	key := nearbyKey(cache.NamespaceNearbyHotspots, lat, lng, radiusKM, limit)
	var cached []NearbyHotspot
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	ranked, err := s.nearbyCandidates(ctx, enums.LocationTypeHotspot, lat, lng, radiusKM, limit)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "op", "nearby_hotspots"), "discovery query failed, serving defaults")
		return fallbackNearbyHotspots()
	}

	hotspots := make([]NearbyHotspot, 0, len(ranked))
	for _, r := range ranked {
		hotspots = append(hotspots, NearbyHotspot{
			ID:         r.loc.ID,
			Name:       r.loc.Name,
			Category:   r.loc.Metadata.String("category"),
			Rating:     r.loc.Metadata.String("rating"),
			DistanceKM: roundDistance(r.distance),
		})
	}

	s.cache.Set(ctx, key, hotspots)
	return hotspots
}

// GetNearbyMap returns combined pins of every location type for the map
// view, ascending by distance across types.
func (s *Service) GetNearbyMap(ctx context.Context, lat, lng, radiusKM float64, limit int) []MapPin {
	key := nearbyKey(cache.NamespaceNearbyMap, lat, lng, radiusKM, limit)
	var cached []MapPin
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	var ranked []rankedLocation
	for _, locType := range []enums.LocationType{enums.LocationTypePerson, enums.LocationTypeEvent, enums.LocationTypeHotspot} {
		batch, err := s.nearbyCandidates(ctx, locType, lat, lng, radiusKM, 0)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "op", "nearby_map"), "discovery query failed, serving defaults")
			return fallbackNearbyMap(lat, lng)
		}
		ranked = append(ranked, batch...)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].loc.ID.String() < ranked[j].loc.ID.String()
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	pins := make([]MapPin, 0, len(ranked))
	for _, r := range ranked {
		pins = append(pins, MapPin{
			ID:         r.loc.ID,
			Type:       r.loc.Type,
			Name:       r.loc.Name,
			Latitude:   r.loc.Latitude,
			Longitude:  r.loc.Longitude,
			DistanceKM: roundDistance(r.distance),
		})
	}

	s.cache.Set(ctx, key, pins)
	return pins
}

func categoryCatalog() []CategoryInfo {
	names := map[enums.ClothingCategory]string{
		enums.ClothingCategoryTops:        "Tops",
		enums.ClothingCategoryBottoms:     "Bottoms",
		enums.ClothingCategoryDresses:     "Dresses",
		enums.ClothingCategoryOuterwear:   "Outerwear",
		enums.ClothingCategoryShoes:       "Shoes",
		enums.ClothingCategoryAccessories: "Accessories",
		enums.ClothingCategoryUnderwear:   "Underwear",
		enums.ClothingCategorySwimwear:    "Swimwear",
		enums.ClothingCategoryActivewear:  "Activewear",
		enums.ClothingCategoryFormalwear:  "Formalwear",
	}

	out := make([]CategoryInfo, 0, len(names))
	for _, category := range []enums.ClothingCategory{
		enums.ClothingCategoryTops,
		enums.ClothingCategoryBottoms,
		enums.ClothingCategoryDresses,
		enums.ClothingCategoryOuterwear,
		enums.ClothingCategoryShoes,
		enums.ClothingCategoryAccessories,
		enums.ClothingCategoryUnderwear,
		enums.ClothingCategorySwimwear,
		enums.ClothingCategoryActivewear,
		enums.ClothingCategoryFormalwear,
	} {
		out = append(out, CategoryInfo{ID: string(category), DisplayName: names[category]})
	}
	return out
}

func fallbackNearbyPeople() []NearbyPerson {
	return []NearbyPerson{
		{ID: fallbackStyleIDs[0], Name: "Style Scout", Archetype: "minimalist", DistanceKM: 0.5},
	}
}

func fallbackNearbyEvents() []NearbyEvent {
	return []NearbyEvent{
		{ID: fallbackStyleIDs[0], Name: "Pop-Up Style Market", Venue: "Downtown", DistanceKM: 0.8},
	}
}

func fallbackNearbyHotspots() []NearbyHotspot {
	return []NearbyHotspot{
		{ID: fallbackStyleIDs[0], Name: "The Thread District", Category: "shopping", DistanceKM: 1.2},
	}
}

func fallbackNearbyMap(lat, lng float64) []MapPin {
	return []MapPin{
		{
			ID:        fallbackStyleIDs[0],
			Type:      enums.LocationTypeHotspot,
			Name:      "The Thread District",
			Latitude:  geo.RoundCoordinate(lat),
			Longitude: geo.RoundCoordinate(lng),
		},
	}
}

// roundDistance trims distances to meter precision for responses.
func roundDistance(km float64) float64 {
	return float64(int(km*1000)) / 1000
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
