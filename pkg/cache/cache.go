package cache

import (
	"context"
	"time"
)

// CacheError is a sentinel error type for cache outcomes.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss CacheError = "cache miss"
)

// Store is the backing key/value contract. Both the in-process map and the
// Redis backend satisfy it; callers should not assume which one they hold.
type Store interface {
	// Get retrieves a value by key. Returns ErrMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// InvalidateByPredicate removes every entry whose key satisfies pred and
	// returns how many were removed.
	InvalidateByPredicate(ctx context.Context, pred func(key string) bool) (int, error)

	// Len reports the number of live entries, where the backend can know it.
	Len(ctx context.Context) (int, error)
}

// Per-namespace TTLs. These are part of the caching contract: services must
// not pick ad-hoc expirations.
const (
	NamespaceCategories      = "categories"
	NamespaceTrendingStyles  = "trending_styles"
	NamespaceFashionInsights = "fashion_insights"
	NamespaceInfluencers     = "influencer_spotlight"
	NamespaceExploreItems    = "explore_items"
	NamespaceTrendingNow     = "trending_now"
	NamespaceRecommendations = "outfit_recommendations"
	NamespaceNearbyPeople    = "nearby_people"
	NamespaceNearbyEvents    = "nearby_events"
	NamespaceNearbyHotspots  = "nearby_hotspots"
	NamespaceNearbyMap       = "nearby_map"
	NamespaceTryOnFeatures   = "tryon_features"
)

var ttlByNamespace = map[string]time.Duration{
	NamespaceCategories:      3600 * time.Second,
	NamespaceTrendingStyles:  900 * time.Second,
	NamespaceFashionInsights: 1800 * time.Second,
	NamespaceInfluencers:     1800 * time.Second,
	NamespaceExploreItems:    300 * time.Second,
	NamespaceTrendingNow:     600 * time.Second,
	NamespaceRecommendations: 60 * time.Second,
	NamespaceNearbyPeople:    180 * time.Second,
	NamespaceNearbyEvents:    180 * time.Second,
	NamespaceNearbyHotspots:  180 * time.Second,
	NamespaceNearbyMap:       180 * time.Second,
	NamespaceTryOnFeatures:   3600 * time.Second,
}

// defaultTTL covers namespaces missing from the table.
const defaultTTL = 300 * time.Second

// TTLFor returns the expiration for a namespace.
func TTLFor(namespace string) time.Duration {
	if ttl, ok := ttlByNamespace[namespace]; ok {
		return ttl
	}
	return defaultTTL
}
