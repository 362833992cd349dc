package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fitsync/fitsync-backend/pkg/logger"
	"github.com/fitsync/fitsync-backend/pkg/metrics"
)

// Layer is the service-facing cache. Every fault (backend error, bad
// payload) is logged and treated as a miss; callers never see cache errors.
type Layer struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.CacheMetrics
	backend string

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats summarizes the layer for the cache admin surface.
type Stats struct {
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
}

// NewLayer wires a Layer over the given backend. backend is a label for
// stats/metrics ("memory" or "redis").
func NewLayer(store Store, backend string, logg *logger.Logger, m *metrics.CacheMetrics) *Layer {
	return &Layer{store: store, backend: backend, logg: logg, metrics: m}
}

// Get loads the cached JSON value into dest. Returns false on miss or fault.
func (l *Layer) Get(ctx context.Context, key string, dest any) bool {
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		if err != ErrMiss && l.logg != nil {
			l.logg.Warn(l.logg.WithField(ctx, "cache_key", key), "cache.get failed, treating as miss")
		}
		l.recordMiss(key)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		if l.logg != nil {
			l.logg.Warn(l.logg.WithField(ctx, "cache_key", key), "cache.get payload corrupt, treating as miss")
		}
		l.recordMiss(key)
		return false
	}
	l.recordHit(key)
	return true
}

// Set stores value as JSON under the namespace's TTL. Faults are logged.
func (l *Layer) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		if l.logg != nil {
			l.logg.Warn(l.logg.WithField(ctx, "cache_key", key), "cache.set marshal failed")
		}
		return
	}
	if err := l.store.Set(ctx, key, raw, TTLFor(namespaceOf(key))); err != nil && l.logg != nil {
		l.logg.Warn(l.logg.WithField(ctx, "cache_key", key), "cache.set failed")
	}
}

// Delete drops one key. Faults are logged.
func (l *Layer) Delete(ctx context.Context, key string) {
	if err := l.store.Delete(ctx, key); err != nil && l.logg != nil {
		l.logg.Warn(l.logg.WithField(ctx, "cache_key", key), "cache.delete failed")
	}
}

// InvalidateUser removes every key scoped to the user.
func (l *Layer) InvalidateUser(ctx context.Context, userID string) int {
	fragment := UserKeyFragment(userID)
	removed, err := l.store.InvalidateByPredicate(ctx, func(key string) bool {
		return strings.Contains(key, fragment)
	})
	if err != nil && l.logg != nil {
		l.logg.Warn(l.logg.WithField(ctx, "user_id", userID), "cache.invalidate_user incomplete")
	}
	return removed
}

// InvalidateLocation removes every nearby_* key in the coordinate's bucket.
func (l *Layer) InvalidateLocation(ctx context.Context, lat, lng float64) int {
	latFragment, lngFragment := LocationFragments(lat, lng)
	removed, err := l.store.InvalidateByPredicate(ctx, func(key string) bool {
		return strings.HasPrefix(key, "nearby_") &&
			strings.Contains(key, latFragment) &&
			strings.Contains(key, lngFragment)
	})
	if err != nil && l.logg != nil {
		l.logg.Warn(ctx, "cache.invalidate_location incomplete")
	}
	return removed
}

// Clear drops the whole cache. Warned because it hits every namespace.
func (l *Layer) Clear(ctx context.Context) error {
	if l.logg != nil {
		l.logg.Warn(ctx, "cache.clear invoked, flushing all namespaces")
	}
	return l.store.Clear(ctx)
}

// Stats reports backend, entry count, and hit/miss counters.
func (l *Layer) Stats(ctx context.Context) Stats {
	entries, err := l.store.Len(ctx)
	if err != nil && l.logg != nil {
		l.logg.Warn(ctx, "cache.stats entry count unavailable")
	}
	return Stats{
		Backend: l.backend,
		Entries: entries,
		Hits:    l.hits.Load(),
		Misses:  l.misses.Load(),
	}
}

// Healthy reports whether the backend answers a probe round trip.
func (l *Layer) Healthy(ctx context.Context) bool {
	probe := BuildKey("health_probe", P("check", "ping"))
	if err := l.store.Set(ctx, probe, []byte(`"ok"`), 10*time.Second); err != nil {
		return false
	}
	_, err := l.store.Get(ctx, probe)
	return err == nil || err == ErrMiss
}

func (l *Layer) recordHit(key string) {
	l.hits.Add(1)
	if l.metrics != nil {
		l.metrics.IncHit(namespaceOf(key))
	}
}

func (l *Layer) recordMiss(key string) {
	l.misses.Add(1)
	if l.metrics != nil {
		l.metrics.IncMiss(namespaceOf(key))
	}
}

func namespaceOf(key string) string {
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return key
}
