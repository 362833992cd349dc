package cache

import (
	"strings"
	"testing"
)

func TestBuildKeySortsParams(t *testing.T) {
	key := BuildKey(NamespaceExploreItems,
		P("offset", 0),
		P("category", "tops"),
		P("limit", 20),
	)
	if key != "explore_items:category:tops:limit:20:offset:0" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestBuildKeyOmitsNilValues(t *testing.T) {
	var category *string
	key := BuildKey(NamespaceExploreItems,
		P("category", category),
		P("limit", 20),
	)
	if key != "explore_items:limit:20" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestBuildKeyHashesLongKeys(t *testing.T) {
	long := strings.Repeat("x", 120)
	key := BuildKey(NamespaceRecommendations, P("context", long))
	if !strings.HasPrefix(key, NamespaceRecommendations+":hash:") {
		t.Fatalf("expected hashed key, got %q", key)
	}
	if len(key) > maxKeyLength {
		t.Fatalf("hashed key still over limit: %d chars", len(key))
	}

	// Same input, same digest; different input, different digest.
	if key != BuildKey(NamespaceRecommendations, P("context", long)) {
		t.Fatal("hashed key not deterministic")
	}
	other := BuildKey(NamespaceRecommendations, P("context", long+"y"))
	if key == other {
		t.Fatal("distinct inputs must not collide on the digest form")
	}
}

func TestCoordParamSharesBucket(t *testing.T) {
	a := BuildKey(NamespaceNearbyPeople,
		Coord("lat", 37.77501), Coord("lng", -122.41949),
		P("radius_km", 1.0), P("limit", 20),
	)
	b := BuildKey(NamespaceNearbyPeople,
		Coord("lat", 37.77499), Coord("lng", -122.41951),
		P("radius_km", 1.0), P("limit", 20),
	)
	if a != b {
		t.Fatalf("coordinates in the same 3-decimal bucket must share a key: %q vs %q", a, b)
	}
	if !strings.Contains(a, "lat:37.775") || !strings.Contains(a, "lng:-122.419") {
		t.Fatalf("expected rounded fragments in key %q", a)
	}
}

func TestCoordParamSplitsBuckets(t *testing.T) {
	a := BuildKey(NamespaceNearbyMap, Coord("lat", 37.7754), Coord("lng", 0.0))
	b := BuildKey(NamespaceNearbyMap, Coord("lat", 37.7756), Coord("lng", 0.0))
	if a == b {
		t.Fatal("coordinates in different buckets must not share a key")
	}
}

func TestUserKeyFragment(t *testing.T) {
	key := BuildKey(NamespaceRecommendations, P("user_id", "u-123"), P("limit", 3))
	if !strings.Contains(key, UserKeyFragment("u-123")) {
		t.Fatalf("user-scoped key %q must contain the user fragment", key)
	}
}
