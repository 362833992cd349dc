package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	if d := Distance(37.775, -122.4195, 37.775, -122.4195); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistanceKnownPoints(t *testing.T) {
	// One degree of latitude at the equator is about 111.19 km.
	d := Distance(0, 0, 1, 0)
	if math.Abs(d-111.19) > 0.2 {
		t.Fatalf("expected ~111.19 km, got %f", d)
	}

	// 0.1 degrees of latitude is about 11.1 km; this is the radius-cutoff
	// boundary the nearby queries care about.
	d = Distance(0, 0, 0.1, 0)
	if d <= 10 || d >= 12 {
		t.Fatalf("expected ~11.1 km, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(37.775, -122.4195, 40.7128, -74.006)
	b := Distance(40.7128, -74.006, 37.775, -122.4195)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestRoundCoordinate(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{37.77501, 37.775},
		{37.77499, 37.775},
		{-122.41949, -122.419},
		{-122.41951, -122.420},
		{0, 0},
	}
	for _, c := range cases {
		if got := RoundCoordinate(c.in); got != c.want {
			t.Fatalf("RoundCoordinate(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestRoundCoordinateSharesBucket(t *testing.T) {
	// Two coordinates differing by < 0.0005 land in the same bucket.
	if RoundCoordinate(37.77501) != RoundCoordinate(37.77499) {
		t.Fatal("expected shared bucket for coordinates 0.00002 apart")
	}
}
