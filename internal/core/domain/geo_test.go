package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/roomradar/roomradar/internal/core/domain"
)

func f(v float64) *float64 { return &v }

func TestNewGeoPoint_Valid(t *testing.T) {
	p, err := domain.NewGeoPoint(-73.99, 40.73)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lon != -73.99 || p.Lat != 40.73 {
		t.Errorf("point mangled: %v", p)
	}
}

func TestNewGeoPoint_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		lon, lat float64
	}{
		{"lng over range", 200, 10},
		{"lng under range", -180.01, 0},
		{"lat over range", 10, 91},
		{"lat under range", 10, -90.5},
		{"lng NaN", math.NaN(), 10},
		{"lat NaN", 10, math.NaN()},
		{"lng infinity", math.Inf(1), 10},
		{"lat negative infinity", 10, math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := domain.NewGeoPoint(tc.lon, tc.lat); err == nil {
				t.Errorf("expected rejection for (%v, %v)", tc.lon, tc.lat)
			}
		})
	}
}

func TestNewGeoPoint_BoundaryValues(t *testing.T) {
	for _, pair := range [][2]float64{{-180, -90}, {180, 90}, {0, 0}} {
		if _, err := domain.NewGeoPoint(pair[0], pair[1]); err != nil {
			t.Errorf("boundary point (%v, %v) rejected: %v", pair[0], pair[1], err)
		}
	}
}

func TestParseCoordinates_BothAbsent(t *testing.T) {
	p, err := domain.ParseCoordinates(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil point for absent coordinates, got %v", p)
	}
}

func TestParseCoordinates_PartialPair(t *testing.T) {
	if _, err := domain.ParseCoordinates(f(10), nil); err == nil {
		t.Error("expected error for lng without lat")
	}
	if _, err := domain.ParseCoordinates(nil, f(10)); err == nil {
		t.Error("expected error for lat without lng")
	}
}

func TestParseCoordinates_Valid(t *testing.T) {
	p, err := domain.ParseCoordinates(f(-73.99), f(40.73))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Lon != -73.99 || p.Lat != 40.73 {
		t.Errorf("unexpected point: %v", p)
	}
}

// Longitude must serialize first. A swapped pair is validly shaped but
// geographically wrong, so the order is pinned here.
func TestGeoPoint_JSONOrder(t *testing.T) {
	p, _ := domain.NewGeoPoint(77.5946, 12.9716)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[77.5946,12.9716]" {
		t.Errorf("expected [lng,lat] array, got %s", data)
	}

	var back domain.GeoPoint
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != p {
		t.Errorf("round trip changed point: %v != %v", back, p)
	}
}

func TestGeoPoint_UnmarshalRejects(t *testing.T) {
	for _, raw := range []string{
		`[77.59]`,
		`[77.59, 12.97, 0]`,
		`[200, 10]`,
		`{"lng": 77.59, "lat": 12.97}`,
		`"77.59,12.97"`,
	} {
		var p domain.GeoPoint
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			t.Errorf("expected %s to be rejected", raw)
		}
	}
}
