package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// GeoPoint is a validated WGS 84 coordinate pair. Its JSON and storage form
// is the two-element array [longitude, latitude] — longitude first, matching
// the GeoJSON axis order. Construct through NewGeoPoint or ParseCoordinates
// so an out-of-range or non-finite pair can never enter the system.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// NewGeoPoint validates and builds a point from a longitude/latitude pair.
func NewGeoPoint(lon, lat float64) (GeoPoint, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoPoint{}, &ValidationError{Field: "lng", Reason: "must be a finite number"}
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return GeoPoint{}, &ValidationError{Field: "lat", Reason: "must be a finite number"}
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, &ValidationError{Field: "lng", Reason: fmt.Sprintf("must be within [-180, 180], got %v", lon)}
	}
	if lat < -90 || lat > 90 {
		return GeoPoint{}, &ValidationError{Field: "lat", Reason: fmt.Sprintf("must be within [-90, 90], got %v", lat)}
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

// ParseCoordinates normalizes an optional coordinate pair. Both fields absent
// means "no location" and yields a nil point. Supplying only one of the two
// is a hard validation error: a half-formed point would be stored but never
// matched by any radius query, which is a silent data-loss bug.
func ParseCoordinates(lon, lat *float64) (*GeoPoint, error) {
	if lon == nil && lat == nil {
		return nil, nil
	}
	if lon == nil || lat == nil {
		return nil, &ValidationError{Field: "location", Reason: "both lng and lat must be supplied, or neither"}
	}
	p, err := NewGeoPoint(*lon, *lat)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarshalJSON renders the point as [lng, lat].
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

// UnmarshalJSON parses and validates a [lng, lat] array. Anything that is
// not exactly two in-range finite numbers is rejected.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return &ValidationError{Field: "location", Reason: "must be a [lng, lat] array of two numbers"}
	}
	if len(pair) != 2 {
		return &ValidationError{Field: "location", Reason: fmt.Sprintf("must have exactly 2 elements, got %d", len(pair))}
	}
	parsed, err := NewGeoPoint(pair[0], pair[1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("[%v, %v]", p.Lon, p.Lat)
}
