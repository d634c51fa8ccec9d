package domain

import (
	"strings"
	"time"
)

// ImageRef is an opaque reference into the external blob store.
type ImageRef struct {
	URL string `json:"url"`
	ID  string `json:"id,omitempty"`
}

// Listing is a rentable room published by a landlord. Location is optional;
// a listing without one is valid but never appears in radius search results.
type Listing struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Rent          float64    `json:"rent"`
	Address       string     `json:"address"`
	Description   string     `json:"description,omitempty"`
	ContactNumber string     `json:"contact_number,omitempty"`
	Images        []ImageRef `json:"images,omitempty"`
	Location      *GeoPoint  `json:"location,omitempty"`
	OwnerID       string     `json:"owner_id"`
	Distance      *float64   `json:"distance,omitempty"` // meters, set on search results
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Validate checks the listing invariants before it reaches storage.
// The location re-check is defensive: points are expected to arrive through
// ParseCoordinates, but a malformed point must never touch the spatial index.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if l.Rent <= 0 {
		return &ValidationError{Field: "rent", Reason: "must be a positive number"}
	}
	if l.OwnerID == "" {
		return &ValidationError{Field: "owner_id", Reason: "must not be empty"}
	}
	if l.Location != nil {
		if _, err := NewGeoPoint(l.Location.Lon, l.Location.Lat); err != nil {
			return err
		}
	}
	return nil
}

// MaxSearchRadiusMeters bounds a radius query at 100 km so a single search
// cannot degenerate into a full-catalog scan.
const MaxSearchRadiusMeters = 100_000

// SearchQuery is the input to a radius search. Not persisted.
type SearchQuery struct {
	Center       GeoPoint `json:"center"`
	RadiusMeters float64  `json:"radius_meters"`
}

// Validate re-checks the center through the coordinate rules and bounds the
// radius. A zero radius is allowed: it matches only exact-coincident points.
func (q SearchQuery) Validate() error {
	if _, err := NewGeoPoint(q.Center.Lon, q.Center.Lat); err != nil {
		return err
	}
	if q.RadiusMeters < 0 {
		return &ValidationError{Field: "radius_meters", Reason: "must not be negative"}
	}
	if q.RadiusMeters > MaxSearchRadiusMeters {
		return &ValidationError{Field: "radius_meters", Reason: "must not exceed 100000"}
	}
	return nil
}
