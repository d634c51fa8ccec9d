// Package geospatial implements great-circle distance over a spherical Earth
// model (haversine, R = 6371 km). The spherical simplification is off from
// an ellipsoidal model by a few tenths of a percent — negligible at the
// tens-of-kilometers scale of a room search, and every distance tolerance in
// this codebase assumes it. Do not swap the model without revisiting those.
package geospatial

import "math"

const earthRadiusMeters = 6371_000.0

// metersPerDegree is one degree of arc on the same sphere Distance uses.
// BoundingBox must derive its deltas from this, not a geodetic per-degree
// figure: a tighter constant would shave the box inside the search circle
// and drop edge points before the Distance refine ever sees them.
const metersPerDegree = earthRadiusMeters * math.Pi / 180

// boxPadDegrees (~1 cm) absorbs float rounding and the slight curvature
// shortfall of east/west box edges, keeping the box a strict superset of
// the circle.
const boxPadDegrees = 1e-7

// Distance returns the great-circle distance in meters between two points
// given as (lat, lon) degree pairs. Symmetric by construction, and exactly
// zero when both points are identical.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	sinLat := math.Sin(toRad(lat2-lat1) / 2)
	sinLon := math.Sin(toRad(lon2-lon1) / 2)

	a := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLon*sinLon
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoundingBox returns a degree-space box that fully contains the circle of
// radiusMeters around (lat, lon). It is a prefilter only: candidates inside
// the box still need a Distance check. Latitude is clamped at the poles;
// boxes that would cross the antimeridian are clamped too, which is fine for
// the city-scale radii this service allows.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMeters/metersPerDegree + boxPadDegrees

	cosLat := math.Cos(toRad(lat))
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	lonDelta := radiusMeters/(metersPerDegree*cosLat) + boxPadDegrees

	minLat = clamp(lat-latDelta, -90, 90)
	maxLat = clamp(lat+latDelta, -90, 90)
	minLon = clamp(lon-lonDelta, -180, 180)
	maxLon = clamp(lon+lonDelta, -180, 180)
	return minLat, minLon, maxLat, maxLon
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
