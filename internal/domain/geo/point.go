// Package geo holds the SolR spatial syntax used by geodistance filtering.
package geo

// WorldRange is the range term spanning every valid coordinate. A spatial
// field with no value never matches it, so it selects located documents only.
const WorldRange = "[-90,-90 TO 90,90]"

// Point is a reference point as supplied by the caller. Coordinates are kept
// verbatim; no range validation happens here.
type Point struct {
	Latitude  string
	Longitude string
}

// NewPoint creates a Point.
func NewPoint(latitude, longitude string) Point {
	return Point{Latitude: latitude, Longitude: longitude}
}

// Solr renders the point for the "pt" parameter: longitude first.
func (p Point) Solr() string {
	return p.Longitude + "," + p.Latitude
}

// GeofiltQuery returns the local-params filter restricting field to the radius around pt.
func GeofiltQuery(field string) string {
	return "{!geofilt sfield=" + field + "}"
}

// LocatedQuery returns the filter that keeps documents with a value in field.
func LocatedQuery(field string) string {
	return field + ":" + WorldRange
}

// DistanceSort is the sort term ordering by distance to pt, nearest first.
const DistanceSort = "geodist() asc"

// PrependDistanceSort makes distance the primary sort key, keeping current as secondary.
func PrependDistanceSort(current string) string {
	return DistanceSort + "," + current
}
