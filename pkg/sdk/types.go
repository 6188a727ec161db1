package solrgeo

import "net/url"

// FilterSpec declares one extended attribute filter and its parameters.
type FilterSpec struct {
	ID     string
	Params map[string]any
}

// Geodist returns a geodist filter sorting by distance to (lat, lon).
// Only documents with a value in field are kept.
func Geodist(field string, lat, lon any) FilterSpec {
	return FilterSpec{
		ID: "geodist",
		Params: map[string]any{
			"field":     field,
			"latitude":  lat,
			"longitude": lon,
		},
	}
}

// GeodistWithin is Geodist restricted to documents within d of the point.
func GeodistWithin(field string, lat, lon, d any) FilterSpec {
	f := Geodist(field, lat, lon)
	f.Params["d"] = d
	return f
}

// Query describes a SolR search.
type Query struct {
	Q             string // default "*:*"
	Rows          int    // default 10, max 1000
	Start         int
	Sort          string
	Fields        []string
	FilterQueries []string
	Filters       []FilterSpec
}

// Warning reports an extended filter that failed and was skipped.
type Warning struct {
	Filter  string
	Message string
}

// QueryResult holds the built SolR parameters.
type QueryResult struct {
	Params        map[string]string // scalar params, fq excluded
	FilterQueries []string
	Values        url.Values
	QueryString   string
	Warnings      []Warning
}

// Attribute is an attribute definition with its indexed field name.
type Attribute struct {
	Class      string
	Identifier string
	Datatype   string
	FieldName  string // empty when the datatype has no SolR type
}

// LogicalID returns "class/identifier".
func (a Attribute) LogicalID() string {
	return a.Class + "/" + a.Identifier
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}
