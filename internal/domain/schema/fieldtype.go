package schema

import (
	"fmt"
	"sort"
)

// FieldType is a SolR field type used for indexed attributes.
type FieldType string

// SolR field types and their dynamic-field suffixes.
const (
	GeoPoint FieldType = "geopoint"
	Text     FieldType = "text"
	String   FieldType = "string"
	Keyword  FieldType = "keyword"
	Int      FieldType = "int"
	SInt     FieldType = "sint"
	Long     FieldType = "long"
	Float    FieldType = "float"
	Double   FieldType = "double"
	Date     FieldType = "date"
	Boolean  FieldType = "boolean"
	MString  FieldType = "mstring"
)

var suffixes = map[FieldType]string{
	GeoPoint: "gpt",
	Text:     "t",
	String:   "s",
	Keyword:  "k",
	Int:      "i",
	SInt:     "si",
	Long:     "l",
	Float:    "f",
	Double:   "d",
	Date:     "dt",
	Boolean:  "b",
	MString:  "ms",
}

// Suffix returns the dynamic-field suffix of the type.
func (t FieldType) Suffix() string { return suffixes[t] }

// IsValid reports whether t is a known field type.
func (t FieldType) IsValid() bool {
	_, ok := suffixes[t]
	return ok
}

// FieldTypes returns every known field type, sorted.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, len(suffixes))
	for t := range suffixes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultDatatypes maps CMS datatypes to SolR field types. Unlisted datatypes
// fall back to the map's default type.
func DefaultDatatypes() map[string]FieldType {
	return map[string]FieldType{
		"ezgmaplocation":   GeoPoint,
		"ezstring":         Text,
		"eztext":           Text,
		"ezxmltext":        Text,
		"ezkeyword":        Keyword,
		"ezinteger":        SInt,
		"ezfloat":          Float,
		"ezprice":          Float,
		"ezdate":           Date,
		"ezdatetime":       Date,
		"ezboolean":        Boolean,
		"ezobjectrelation": Int,
		"ezcountry":        String,
		"ezselection":      String,
		"ezemail":          String,
		"ezurl":            String,
	}
}

// DatatypeMap resolves a datatype to its SolR field type.
type DatatypeMap struct {
	types    map[string]FieldType
	fallback FieldType
}

// NewDatatypeMap builds a map from the defaults, overridden by overrides.
// fallback may be empty to make unknown datatypes an error.
func NewDatatypeMap(overrides map[string]string, fallback string) (DatatypeMap, error) {
	types := DefaultDatatypes()
	for dt, ft := range overrides {
		t := FieldType(ft)
		if !t.IsValid() {
			return DatatypeMap{}, fmt.Errorf("datatype %q: unknown field type %q", dt, ft)
		}
		types[dt] = t
	}
	fb := FieldType(fallback)
	if fb != "" && !fb.IsValid() {
		return DatatypeMap{}, fmt.Errorf("unknown fallback field type %q", fallback)
	}
	return DatatypeMap{types: types, fallback: fb}, nil
}

// FieldType returns the SolR type for datatype.
func (m DatatypeMap) FieldType(datatype string) (FieldType, bool) {
	if t, ok := m.types[datatype]; ok {
		return t, true
	}
	if m.fallback != "" {
		return m.fallback, true
	}
	return "", false
}

// AttributeFieldName returns "attr_<identifier>_<suffix>".
func AttributeFieldName(identifier string, t FieldType) string {
	return "attr_" + identifier + "_" + t.Suffix()
}
