package schema

import "strings"

// metaFields maps meta field identifiers to their SolR types.
var metaFields = map[string]FieldType{
	"id":                       SInt,
	"guid":                     MString,
	"remote_id":                MString,
	"name":                     Text,
	"sort_name":                String,
	"published":                Date,
	"modified":                 Date,
	"class_identifier":         MString,
	"class_name":               Text,
	"contentclass_id":          SInt,
	"section_id":               SInt,
	"owner_id":                 SInt,
	"owner_name":               Text,
	"main_node_id":             SInt,
	"node_id":                  SInt,
	"path_string":              MString,
	"language_code":            MString,
	"main_url_alias":           MString,
	"object_states":            SInt,
	"is_invisible":             Boolean,
	"depth":                    SInt,
	"priority":                 SInt,
	"installation_id":          MString,
	"main_path_string":         MString,
	"main_parent_node_id":      SInt,
	"available_language_codes": MString,
}

// MetaFieldName returns the indexed name of a meta field, e.g. "meta_published_dt".
func MetaFieldName(identifier string) (string, bool) {
	t, ok := metaFields[identifier]
	if !ok {
		return "", false
	}
	return "meta_" + identifier + "_" + t.Suffix(), true
}

// IsPhysicalFieldName reports whether name already addresses an indexed field.
func IsPhysicalFieldName(name string) bool {
	return strings.HasPrefix(name, "attr_") || strings.HasPrefix(name, "meta_")
}
