package schema

import (
	"strings"
	"testing"
)

func TestNewAttribute_Valid(t *testing.T) {
	a, err := NewAttribute("article", "location", "ezgmaplocation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.LogicalID() != "article/location" {
		t.Errorf("LogicalID() = %q", a.LogicalID())
	}
	if a.Class() != "article" || a.Identifier() != "location" || a.Datatype() != "ezgmaplocation" {
		t.Errorf("unexpected attribute: %+v", a)
	}
}

func TestNewAttribute_Invalid(t *testing.T) {
	tests := []struct {
		name                        string
		class, identifier, datatype string
		wantErr                     string
	}{
		{"empty class", "", "location", "ezstring", "class identifier"},
		{"upper class", "Article", "location", "ezstring", "class identifier"},
		{"slash attribute", "article", "a/b", "ezstring", "attribute identifier"},
		{"no datatype", "article", "location", "", "datatype is required"},
		{"too long", "article", strings.Repeat("a", 65), "ezstring", "attribute identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAttribute(tt.class, tt.identifier, tt.datatype)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	for _, s := range []string{"article", "geo_point", "a1"} {
		if !ValidIdentifier(s) {
			t.Errorf("ValidIdentifier(%q) = false", s)
		}
	}
	for _, s := range []string{"", "*", "[a-z]*", "Article", "a/b", strings.Repeat("a", 65)} {
		if ValidIdentifier(s) {
			t.Errorf("ValidIdentifier(%q) = true", s)
		}
	}
}

func TestParseLogicalID(t *testing.T) {
	class, id, err := ParseLogicalID("article/location")
	if err != nil || class != "article" || id != "location" {
		t.Errorf("ParseLogicalID = %q, %q, %v", class, id, err)
	}
	for _, bad := range []string{"location", "/location", "article/", "article/location/lat", ""} {
		if _, _, err := ParseLogicalID(bad); err == nil {
			t.Errorf("ParseLogicalID(%q) expected error", bad)
		}
	}
}

func TestDatatypeMap_Defaults(t *testing.T) {
	m, err := NewDatatypeMap(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := m.FieldType("ezgmaplocation")
	if !ok || ft != GeoPoint {
		t.Errorf("FieldType(ezgmaplocation) = %q, %v", ft, ok)
	}
	if _, ok := m.FieldType("ezunknown"); ok {
		t.Error("unknown datatype resolved without fallback")
	}
}

func TestDatatypeMap_OverridesAndFallback(t *testing.T) {
	m, err := NewDatatypeMap(map[string]string{"ezstring": "string", "myplace": "geopoint"}, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft, _ := m.FieldType("ezstring"); ft != String {
		t.Errorf("override ignored: %q", ft)
	}
	if ft, _ := m.FieldType("myplace"); ft != GeoPoint {
		t.Errorf("custom datatype = %q", ft)
	}
	if ft, ok := m.FieldType("ezunknown"); !ok || ft != Text {
		t.Errorf("fallback = %q, %v", ft, ok)
	}
}

func TestDatatypeMap_InvalidType(t *testing.T) {
	if _, err := NewDatatypeMap(map[string]string{"x": "blob"}, ""); err == nil {
		t.Error("expected error for unknown field type")
	}
	if _, err := NewDatatypeMap(nil, "blob"); err == nil {
		t.Error("expected error for unknown fallback")
	}
}

func TestAttributeFieldName(t *testing.T) {
	if got := AttributeFieldName("location", GeoPoint); got != "attr_location_gpt" {
		t.Errorf("AttributeFieldName() = %q", got)
	}
	if got := AttributeFieldName("title", Text); got != "attr_title_t" {
		t.Errorf("AttributeFieldName() = %q", got)
	}
}

func TestMetaFieldName(t *testing.T) {
	got, ok := MetaFieldName("published")
	if !ok || got != "meta_published_dt" {
		t.Errorf("MetaFieldName(published) = %q, %v", got, ok)
	}
	if _, ok := MetaFieldName("location"); ok {
		t.Error("location is not a meta field")
	}
}

func TestIsPhysicalFieldName(t *testing.T) {
	if !IsPhysicalFieldName("attr_location_gpt") || !IsPhysicalFieldName("meta_id_si") {
		t.Error("physical names not detected")
	}
	if IsPhysicalFieldName("article/location") {
		t.Error("logical id detected as physical")
	}
}

func TestFieldTypes_AllHaveSuffix(t *testing.T) {
	for _, ft := range FieldTypes() {
		if ft.Suffix() == "" {
			t.Errorf("%q has no suffix", ft)
		}
	}
	if FieldType("blob").IsValid() {
		t.Error("blob must be invalid")
	}
}
