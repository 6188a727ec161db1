// Package schema describes the content attributes a search index knows about
// and how their datatypes map onto SolR dynamic fields.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern matches content class and attribute identifiers.
var identifierPattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// ValidIdentifier reports whether s is a well-formed class or attribute identifier.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Attribute is an immutable content class attribute definition.
type Attribute struct {
	class      string
	identifier string
	datatype   string
}

// NewAttribute validates and creates an Attribute.
func NewAttribute(class, identifier, datatype string) (Attribute, error) {
	if !ValidIdentifier(class) {
		return Attribute{}, fmt.Errorf("invalid class identifier %q", class)
	}
	if !ValidIdentifier(identifier) {
		return Attribute{}, fmt.Errorf("invalid attribute identifier %q", identifier)
	}
	if datatype == "" {
		return Attribute{}, fmt.Errorf("datatype is required for %s/%s", class, identifier)
	}
	return Attribute{class: class, identifier: identifier, datatype: datatype}, nil
}

// ReconstructAttribute creates an Attribute without validation (storage hydration).
func ReconstructAttribute(class, identifier, datatype string) Attribute {
	return Attribute{class: class, identifier: identifier, datatype: datatype}
}

// Class returns the content class identifier.
func (a Attribute) Class() string { return a.class }

// Identifier returns the attribute identifier.
func (a Attribute) Identifier() string { return a.identifier }

// Datatype returns the CMS datatype string.
func (a Attribute) Datatype() string { return a.datatype }

// LogicalID returns "class/attribute".
func (a Attribute) LogicalID() string { return a.class + "/" + a.identifier }

// ParseLogicalID splits "class/attribute". Sub-attribute ids are rejected.
func ParseLogicalID(id string) (class, identifier string, err error) {
	class, identifier, ok := strings.Cut(id, "/")
	if !ok || class == "" || identifier == "" || strings.Contains(identifier, "/") {
		return "", "", fmt.Errorf("logical field id %q is not class/attribute", id)
	}
	return class, identifier, nil
}
