package attribute

import (
	"fmt"

	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

const (
	fieldClass      = "class"
	fieldIdentifier = "identifier"
	fieldDatatype   = "datatype"
)

func attributeToHash(a schema.Attribute) map[string]string {
	return map[string]string{
		fieldClass:      a.Class(),
		fieldIdentifier: a.Identifier(),
		fieldDatatype:   a.Datatype(),
	}
}

func attributeFromHash(m map[string]string) (schema.Attribute, error) {
	class, identifier, datatype := m[fieldClass], m[fieldIdentifier], m[fieldDatatype]
	if class == "" || identifier == "" || datatype == "" {
		return schema.Attribute{}, fmt.Errorf("incomplete attribute hash: %v", m)
	}
	return schema.ReconstructAttribute(class, identifier, datatype), nil
}
