// Package fieldname maps logical field ids to indexed SolR field names.
package fieldname

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
)

// Resolver resolves "class/attribute", meta field ids and physical names.
type Resolver struct {
	attrs     AttributeReader
	datatypes schema.DatatypeMap
	total     *prometheus.CounterVec
}

// New creates a Resolver.
// total is a counter vec with label "result" ("attribute"/"meta"/"physical"/"error"), may be nil.
func New(attrs AttributeReader, datatypes schema.DatatypeMap, total *prometheus.CounterVec) *Resolver {
	return &Resolver{attrs: attrs, datatypes: datatypes, total: total}
}

// ResolveFieldName returns the indexed field name for logicalID.
// Every failure wraps extfilter.ErrFieldResolution.
func (r *Resolver) ResolveFieldName(ctx context.Context, logicalID string) (string, error) {
	name, kind, err := r.resolve(ctx, logicalID)
	if err != nil {
		r.inc("error")
		return "", fmt.Errorf("%w: %w", extfilter.ErrFieldResolution, err)
	}
	r.inc(kind)
	return name, nil
}

func (r *Resolver) resolve(ctx context.Context, id string) (name, kind string, err error) {
	if id == "" {
		return "", "", errors.New("empty field id")
	}
	if schema.IsPhysicalFieldName(id) {
		return id, "physical", nil
	}
	if name, ok := schema.MetaFieldName(id); ok {
		return name, "meta", nil
	}

	class, identifier, err := schema.ParseLogicalID(id)
	if err != nil {
		return "", "", err
	}

	attr, err := r.attrs.Get(ctx, class, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("unknown attribute %q", id)
		}
		return "", "", fmt.Errorf("get attribute %q: %w", id, err)
	}

	ft, ok := r.datatypes.FieldType(attr.Datatype())
	if !ok {
		return "", "", fmt.Errorf("attribute %q: no field type for datatype %q", id, attr.Datatype())
	}
	return schema.AttributeFieldName(attr.Identifier(), ft), "attribute", nil
}

func (r *Resolver) inc(result string) {
	if r.total != nil {
		r.total.WithLabelValues(result).Inc()
	}
}
