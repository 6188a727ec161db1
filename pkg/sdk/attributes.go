package solrgeo

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

// AttributeService manages attribute definitions used for field resolution.
type AttributeService struct {
	svc attributeUseCase
	obs *observer
}

// Upsert creates or updates an attribute. Returns true when it was created.
func (s *AttributeService) Upsert(
	ctx context.Context, class, identifier, datatype string,
) (attr Attribute, created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("attribute_upsert", start, err) }()

	a, created, err := s.svc.Upsert(ctx, class, identifier, datatype)
	if err != nil {
		return Attribute{}, false, fmt.Errorf("upsert attribute: %w", err)
	}
	return s.fromInternal(a), created, nil
}

// Get returns one attribute.
func (s *AttributeService) Get(ctx context.Context, class, identifier string) (attr Attribute, err error) {
	start := time.Now()
	defer func() { s.obs.observe("attribute_get", start, err) }()

	a, err := s.svc.Get(ctx, class, identifier)
	if err != nil {
		return Attribute{}, fmt.Errorf("get attribute: %w", err)
	}
	return s.fromInternal(a), nil
}

// List returns attributes sorted by logical id. An empty class lists all.
func (s *AttributeService) List(ctx context.Context, class string) (attrs []Attribute, err error) {
	start := time.Now()
	defer func() { s.obs.observe("attribute_list", start, err) }()

	items, err := s.svc.List(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	attrs = make([]Attribute, len(items))
	for i, a := range items {
		attrs[i] = s.fromInternal(a)
	}
	return attrs, nil
}

// Delete removes an attribute.
func (s *AttributeService) Delete(ctx context.Context, class, identifier string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("attribute_delete", start, err) }()

	if err = s.svc.Delete(ctx, class, identifier); err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	return nil
}

func (s *AttributeService) fromInternal(a schema.Attribute) Attribute {
	return Attribute{
		Class:      a.Class(),
		Identifier: a.Identifier(),
		Datatype:   a.Datatype(),
		FieldName:  s.svc.FieldName(a),
	}
}
