package attribute

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

// Service handles attribute definition CRUD.
type Service struct {
	repo      Repository
	datatypes schema.DatatypeMap
	logger    *zap.Logger
}

// New creates an attribute service.
func New(repo Repository, datatypes schema.DatatypeMap, logger *zap.Logger) *Service {
	return &Service{repo: repo, datatypes: datatypes, logger: logger}
}

// Upsert validates and stores an attribute. Returns true when it was created.
// The datatype must map to a SolR field type, otherwise the attribute could never be resolved.
func (s *Service) Upsert(ctx context.Context, class, identifier, datatype string) (schema.Attribute, bool, error) {
	a, err := s.validate(class, identifier, datatype)
	if err != nil {
		return schema.Attribute{}, false, err
	}

	created, err := s.repo.Upsert(ctx, a)
	if err != nil {
		return schema.Attribute{}, false, fmt.Errorf("upsert attribute: %w", err)
	}
	return a, created, nil
}

func (s *Service) validate(class, identifier, datatype string) (schema.Attribute, error) {
	a, err := schema.NewAttribute(class, identifier, datatype)
	if err != nil {
		return schema.Attribute{}, fmt.Errorf("validate attribute: %w: %w", domain.ErrInvalidSchema, err)
	}
	if _, ok := s.datatypes.FieldType(datatype); !ok {
		return schema.Attribute{}, fmt.Errorf(
			"validate attribute: %w: datatype %q has no field type", domain.ErrInvalidSchema, datatype)
	}
	return a, nil
}

// Get retrieves an attribute definition.
func (s *Service) Get(ctx context.Context, class, identifier string) (schema.Attribute, error) {
	a, err := s.repo.Get(ctx, class, identifier)
	if err != nil {
		return schema.Attribute{}, fmt.Errorf("get attribute: %w", err)
	}
	return a, nil
}

// List returns attribute definitions, optionally restricted to one class.
func (s *Service) List(ctx context.Context, class string) ([]schema.Attribute, error) {
	attrs, err := s.repo.List(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return attrs, nil
}

// Delete removes an attribute definition.
func (s *Service) Delete(ctx context.Context, class, identifier string) error {
	if err := s.repo.Delete(ctx, class, identifier); err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	return nil
}

// FieldName returns the indexed SolR field name of a, or "" when its datatype is unmapped.
func (s *Service) FieldName(a schema.Attribute) string {
	t, ok := s.datatypes.FieldType(a.Datatype())
	if !ok {
		return ""
	}
	return schema.AttributeFieldName(a.Identifier(), t)
}

// SeedItem is one attribute declared in configuration.
type SeedItem struct {
	Class      string
	Identifier string
	Datatype   string
}

// seedConcurrency bounds parallel store writes during Seed.
const seedConcurrency = 8

// Seed upserts configured attributes. Every item is validated before the
// first write, so an invalid declaration leaves the store untouched.
func (s *Service) Seed(ctx context.Context, items []SeedItem) error {
	for _, it := range items {
		if _, err := s.validate(it.Class, it.Identifier, it.Datatype); err != nil {
			return fmt.Errorf("seed %s/%s: %w", it.Class, it.Identifier, err)
		}
	}

	var created atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, it := range items {
		g.Go(func() error {
			_, isNew, err := s.Upsert(gctx, it.Class, it.Identifier, it.Datatype)
			if err != nil {
				return fmt.Errorf("seed %s/%s: %w", it.Class, it.Identifier, err)
			}
			if isNew {
				created.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck // already wrapped per item
	}

	s.logger.Info("Attribute schema seeded",
		zap.Int("declared", len(items)),
		zap.Int64("created", created.Load()),
	)
	return nil
}
