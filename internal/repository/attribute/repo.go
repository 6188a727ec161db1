package attribute

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

// store is the consumer interface for attribute definitions (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/attribute.Repository and fieldname.AttributeReader.
type Repo struct {
	store  store
	prefix string
}

// New creates an attribute repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Upsert stores an attribute definition. Returns true when it did not exist before.
func (r *Repo) Upsert(ctx context.Context, a schema.Attribute) (bool, error) {
	key := r.key(a.Class(), a.Identifier())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	if err := r.store.HSet(ctx, key, attributeToHash(a)); err != nil {
		return false, fmt.Errorf("hset attribute %s: %w", a.LogicalID(), err)
	}
	return !exists, nil
}

// Get retrieves an attribute definition.
func (r *Repo) Get(ctx context.Context, class, identifier string) (schema.Attribute, error) {
	m, err := r.store.HGetAll(ctx, r.key(class, identifier))
	if err != nil {
		return schema.Attribute{}, fmt.Errorf("hgetall attribute %s/%s: %w", class, identifier, err)
	}
	if len(m) == 0 {
		return schema.Attribute{}, domain.ErrNotFound
	}
	return attributeFromHash(m)
}

// List returns attributes sorted by logical id. An empty class lists every class.
// class becomes part of a SCAN pattern, so it must be a plain identifier.
func (r *Repo) List(ctx context.Context, class string) ([]schema.Attribute, error) {
	pattern := r.prefix + "attr:*"
	if class != "" {
		if !schema.ValidIdentifier(class) {
			return nil, fmt.Errorf("%w: invalid class identifier %q", domain.ErrInvalidSchema, class)
		}
		pattern = r.prefix + "attr:" + class + "/*"
	}
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan attributes: %w", err)
	}
	if len(keys) == 0 {
		return []schema.Attribute{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi attributes: %w", err)
	}

	attrs := make([]schema.Attribute, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		a, err := attributeFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse attribute %s: %w", keys[i], err)
		}
		attrs = append(attrs, a)
	}

	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].LogicalID() < attrs[j].LogicalID()
	})
	return attrs, nil
}

// Delete removes an attribute definition.
func (r *Repo) Delete(ctx context.Context, class, identifier string) error {
	key := r.key(class, identifier)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del attribute %s/%s: %w", class, identifier, err)
	}
	return nil
}

// Key pattern: {prefix}attr:{class}/{identifier}
func (r *Repo) key(class, identifier string) string {
	return r.prefix + "attr:" + class + "/" + identifier
}
