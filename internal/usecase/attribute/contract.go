package attribute

import (
	"context"

	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

// Repository defines the storage contract for attribute definitions.
type Repository interface {
	Upsert(ctx context.Context, a schema.Attribute) (bool, error)
	Get(ctx context.Context, class, identifier string) (schema.Attribute, error)
	List(ctx context.Context, class string) ([]schema.Attribute, error)
	Delete(ctx context.Context, class, identifier string) error
}
