package fieldname

import (
	"context"

	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
)

// AttributeReader reads attribute definitions.
type AttributeReader interface {
	Get(ctx context.Context, class, identifier string) (schema.Attribute, error)
}
