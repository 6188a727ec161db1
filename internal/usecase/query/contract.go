package query

import (
	"context"

	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/solr/params"
)

// FilterApplier runs extended attribute filters over a params bag.
type FilterApplier interface {
	ApplyAll(ctx context.Context, qp *params.Params, specs []extfilter.Spec, onError extfilter.ErrorHandler) (*params.Params, error)
	IDs() []string
}
