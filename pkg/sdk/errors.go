package solrgeo

import (
	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	queryuc "github.com/kailas-cloud/solrgeo/internal/usecase/query"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidSchema    = domain.ErrInvalidSchema
	ErrMissingParameter = extfilter.ErrMissingParameter
	ErrFieldResolution  = extfilter.ErrFieldResolution
	ErrUnknownFilter    = extfilter.ErrUnknownFilter
	ErrFilterRejected   = queryuc.ErrFilterRejected
)
