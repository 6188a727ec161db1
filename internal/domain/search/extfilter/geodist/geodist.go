// Package geodist implements the "geodist" extended attribute filter: it sorts
// results by distance to a reference point and optionally restricts them to a
// radius, delegating the distance math to SolR's spatial functions.
//
// Filter parameters:
//   - field:     logical id of the geopoint attribute (e.g. "article/location")
//   - latitude:  reference point latitude
//   - longitude: reference point longitude
//   - d:         optional radius, coerced leniently (unparsable values become 0);
//     without it only located documents are kept
package geodist

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/solrgeo/internal/domain/geo"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/solr/params"
)

// ID is the registry identifier of the filter.
const ID = "geodist"

// Filter parameter keys.
const (
	ParamField     = "field"
	ParamLatitude  = "latitude"
	ParamLongitude = "longitude"
	ParamDistance  = "d"
)

// FieldResolver maps a logical field id to the indexed SolR field name.
type FieldResolver interface {
	ResolveFieldName(ctx context.Context, logicalID string) (string, error)
}

// Filter is the geodist extended attribute filter.
type Filter struct {
	fields FieldResolver
}

var _ extfilter.Filter = (*Filter)(nil)

// New creates the filter.
func New(fields FieldResolver) *Filter {
	return &Filter{fields: fields}
}

// ID returns "geodist".
func (f *Filter) ID() string { return ID }

// Apply adds sfield, pt, a distance sort and a spatial fq to qp.
// Every check runs before the first write, so qp is untouched on error.
func (f *Filter) Apply(ctx context.Context, qp *params.Params, fp extfilter.Params) (*params.Params, error) {
	for _, key := range []string{ParamField, ParamLatitude, ParamLongitude} {
		if !fp.Has(key) {
			return qp, &extfilter.MissingParameterError{Name: key}
		}
	}

	fieldName, err := f.fields.ResolveFieldName(ctx, fp.String(ParamField))
	if err != nil {
		if !errors.Is(err, extfilter.ErrFieldResolution) {
			err = fmt.Errorf("%w: %w", extfilter.ErrFieldResolution, err)
		}
		return qp, err
	}

	pt := geo.NewPoint(fp.String(ParamLatitude), fp.String(ParamLongitude))

	qp.Set(params.SpatialField, fieldName)
	qp.Set(params.Point, pt.Solr())
	qp.Set(params.Sort, geo.PrependDistanceSort(qp.Sort()))

	if fp.Has(ParamDistance) {
		qp.Set(params.Distance, fp.Float(ParamDistance))
		qp.AddFilterQuery(geo.GeofiltQuery(fieldName))
	} else {
		qp.AddFilterQuery(geo.LocatedQuery(fieldName))
	}

	return qp, nil
}
