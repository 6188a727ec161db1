package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength   = 4096
	DefaultQuery     = "*:*"
	DefaultRows      = 10
	MaxRows          = 1000
	MaxFilterQueries = 32
	MaxFilters       = 16
)

// Request is a validated search request.
type Request struct {
	query         string
	rows          int
	start         int
	sort          string
	fields        []string
	filterQueries []string
	filters       []extfilter.Spec
}

// New validates and normalizes search parameters.
// Defaults: q=*:*, rows=10. Rows above MaxRows are clamped.
func New(
	query string,
	rows, start int,
	sort string,
	fields, filterQueries []string,
	filters []extfilter.Spec,
) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if rows < 0 {
		return Request{}, fmt.Errorf("%w: rows must not be negative", domain.ErrInvalidRequest)
	}
	if rows == 0 {
		rows = DefaultRows
	}
	if rows > MaxRows {
		rows = MaxRows
	}
	if start < 0 {
		return Request{}, fmt.Errorf("%w: start must not be negative", domain.ErrInvalidRequest)
	}
	if len(filterQueries) > MaxFilterQueries {
		return Request{}, fmt.Errorf("%w: too many filter queries (max %d)", domain.ErrInvalidRequest, MaxFilterQueries)
	}
	for i, fq := range filterQueries {
		if strings.TrimSpace(fq) == "" {
			return Request{}, fmt.Errorf("%w: filter query %d is empty", domain.ErrInvalidRequest, i)
		}
	}
	if len(filters) > MaxFilters {
		return Request{}, fmt.Errorf("%w: too many extended attribute filters (max %d)", domain.ErrInvalidRequest, MaxFilters)
	}
	for i, f := range filters {
		if f.ID == "" {
			return Request{}, fmt.Errorf("%w: extended attribute filter %d: id is required", domain.ErrInvalidRequest, i)
		}
	}

	return Request{
		query:         query,
		rows:          rows,
		start:         start,
		sort:          strings.TrimSpace(sort),
		fields:        compact(fields),
		filterQueries: filterQueries,
		filters:       filters,
	}, nil
}

// Query returns the SolR query string.
func (r *Request) Query() string { return r.query }

// Rows returns the page size.
func (r *Request) Rows() int { return r.rows }

// Start returns the result offset.
func (r *Request) Start() int { return r.start }

// Sort returns the caller's sort clause ("" when none).
func (r *Request) Sort() string { return r.sort }

// Fields returns the requested field list.
func (r *Request) Fields() []string { return r.fields }

// FilterQueries returns plain filter queries, applied before extended filters.
func (r *Request) FilterQueries() []string { return r.filterQueries }

// Filters returns extended attribute filters in declaration order.
func (r *Request) Filters() []extfilter.Spec { return r.filters }

func compact(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
