package solrgeo

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/request"
	queryuc "github.com/kailas-cloud/solrgeo/internal/usecase/query"
)

// Build assembles SolR parameters for q and applies its extended filters.
func (c *Client) Build(ctx context.Context, q Query) (res QueryResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("build", start, err) }()

	req, err := toInternalRequest(q)
	if err != nil {
		return QueryResult{}, fmt.Errorf("build query: %w", err)
	}

	out, err := c.querySvc.Build(ctx, req)
	if err != nil {
		return QueryResult{}, fmt.Errorf("build query: %w", err)
	}
	return fromInternalResult(out), nil
}

// Filters returns the registered extended filter ids.
func (c *Client) Filters() []string {
	return c.querySvc.Filters()
}

// ResolveField returns the indexed SolR field name for a logical field id
// ("class/attribute", a meta field id or a physical name).
func (c *Client) ResolveField(ctx context.Context, id string) (name string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("resolve_field", start, err) }()

	name, err = c.resolver.ResolveFieldName(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve field: %w", err)
	}
	return name, nil
}

// QueryBuilder is a fluent builder for Client.Build.
type QueryBuilder struct {
	client *Client
	q      Query

	// Pending geodist filter, flushed by Do.
	geo *FilterSpec
}

// Q sets the query text.
func (b *QueryBuilder) Q(q string) *QueryBuilder {
	b.q.Q = q
	return b
}

// Rows sets the page size.
func (b *QueryBuilder) Rows(n int) *QueryBuilder {
	b.q.Rows = n
	return b
}

// Start sets the result offset.
func (b *QueryBuilder) Start(n int) *QueryBuilder {
	b.q.Start = n
	return b
}

// Sort sets the sort clause. Distance sorting added by Near comes first.
func (b *QueryBuilder) Sort(s string) *QueryBuilder {
	b.q.Sort = s
	return b
}

// Fields sets the returned field list.
func (b *QueryBuilder) Fields(fl ...string) *QueryBuilder {
	b.q.Fields = append(b.q.Fields, fl...)
	return b
}

// Where adds a plain filter query.
func (b *QueryBuilder) Where(fq string) *QueryBuilder {
	b.q.FilterQueries = append(b.q.FilterQueries, fq)
	return b
}

// Near sorts by distance from (lat, lon) on field and keeps located documents.
func (b *QueryBuilder) Near(field string, lat, lon float64) *QueryBuilder {
	b.flushGeo()
	f := Geodist(field, lat, lon)
	b.geo = &f
	return b
}

// Within restricts the preceding Near to documents within d of the point.
func (b *QueryBuilder) Within(d float64) *QueryBuilder {
	if b.geo != nil {
		b.geo.Params["d"] = d
	}
	return b
}

// Filter adds an extended attribute filter.
func (b *QueryBuilder) Filter(f FilterSpec) *QueryBuilder {
	b.flushGeo()
	b.q.Filters = append(b.q.Filters, f)
	return b
}

// Do builds the query.
func (b *QueryBuilder) Do(ctx context.Context) (QueryResult, error) {
	b.flushGeo()
	return b.client.Build(ctx, b.q)
}

func (b *QueryBuilder) flushGeo() {
	if b.geo != nil {
		b.q.Filters = append(b.q.Filters, *b.geo)
		b.geo = nil
	}
}

func toInternalRequest(q Query) (request.Request, error) {
	specs := make([]extfilter.Spec, len(q.Filters))
	for i, f := range q.Filters {
		specs[i] = extfilter.Spec{ID: f.ID, Params: extfilter.NewParams(f.Params)}
	}
	req, err := request.New(q.Q, q.Rows, q.Start, q.Sort, q.Fields, q.FilterQueries, specs)
	if err != nil {
		return request.Request{}, fmt.Errorf("invalid query: %w", err)
	}
	return req, nil
}

func fromInternalResult(r queryuc.Result) QueryResult {
	warnings := make([]Warning, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = Warning{Filter: w.Filter, Message: w.Message}
	}
	return QueryResult{
		Params:        r.Params.Scalars(),
		FilterQueries: r.Params.FilterQueries(),
		Values:        r.Params.Values(),
		QueryString:   r.QueryString(),
		Warnings:      warnings,
	}
}
