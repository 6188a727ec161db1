// Package params holds the outgoing SolR query parameters of a single search request.
package params

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Well-known SolR parameter names.
const (
	Query        = "q"
	Rows         = "rows"
	Start        = "start"
	Sort         = "sort"
	FieldList    = "fl"
	Writer       = "wt"
	FilterQuery  = "fq"
	SpatialField = "sfield"
	Point        = "pt"
	Distance     = "d"
)

// Params is an ordered mapping of scalar SolR parameters plus the ordered
// filter query list. Scalars keep the position of their first Set.
// Not safe for concurrent mutation.
type Params struct {
	names  []string
	values map[string]any
	fq     []string
}

// New creates an empty parameter set.
func New() *Params {
	return &Params{values: make(map[string]any)}
}

// Set stores a scalar value. Supported values are strings, integers and floats.
// Setting "fq" appends to the filter query list instead.
func (p *Params) Set(name string, value any) {
	if name == FilterQuery {
		p.AddFilterQuery(cast.ToString(value))
		return
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the scalar value stored under name.
func (p *Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// String returns the scalar value under name rendered as a string ("" if unset).
func (p *Params) String(name string) string {
	v, ok := p.values[name]
	if !ok {
		return ""
	}
	return formatValue(v)
}

// Has reports whether a scalar is set under name.
func (p *Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Sort returns the current sort clause, "" when unset.
func (p *Params) Sort() string { return p.String(Sort) }

// AddFilterQuery appends a filter query.
func (p *Params) AddFilterQuery(fq string) {
	p.fq = append(p.fq, fq)
}

// FilterQueries returns a copy of the filter queries in append order.
func (p *Params) FilterQueries() []string {
	out := make([]string, len(p.fq))
	copy(out, p.fq)
	return out
}

// Names returns scalar parameter names in insertion order.
func (p *Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of scalar parameters plus filter queries.
func (p *Params) Len() int { return len(p.names) + len(p.fq) }

// Clone returns a deep copy.
func (p *Params) Clone() *Params {
	c := &Params{
		names:  append([]string(nil), p.names...),
		values: make(map[string]any, len(p.values)),
		fq:     append([]string(nil), p.fq...),
	}
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Scalars returns scalar parameters rendered as strings.
func (p *Params) Scalars() map[string]string {
	out := make(map[string]string, len(p.names))
	for _, n := range p.names {
		out[n] = formatValue(p.values[n])
	}
	return out
}

// Values converts the parameters to url.Values.
func (p *Params) Values() url.Values {
	v := make(url.Values, len(p.names)+1)
	for _, n := range p.names {
		v.Set(n, formatValue(p.values[n]))
	}
	for _, fq := range p.fq {
		v.Add(FilterQuery, fq)
	}
	return v
}

// Encode renders the parameters as an HTTP query string. Scalars come first in
// insertion order, followed by one fq pair per filter query in append order.
func (p *Params) Encode() string {
	var sb strings.Builder
	write := func(k, v string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	for _, n := range p.names {
		write(n, formatValue(p.values[n]))
	}
	for _, fq := range p.fq {
		write(FilterQuery, fq)
	}
	return sb.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return cast.ToString(v)
	}
}
