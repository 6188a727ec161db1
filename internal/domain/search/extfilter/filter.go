// Package extfilter defines extended attribute filters: named transforms that
// adjust outgoing SolR query parameters from a caller-supplied parameter block.
package extfilter

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/kailas-cloud/solrgeo/internal/domain/solr/params"
)

// Filter mutates query parameters according to its own parameter block.
// Implementations return the same *params.Params they were given. On error the
// parameters must be left as they were.
type Filter interface {
	ID() string
	Apply(ctx context.Context, qp *params.Params, fp Params) (*params.Params, error)
}

// Params is the immutable parameter block of one filter invocation.
// A key holding nil counts as absent.
type Params struct {
	values map[string]any
}

// NewParams copies m into a Params.
func NewParams(m map[string]any) Params {
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v
	}
	return Params{values: values}
}

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p.values[key]
	return ok && v != nil
}

// Get returns the raw value under key.
func (p Params) Get(key string) (any, bool) {
	if !p.Has(key) {
		return nil, false
	}
	return p.values[key], true
}

// String returns the value under key as a string ("" when absent).
func (p Params) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

// leadingNumber matches the decimal number a string starts with.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Float coerces the value under key to a float without failing. Strings yield
// their leading decimal number after leading whitespace ("1.5km" is 1.5).
// Absent, unparsable and non-finite values yield 0.
func (p Params) Float(key string) float64 {
	v, ok := p.Get(key)
	if !ok {
		return 0
	}

	var f float64
	if s, isString := v.(string); isString {
		m := leadingNumber.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
		if m == "" {
			return 0
		}
		f, _ = strconv.ParseFloat(m, 64) // out-of-range is rejected below as Inf
	} else {
		f = cast.ToFloat64(v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Len returns the number of present keys.
func (p Params) Len() int {
	n := 0
	for _, v := range p.values {
		if v != nil {
			n++
		}
	}
	return n
}

// Map returns a copy of the underlying values.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Spec is one entry of a request's extended attribute filter list.
type Spec struct {
	ID     string
	Params Params
}
