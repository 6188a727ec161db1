// Package query assembles SolR query parameters from search requests.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/request"
	"github.com/kailas-cloud/solrgeo/internal/domain/solr/params"
	"github.com/kailas-cloud/solrgeo/internal/logger"
)

// ErrFilterRejected is returned in reject mode when an extended filter fails.
var ErrFilterRejected = errors.New("extended attribute filter rejected")

// Policy controls what happens when an extended filter fails.
type Policy string

// Error policies.
const (
	PolicyWarn   Policy = "warn"
	PolicyReject Policy = "reject"
)

// ParsePolicy parses a policy name. Empty means PolicyWarn.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyWarn:
		return PolicyWarn, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown filter error policy %q", s)
	}
}

// Warning describes a filter that failed and was skipped.
type Warning struct {
	Filter  string
	Message string
}

// Result is the outcome of Build.
type Result struct {
	Params   *params.Params
	Warnings []Warning
}

// QueryString returns the URL-encoded SolR query string.
func (r Result) QueryString() string {
	if r.Params == nil {
		return ""
	}
	return r.Params.Encode()
}

// Service builds SolR query parameters.
type Service struct {
	filters FilterApplier
	policy  Policy
	applied *prometheus.CounterVec
	logger  *zap.Logger
}

// New creates a query service.
// applied is a counter vec with labels "filter" and "result" ("applied"/"failed"), may be nil.
func New(filters FilterApplier, policy Policy, applied *prometheus.CounterVec, logger *zap.Logger) *Service {
	if policy == "" {
		policy = PolicyWarn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{filters: filters, policy: policy, applied: applied, logger: logger}
}

// Policy returns the configured error policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// Filters returns the registered extended filter ids.
func (s *Service) Filters() []string {
	return s.filters.IDs()
}

// Build assembles params for req and runs its extended filters.
func (s *Service) Build(ctx context.Context, req request.Request) (Result, error) {
	qp := params.New()
	qp.Set(params.Query, req.Query())
	qp.Set(params.Rows, req.Rows())
	qp.Set(params.Start, req.Start())
	qp.Set(params.Writer, "json")
	if req.Sort() != "" {
		qp.Set(params.Sort, req.Sort())
	}
	if fl := req.Fields(); len(fl) > 0 {
		qp.Set(params.FieldList, strings.Join(fl, ","))
	}
	for _, fq := range req.FilterQueries() {
		qp.AddFilterQuery(fq)
	}

	specs := req.Filters()
	if len(specs) == 0 {
		return Result{Params: qp}, nil
	}

	log := logger.FromContextOr(ctx, s.logger)
	var warnings []Warning
	failed := make(map[string]int)

	onError := func(spec extfilter.Spec, err error) error {
		failed[spec.ID]++
		if s.policy == PolicyReject {
			return fmt.Errorf("%w: %w", ErrFilterRejected, err)
		}
		log.Warn("Extended attribute filter failed",
			zap.String("component", spec.ID),
			zap.Error(err),
		)
		warnings = append(warnings, Warning{Filter: spec.ID, Message: err.Error()})
		return nil
	}

	_, err := s.filters.ApplyAll(ctx, qp, specs, onError)
	s.record(specs, failed, err != nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Params: qp, Warnings: warnings}, nil
}

// record counts filter outcomes. After an abort only failures are counted.
func (s *Service) record(specs []extfilter.Spec, failed map[string]int, aborted bool) {
	if s.applied == nil {
		return
	}
	for id, n := range failed {
		s.applied.WithLabelValues(id, "failed").Add(float64(n))
	}
	if aborted {
		return
	}
	total := make(map[string]int, len(specs))
	for _, spec := range specs {
		total[spec.ID]++
	}
	for id, n := range total {
		if ok := n - failed[id]; ok > 0 {
			s.applied.WithLabelValues(id, "applied").Add(float64(ok))
		}
	}
}
