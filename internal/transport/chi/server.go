package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrgeo/internal/domain"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/request"
	attributeuc "github.com/kailas-cloud/solrgeo/internal/usecase/attribute"
	"github.com/kailas-cloud/solrgeo/internal/usecase/fieldname"
	healthuc "github.com/kailas-cloud/solrgeo/internal/usecase/health"
	queryuc "github.com/kailas-cloud/solrgeo/internal/usecase/query"
	"github.com/kailas-cloud/solrgeo/internal/version"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the solrgeo HTTP API.
type Server struct {
	query         *queryuc.Service
	attributes    *attributeuc.Service
	fields        *fieldname.Resolver
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	query *queryuc.Service,
	attributes *attributeuc.Service,
	fields *fieldname.Resolver,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		query:      query,
		attributes: attributes,
		fields:     fields,
		health:     health,
		logger:     logger,
	}
	// Order matters: ErrFilterRejected wraps the filter's own error.
	s.errorHandlers = []errorHandler{
		sentinelHandler(queryuc.ErrFilterRejected, http.StatusUnprocessableEntity, ErrorCodeFilterRejected),
		sentinelHandler(extfilter.ErrFieldResolution, http.StatusUnprocessableEntity, ErrorCodeFieldUnresolved),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeAttributeNotFound),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", s.BuildQuery)
		r.Get("/filters", s.ListFilters)
		r.Get("/fields/resolve", s.ResolveField)

		r.Get("/attributes", s.ListAttributes)
		r.Put("/attributes/{class}/{attribute}", s.UpsertAttribute)
		r.Get("/attributes/{class}/{attribute}", s.GetAttribute)
		r.Delete("/attributes/{class}/{attribute}", s.DeleteAttribute)
	})
}

// BuildQuery handles POST /v1/query.
func (s *Server) BuildQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchReq, err := searchRequestFromAPI(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	res, err := s.query.Build(r.Context(), searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	warnings := make([]QueryWarning, len(res.Warnings))
	for i, wn := range res.Warnings {
		warnings[i] = QueryWarning{Filter: wn.Filter, Message: wn.Message}
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Params:      res.Params.Scalars(),
		FilterQuery: res.Params.FilterQueries(),
		QueryString: res.QueryString(),
		Warnings:    warnings,
	})
}

// ListFilters handles GET /v1/filters.
func (s *Server) ListFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, FilterListResponse{Items: s.query.Filters()})
}

// ResolveField handles GET /v1/fields/resolve.
func (s *Server) ResolveField(w http.ResponseWriter, r *http.Request) {
	var field string
	if err := runtime.BindQueryParameter("form", true, true, "field", r.URL.Query(), &field); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter field: "+err.Error())
		return
	}

	name, err := s.fields.ResolveFieldName(r.Context(), field)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FieldResolveResponse{Field: field, FieldName: name})
}

// ListAttributes handles GET /v1/attributes.
func (s *Server) ListAttributes(w http.ResponseWriter, r *http.Request) {
	var (
		class string
		limit *int
	)
	if err := runtime.BindQueryParameter("form", true, false, "class", r.URL.Query(), &class); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter class: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}

	n := defaultListLimit
	if limit != nil {
		n = *limit
	}
	if n <= 0 || n > maxListLimit {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be between 1 and 1000")
		return
	}

	attrs, err := s.attributes.List(r.Context(), class)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	hasMore := len(attrs) > n
	if hasMore {
		attrs = attrs[:n]
	}
	items := make([]Attribute, len(attrs))
	for i, a := range attrs {
		items[i] = s.attributeToAPI(a)
	}

	writeJSON(w, http.StatusOK, AttributeListResponse{Items: items, HasMore: hasMore})
}

// UpsertAttribute handles PUT /v1/attributes/{class}/{attribute}.
func (s *Server) UpsertAttribute(w http.ResponseWriter, r *http.Request) {
	var req AttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	a, created, err := s.attributes.Upsert(r.Context(), chi.URLParam(r, "class"), chi.URLParam(r, "attribute"), req.Datatype)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, s.attributeToAPI(a))
}

// GetAttribute handles GET /v1/attributes/{class}/{attribute}.
func (s *Server) GetAttribute(w http.ResponseWriter, r *http.Request) {
	a, err := s.attributes.Get(r.Context(), chi.URLParam(r, "class"), chi.URLParam(r, "attribute"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.attributeToAPI(a))
}

// DeleteAttribute handles DELETE /v1/attributes/{class}/{attribute}.
func (s *Server) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	if err := s.attributes.Delete(r.Context(), chi.URLParam(r, "class"), chi.URLParam(r, "attribute")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.String(),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Filter parameter errors are caller mistakes and are reported verbatim.
func safeDomainMessage(err error) string {
	var missing *extfilter.MissingParameterError
	if errors.As(err, &missing) {
		return missing.Error()
	}

	sentinels := []error{
		queryuc.ErrFilterRejected,
		extfilter.ErrFieldResolution,
		extfilter.ErrUnknownFilter,
		domain.ErrNotFound,
		domain.ErrInvalidSchema,
		domain.ErrInvalidRequest,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func (s *Server) attributeToAPI(a schema.Attribute) Attribute {
	return Attribute{
		Class:      a.Class(),
		Identifier: a.Identifier(),
		Datatype:   a.Datatype(),
		LogicalID:  a.LogicalID(),
		FieldName:  s.attributes.FieldName(a),
	}
}

func searchRequestFromAPI(req QueryRequest) (request.Request, error) {
	specs := make([]extfilter.Spec, len(req.ExtendedAttributeFilter))
	for i, f := range req.ExtendedAttributeFilter {
		specs[i] = extfilter.Spec{ID: f.ID, Params: extfilter.NewParams(f.Params)}
	}
	return request.New( //nolint:wrapcheck // validation message goes to the client as is
		req.Query,
		derefInt(req.Rows),
		derefInt(req.Start),
		req.Sort,
		req.Fields,
		req.FilterQueries,
		specs,
	)
}

func derefInt(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}
