package chi

// ErrorCode is a machine-readable API error code.
type ErrorCode string

// API error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeAttributeNotFound ErrorCode = "attribute_not_found"
	ErrorCodeFieldUnresolved   ErrorCode = "field_unresolved"
	ErrorCodeFilterRejected    ErrorCode = "filter_rejected"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FilterSpec declares one extended attribute filter.
type FilterSpec struct {
	ID     string         `json:"id"`
	Params map[string]any `json:"params"`
}

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Query                   string       `json:"q"`
	Rows                    *int         `json:"rows,omitempty"`
	Start                   *int         `json:"start,omitempty"`
	Sort                    string       `json:"sort,omitempty"`
	Fields                  []string     `json:"fl,omitempty"`
	FilterQueries           []string     `json:"fq,omitempty"`
	ExtendedAttributeFilter []FilterSpec `json:"extended_attribute_filter,omitempty"`
}

// QueryWarning reports a filter skipped under the warn policy.
type QueryWarning struct {
	Filter  string `json:"filter"`
	Message string `json:"message"`
}

// QueryResponse carries the built SolR parameters.
type QueryResponse struct {
	Params      map[string]string `json:"params"`
	FilterQuery []string          `json:"fq"`
	QueryString string            `json:"query_string"`
	Warnings    []QueryWarning    `json:"warnings"`
}

// FilterListResponse lists registered filter ids.
type FilterListResponse struct {
	Items []string `json:"items"`
}

// FieldResolveResponse is the body of GET /v1/fields/resolve.
type FieldResolveResponse struct {
	Field     string `json:"field"`
	FieldName string `json:"field_name"`
}

// AttributeRequest is the body of PUT /v1/attributes/{class}/{attribute}.
type AttributeRequest struct {
	Datatype string `json:"datatype"`
}

// Attribute is an attribute schema entry.
type Attribute struct {
	Class      string `json:"class"`
	Identifier string `json:"identifier"`
	Datatype   string `json:"datatype"`
	LogicalID  string `json:"logical_id"`
	FieldName  string `json:"field_name,omitempty"`
}

// AttributeListResponse lists attributes.
type AttributeListResponse struct {
	Items   []Attribute `json:"items"`
	HasMore bool        `json:"has_more"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
