package models

import "time"

// CreatedResponse is the body of a successful POST /api/vehicles call.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// SuccessResponse is the generic success marker returned by mutating
// endpoints that have no other payload (PUT, DELETE, POST /api/contact).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginResponse is the body of a successful POST /api/admin/login call.
type LoginResponse struct {
	Success   bool      `json:"success"`
	CSRFToken string    `json:"csrfToken"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse is the body of GET /api/admin/session.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// CSRFResponse is the body of GET /api/admin/csrf-token.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// ErrorResponse is the generic error body. Fields is populated only for
// validation failures, listing every rejected field so the client can show
// all problems at once.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError describes one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error codes carried in ErrorResponse.Code. CodeCSRFInvalid is load-bearing:
// the admin client refreshes its token and retries exactly once when it sees it.
const (
	CodeValidation  = "validation_error"
	CodeCSRFInvalid = "csrf_invalid"
	CodeRateLimited = "rate_limited"
	CodeNotFound    = "not_found"
	CodeUpload      = "upload_failed"
)
