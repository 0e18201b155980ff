package dto

import (
	"net/http"
	"time"
)

// Machine-readable error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	ErrCodeUnavailable    = "service_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          ErrCodeInvalidRequest,
	http.StatusUnprocessableEntity: ErrCodeInvalidRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusTooManyRequests:     ErrCodeRateLimit,
	http.StatusRequestTimeout:      ErrCodeTimeout,
	http.StatusGatewayTimeout:      ErrCodeTimeout,
	http.StatusServiceUnavailable:  ErrCodeUnavailable,
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted statuses
// are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// SuccessResponse is the envelope of every 2xx body.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-03-01T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope of every error body. Details maps request
// fields to the rule they broke.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"quantity: must be a positive integer"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-03-01T10:00:00Z"`
} // @name ErrorResponse

// NewError returns an ErrorResponse stamped with the current UTC time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().UTC()}
}

func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches per-field messages. An empty map leaves Details unset.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	if len(details) > 0 {
		e.Details = details
	}
	return e
}
