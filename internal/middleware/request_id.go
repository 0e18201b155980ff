// Package middleware holds the gin middleware of the flock service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextKey names values stored on the gin context.
type ContextKey string

// RequestIDKey holds the request id on the gin context.
const RequestIDKey ContextKey = "request_id"

const maxRequestIDLength = 64

// RequestID tags every request with an id, echoing a well-formed client
// X-Request-ID and generating a UUID otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// validRequestID accepts short ids made of letters, digits, '-', '_' and '.',
// keeping client input out of log lines it could forge.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}
