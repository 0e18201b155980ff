//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name         string
		timeout      time.Duration
		handler      gin.HandlerFunc
		expectedCode int
	}{
		{
			name:         "fast handler",
			timeout:      time.Second,
			handler:      func(c *gin.Context) { c.Status(http.StatusOK) },
			expectedCode: http.StatusOK,
		},
		{
			name:    "handler waits on the deadline",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			expectedCode: http.StatusGatewayTimeout,
		},
		{
			name:    "handler answers after the deadline",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.Status(http.StatusServiceUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:    "handler writes a body after the deadline",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.String(http.StatusAccepted, "queued")
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name:    "disabled",
			timeout: 0,
			handler: func(c *gin.Context) {
				_, hasDeadline := c.Request.Context().Deadline()
				assert.False(t, hasDeadline)
				c.Status(http.StatusOK)
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Timeout(tt.timeout))
			router.GET("/production", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/production", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusGatewayTimeout {
				assert.Equal(t, dto.ErrCodeTimeout, decodeErrorBody(t, w).Error)
			}
		})
	}
}
