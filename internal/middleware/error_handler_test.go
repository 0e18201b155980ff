//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		handler      gin.HandlerFunc
		expectedCode int
		errorCode    string
	}{
		{
			name:         "no errors",
			handler:      func(c *gin.Context) { c.Status(http.StatusNoContent) },
			expectedCode: http.StatusNoContent,
		},
		{
			name: "private error becomes 500",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongo: no reachable servers"))
			},
			expectedCode: http.StatusInternalServerError,
			errorCode:    dto.ErrCodeInternal,
		},
		{
			name: "bind error becomes 400",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("quantity: must be positive")).SetType(gin.ErrorTypeBind)
			},
			expectedCode: http.StatusBadRequest,
			errorCode:    dto.ErrCodeInvalidRequest,
		},
		{
			name: "written response untouched",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("audit write failed"))
				c.Status(http.StatusCreated)
				c.Writer.WriteHeaderNow()
			},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.POST("/allocations", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/allocations", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.errorCode != "" {
				body := decodeErrorBody(t, w)
				assert.Equal(t, tt.errorCode, body.Error)
				assert.NotEmpty(t, body.Message)
				assert.NotEmpty(t, body.RequestID)
			}
		})
	}
}
