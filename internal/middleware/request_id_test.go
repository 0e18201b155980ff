//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		echoed   bool
		raw      bool
	}{
		{name: "generated when absent"},
		{name: "client id echoed", incoming: "req-2024.10_abc", echoed: true},
		{name: "id with spaces replaced", incoming: "bad id"},
		{name: "id with newline replaced", incoming: "abc\ninjected", raw: true},
		{name: "overlong id replaced", incoming: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "id at max length echoed", incoming: strings.Repeat("a", maxRequestIDLength), echoed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			router := gin.New()
			router.Use(RequestID())
			router.GET("/", func(c *gin.Context) {
				seen = GetRequestID(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			switch {
			case tt.raw:
				req.Header[http.CanonicalHeaderKey(RequestIDHeader)] = []string{tt.incoming}
			case tt.incoming != "":
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			returned := w.Header().Get(RequestIDHeader)
			assert.Equal(t, seen, returned)
			if tt.echoed {
				assert.Equal(t, tt.incoming, returned)
				return
			}
			_, err := uuid.Parse(returned)
			assert.NoError(t, err)
		})
	}
}

func TestGetRequestID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
