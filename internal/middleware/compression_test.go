//go:build !integration

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	const payload = `{"batch_id":"b-1","allocated":1200}`

	tests := []struct {
		name             string
		path             string
		acceptEncoding   string
		expectCompressed bool
	}{
		{name: "gzip accepted", path: "/api/v1/batches", acceptEncoding: "gzip", expectCompressed: true},
		{name: "gzip among others", path: "/api/v1/batches", acceptEncoding: "br, gzip", expectCompressed: true},
		{name: "no encoding", path: "/api/v1/batches"},
		{name: "metrics stay plain", path: "/metrics", acceptEncoding: "gzip"},
		{name: "health checks stay plain", path: "/readyz", acceptEncoding: "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Compression())
			router.GET(tt.path, func(c *gin.Context) {
				c.String(http.StatusOK, payload)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			if !tt.expectCompressed {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
				assert.Equal(t, payload, w.Body.String())
				return
			}

			assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			reader, err := gzip.NewReader(w.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
		})
	}
}
