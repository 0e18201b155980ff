package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
)

// APIKeyHeader carries the service-to-service key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth requires an X-API-Key header matching one of validKeys. Keys are
// compared as SHA-256 digests in constant time. An empty set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make([][sha256.Size]byte, 0, len(validKeys))
	for key, enabled := range validKeys {
		if enabled && key != "" {
			digests = append(digests, sha256.Sum256([]byte(key)))
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}

		sum := sha256.Sum256([]byte(key))
		matched := 0
		for i := range digests {
			matched |= subtle.ConstantTimeCompare(sum[:], digests[i][:])
		}
		if matched != 1 {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Next()
	}
}
