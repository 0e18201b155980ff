package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/service"
)

// Context keys set by JWTAuth.
const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
	claimsKey    = "user_claims"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is missing or uses another scheme.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ClaimsFrom returns the claims stored by JWTAuth.
func ClaimsFrom(c *gin.Context) (*dto.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*dto.Claims)
	return claims, ok && claims != nil
}

// JWTAuth rejects requests without a valid, non-revoked access token and
// stores the caller's claims on the context.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		token := BearerToken(c)
		if token == "" {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userEmailKey, claims.Email)
		c.Set(claimsKey, claims)
		c.Next()
	}
}
