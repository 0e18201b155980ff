package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
)

// farmIDKey is the gin context key holding the caller's farm id.
const farmIDKey = "farm_id"

// RequireFarm rejects callers whose token carries no farm with 403 and
// exposes the farm id to handlers. It must run after JWTAuth.
func RequireFarm() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}
		if !claims.HasFarm() {
			abortWithKey(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyNoFarm)
			return
		}

		c.Set(farmIDKey, claims.FarmID)
		c.Next()
	}
}

// GetFarmID returns the farm id set by RequireFarm, or "".
func GetFarmID(c *gin.Context) string {
	return c.GetString(farmIDKey)
}

func abortWithKey(c *gin.Context, status int, code, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}
