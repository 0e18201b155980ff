package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/service"
)

// AuthorizationConfig lists what a route requires. Empty lists require nothing.
type AuthorizationConfig struct {
	// RequiredRoles are role ids; holding any one of them is enough.
	RequiredRoles []string
	// RequiredPermissions are permission ids granted through the caller's roles.
	RequiredPermissions []string
	// RequireAllPermissions demands every permission instead of any one.
	RequireAllPermissions bool
}

// RequireAuthorization checks the caller's roles and permissions against cfg.
// It must run after JWTAuth.
func RequireAuthorization(cfg AuthorizationConfig, roles service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}

		if len(cfg.RequiredRoles) > 0 && !slices.ContainsFunc(claims.Roles, func(role string) bool {
			return slices.Contains(cfg.RequiredRoles, role)
		}) {
			abortWithKey(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}

		if len(cfg.RequiredPermissions) > 0 {
			granted, err := roles.Permissions(c.Request.Context(), claims.Roles)
			if err != nil {
				log := logger.Component("authorization")
				log.Error().Err(err).Str("user_id", claims.UserID.Hex()).Msg("Failed to resolve permissions")
				abortWithKey(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, i18n.ErrKeyServiceUnavailable)
				return
			}

			allowed := granted.HasAny(cfg.RequiredPermissions...)
			if cfg.RequireAllPermissions {
				allowed = granted.HasAll(cfg.RequiredPermissions...)
			}
			if !allowed {
				abortWithKey(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
				return
			}
		}

		c.Next()
	}
}
