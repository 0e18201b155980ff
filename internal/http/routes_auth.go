package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service"
)

// AuthRoutes mounts /auth and hands out the JWT-protected group the farm
// routes hang from.
type AuthRoutes struct {
	handler *AuthHandler
	auth    service.AuthService
}

func NewAuthRoutes(auth service.AuthService) *AuthRoutes {
	return &AuthRoutes{handler: NewAuthHandler(auth), auth: auth}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/auth")
	public.POST("/register", r.handler.Register)
	public.POST("/login", r.handler.Login)
	public.POST("/refresh", r.handler.RefreshToken)
}

// ProtectedGroup validates the access token, then rate limits per caller when
// limiter is set. Logout is the first route on it.
func (r *AuthRoutes) ProtectedGroup(rg *gin.RouterGroup, limiter *middleware.RateLimiter) *gin.RouterGroup {
	chain := []gin.HandlerFunc{middleware.JWTAuth(r.auth)}
	if limiter != nil {
		chain = append(chain, limiter.Middleware(middleware.CallerKey))
	}

	protected := rg.Group("", chain...)
	protected.POST("/auth/logout", r.handler.Logout)
	return protected
}
