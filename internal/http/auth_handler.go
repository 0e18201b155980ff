package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service"
)

const refreshTokenHeader = "X-Refresh-Token"

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login.
//
// @Summary      Login
// @Description  Authenticates a user and returns an access and refresh token. The access token carries the user's farm once they have one.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, ok := bind[dto.LoginRequest](c, builder)
	if !ok {
		return
	}

	pair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		action := "login_error"
		if errors.Is(err, service.ErrInvalidCredentials) {
			action = "login_failed"
		}
		middleware.AuditError(c, action, "Login rejected", err, map[string]interface{}{"email": req.Email})
		builder.ServiceError(err)
		return
	}

	setCaller(c, user)
	middleware.Audit(c, "login", "User logged in", nil)
	builder.SuccessOK(dto.NewLoginResponse(pair, userResponse(user)))
}

// Register handles POST /api/v1/auth/register.
//
// @Summary      Register
// @Description  Creates a user without a farm and returns a token pair. Create a farm next to obtain a farm-scoped token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "New account"
// @Success      201 {object} dto.LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, ok := bind[dto.RegisterRequest](c, builder)
	if !ok {
		return
	}

	pair, user, err := h.authService.Register(c.Request.Context(), req.Email, req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			middleware.AuditError(c, "register_failed", "Email already registered", err, map[string]interface{}{"email": req.Email})
		}
		builder.ServiceError(err)
		return
	}

	setCaller(c, user)
	middleware.Audit(c, "register", "User registered", nil)
	builder.SuccessCreated(dto.NewLoginResponse(pair, userResponse(user)))
}

// RefreshToken handles POST /api/v1/auth/refresh.
//
// @Summary      Refresh tokens
// @Description  Exchanges the refresh token in X-Refresh-Token for a new pair. The old refresh token stops working.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)
	refreshToken := c.GetHeader(refreshTokenHeader)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyRefreshTokenRequired, nil)
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(dto.NewLoginResponse(pair, dto.UserResponse{}))
}

// Logout handles POST /api/v1/auth/logout.
//
// @Summary      Logout
// @Description  Revokes the bearer access token and the refresh token in X-Refresh-Token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	accessToken := middleware.BearerToken(c)
	if accessToken == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}
	refreshToken := c.GetHeader(refreshTokenHeader)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyRefreshTokenRequired, nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.Audit(c, "logout", "User logged out", nil)
	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}

// setCaller exposes a just-authenticated user to the audit log.
func setCaller(c *gin.Context, user *model.User) {
	c.Set("user_id", user.ID) // read back by middleware.Audit
	c.Set("user_email", user.Email)
}

func userResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{Email: user.Email, Name: user.Name, FarmID: user.FarmID}
}
