//go:build !integration

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testPair = &dto.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", ExpiresIn: 900}

// authRouter mounts the auth handlers without JWTAuth so each handler can be
// driven on its own.
func authRouter(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(auth)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/refresh", h.RefreshToken)
	router.POST("/auth/logout", h.Logout)
	return router
}

func postAuth(router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Email: "farmer@example.com", Name: "Jane", FarmID: "farm-1"}

	tests := []struct {
		name       string
		body       interface{}
		setup      func(*mocks.MockAuthService)
		wantStatus int
	}{
		{
			name: "success returns the pair and the farm",
			body: dto.LoginRequest{Email: "Farmer@Example.com", Password: "password123"},
			setup: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "farmer@example.com", "password123").Return(testPair, user, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: dto.LoginRequest{Email: "farmer@example.com", Password: "wrongpass"},
			setup: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, "farmer@example.com", "wrongpass").Return(nil, nil, service.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			body: dto.LoginRequest{Email: "farmer@example.com", Password: "password123"},
			setup: func(m *mocks.MockAuthService) {
				m.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, errors.New("mongo down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{name: "short password", body: map[string]string{"email": "farmer@example.com", "password": "123"}, setup: func(*mocks.MockAuthService) {}, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: "not-json", setup: func(*mocks.MockAuthService) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthService(t)
			tt.setup(auth)

			w := postAuth(authRouter(auth), "/auth/login", tt.body, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				resp := decodeData[dto.LoginResponse](t, w)
				assert.Equal(t, "access-token", resp.Token)
				assert.Equal(t, "refresh-token", resp.RefreshToken)
				assert.Equal(t, "farm-1", resp.User.FarmID)
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	body := dto.RegisterRequest{Email: "farmer@example.com", Username: "jdoe", Password: "password123", Name: "Jane"}

	t.Run("created without a farm", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		auth.On("Register", mock.Anything, "farmer@example.com", "jdoe", "password123", "Jane").
			Return(testPair, &model.User{ID: primitive.NewObjectID(), Email: "farmer@example.com", Name: "Jane"}, nil)

		w := postAuth(authRouter(auth), "/auth/register", body, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeData[dto.LoginResponse](t, w)
		assert.Equal(t, "access-token", resp.Token)
		assert.Empty(t, resp.User.FarmID)
	})

	t.Run("email taken", func(t *testing.T) {
		auth := mocks.NewMockAuthService(t)
		auth.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, service.ErrUserExists)

		w := postAuth(authRouter(auth), "/auth/register", body, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, decodeError(t, w).Error)
	})

	t.Run("username too short", func(t *testing.T) {
		short := body
		short.Username = "jd"
		w := postAuth(authRouter(mocks.NewMockAuthService(t)), "/auth/register", short, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(*mocks.MockAuthService)
		wantStatus int
	}{
		{
			name:   "new pair",
			header: "refresh-token",
			setup: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "refresh-token").Return(testPair, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "revoked token",
			header: "old-token",
			setup: func(m *mocks.MockAuthService) {
				m.On("RefreshToken", mock.Anything, "old-token").Return(nil, service.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{name: "missing header", setup: func(*mocks.MockAuthService) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthService(t)
			tt.setup(auth)

			headers := map[string]string{}
			if tt.header != "" {
				headers[refreshTokenHeader] = tt.header
			}
			w := postAuth(authRouter(auth), "/auth/refresh", nil, headers)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		setup      func(*mocks.MockAuthService)
		wantStatus int
	}{
		{
			name:    "revokes both tokens",
			headers: map[string]string{"Authorization": "Bearer access-token", refreshTokenHeader: "refresh-token"},
			setup: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, "access-token", "refresh-token").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing refresh token",
			headers:    map[string]string{"Authorization": "Bearer access-token"},
			setup:      func(*mocks.MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing access token",
			headers:    map[string]string{refreshTokenHeader: "refresh-token"},
			setup:      func(*mocks.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "store failure",
			headers: map[string]string{"Authorization": "Bearer access-token", refreshTokenHeader: "refresh-token"},
			setup: func(m *mocks.MockAuthService) {
				m.On("Logout", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("mongo down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthService(t)
			tt.setup(auth)

			w := postAuth(authRouter(auth), "/auth/logout", nil, tt.headers)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
