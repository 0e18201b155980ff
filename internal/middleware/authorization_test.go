//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequireAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)

	member := &dto.Claims{UserID: primitive.NewObjectID(), Roles: []string{"role-user"}}
	granted := model.PermissionSet{"batches:read": {}, "batches:write": {}}

	tests := []struct {
		name           string
		claims         interface{}
		config         AuthorizationConfig
		setupMock      func(*mocks.MockRoleService)
		expectedStatus int
	}{
		{
			name:           "missing claims",
			config:         AuthorizationConfig{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "claims of the wrong type",
			claims:         "not-claims",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no requirements",
			claims:         member,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "holds a required role",
			claims:         member,
			config:         AuthorizationConfig{RequiredRoles: []string{"role-admin", "role-user"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lacks every required role",
			claims:         member,
			config:         AuthorizationConfig{RequiredRoles: []string{"role-admin"}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "any permission suffices",
			claims: member,
			config: AuthorizationConfig{RequiredPermissions: []string{"stocks:write", "batches:read"}},
			setupMock: func(m *mocks.MockRoleService) {
				m.On("Permissions", mock.Anything, member.Roles).Return(granted, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "all permissions required",
			claims: member,
			config: AuthorizationConfig{RequiredPermissions: []string{"stocks:write", "batches:read"}, RequireAllPermissions: true},
			setupMock: func(m *mocks.MockRoleService) {
				m.On("Permissions", mock.Anything, member.Roles).Return(granted, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "no permission granted",
			claims: member,
			config: AuthorizationConfig{RequiredPermissions: []string{"houses:write"}},
			setupMock: func(m *mocks.MockRoleService) {
				m.On("Permissions", mock.Anything, member.Roles).Return(model.PermissionSet{}, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "role lookup fails",
			claims: member,
			config: AuthorizationConfig{RequiredPermissions: []string{"batches:read"}},
			setupMock: func(m *mocks.MockRoleService) {
				m.On("Permissions", mock.Anything, member.Roles).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := mocks.NewMockRoleService(t)
			if tt.setupMock != nil {
				tt.setupMock(roles)
			}

			router := gin.New()
			router.Use(RequestID(), func(c *gin.Context) {
				if tt.claims != nil {
					c.Set("user_claims", tt.claims)
				}
				c.Next()
			})
			router.Use(RequireAuthorization(tt.config, roles))
			router.GET("/batches", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
