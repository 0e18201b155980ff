//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/guttosm/flock-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoleService_Permissions(t *testing.T) {
	ctx := context.Background()
	userRole := &model.Role{ID: primitive.NewObjectID(), Name: "user", Permissions: []string{"p-read", "p-write"}, Active: true}

	tests := []struct {
		name      string
		roleIDs   []string
		setupMock func(*mocks.MockRoleRepositoryInterface)
		expected  model.PermissionSet
		expectErr bool
	}{
		{
			name:    "collects permissions of every role",
			roleIDs: []string{userRole.ID.Hex()},
			setupMock: func(m *mocks.MockRoleRepositoryInterface) {
				m.On("FindByIDs", mock.Anything, []string{userRole.ID.Hex()}).Return([]*model.Role{userRole}, nil).Once()
			},
			expected: model.PermissionSet{"p-read": {}, "p-write": {}},
		},
		{
			name:      "no roles grant nothing without a lookup",
			roleIDs:   nil,
			setupMock: func(*mocks.MockRoleRepositoryInterface) {},
			expected:  model.PermissionSet{},
		},
		{
			name:    "repository error",
			roleIDs: []string{"r1"},
			setupMock: func(m *mocks.MockRoleRepositoryInterface) {
				m.On("FindByIDs", mock.Anything, []string{"r1"}).Return(nil, errors.New("db down")).Once()
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockRoleRepositoryInterface(t)
			tt.setupMock(repo)

			set, err := service.NewRoleService(repo, nil).Permissions(ctx, tt.roleIDs)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, set)
		})
	}
}

func TestRoleService_Permissions_Cached(t *testing.T) {
	ctx := context.Background()
	grants := cache.NewSharded[model.PermissionSet](16, time.Minute, 2)
	t.Cleanup(grants.Stop)

	repo := mocks.NewMockRoleRepositoryInterface(t)
	repo.On("FindByIDs", mock.Anything, []string{"b", "a"}).
		Return([]*model.Role{{Permissions: []string{"p1"}, Active: true}}, nil).Once()

	svc := service.NewRoleService(repo, grants)

	first, err := svc.Permissions(ctx, []string{"b", "a"})
	require.NoError(t, err)
	second, err := svc.Permissions(ctx, []string{"a", "b", "a"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, second.HasAll("p1"))
}

func TestRoleService_NoRepository(t *testing.T) {
	_, err := service.NewRoleService(nil, nil).Permissions(context.Background(), []string{"r1"})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}

func TestPermissionService_PermissionID(t *testing.T) {
	permID := primitive.NewObjectID()

	tests := []struct {
		name      string
		setupMock func(*mocks.MockPermissionRepositoryInterface)
		expected  string
	}{
		{
			name: "found",
			setupMock: func(m *mocks.MockPermissionRepositoryInterface) {
				m.On("FindByResourceAndAction", mock.Anything, "batches", "write").
					Return(&model.Permission{ID: permID, Resource: "batches", Action: "write"}, nil)
			},
			expected: permID.Hex(),
		},
		{
			name: "missing",
			setupMock: func(m *mocks.MockPermissionRepositoryInterface) {
				m.On("FindByResourceAndAction", mock.Anything, "batches", "write").Return(nil, nil)
			},
			expected: "",
		},
		{
			name: "lookup error",
			setupMock: func(m *mocks.MockPermissionRepositoryInterface) {
				m.On("FindByResourceAndAction", mock.Anything, "batches", "write").Return(nil, errors.New("timeout"))
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockPermissionRepositoryInterface(t)
			tt.setupMock(repo)

			assert.Equal(t, tt.expected, service.NewPermissionService(repo).PermissionID(context.Background(), "batches", "write"))
		})
	}

	t.Run("no repository", func(t *testing.T) {
		assert.Empty(t, service.NewPermissionService(nil).PermissionID(context.Background(), "batches", "write"))
	})
}
