//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/guttosm/flock-service/internal/repository/memstore"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFarmService_Create(t *testing.T) {
	userID := primitive.NewObjectID()
	req := &dto.CreateFarmRequest{Name: "Green Valley", Location: "Kumasi"}

	tests := []struct {
		name        string
		setup       func(*mocks.MockUserRepositoryInterface, *mocks.MockAuthService)
		expectedErr error
		farmStored  bool
	}{
		{
			name: "creates farm and reissues tokens",
			setup: func(users *mocks.MockUserRepositoryInterface, auth *mocks.MockAuthService) {
				users.On("FindByIDMinimal", mock.Anything, userID).Return(&model.User{ID: userID, Active: true}, nil)
				users.On("AssignFarm", mock.Anything, userID, mock.AnythingOfType("string")).Return(true, nil)
				auth.On("ReissueTokens", mock.Anything, userID).Return(&dto.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
			farmStored: true,
		},
		{
			name: "user already in a farm",
			setup: func(users *mocks.MockUserRepositoryInterface, _ *mocks.MockAuthService) {
				users.On("FindByIDMinimal", mock.Anything, userID).Return(&model.User{ID: userID, FarmID: "existing"}, nil)
			},
			expectedErr: service.ErrFarmExists,
		},
		{
			name: "assignment lost a race",
			setup: func(users *mocks.MockUserRepositoryInterface, _ *mocks.MockAuthService) {
				users.On("FindByIDMinimal", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				users.On("AssignFarm", mock.Anything, userID, mock.AnythingOfType("string")).Return(false, nil)
			},
			expectedErr: service.ErrFarmExists,
		},
		{
			name: "unknown user",
			setup: func(users *mocks.MockUserRepositoryInterface, _ *mocks.MockAuthService) {
				users.On("FindByIDMinimal", mock.Anything, userID).Return(nil, nil)
			},
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name: "repository error",
			setup: func(users *mocks.MockUserRepositoryInterface, _ *mocks.MockAuthService) {
				users.On("FindByIDMinimal", mock.Anything, userID).Return(nil, errors.New("db down"))
			},
			expectedErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			users := mocks.NewMockUserRepositoryInterface(t)
			auth := mocks.NewMockAuthService(t)
			tt.setup(users, auth)
			svc := service.NewFarmService(store, store.Farms(), users, auth)

			resp, err := svc.Create(context.Background(), userID, req)

			stored, findErr := store.Farms().FindByOwner(context.Background(), userID.Hex())
			require.NoError(t, findErr)

			if tt.expectedErr != nil {
				if errors.Is(tt.expectedErr, service.ErrConflict) || errors.Is(tt.expectedErr, service.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, tt.expectedErr)
				} else {
					assert.EqualError(t, err, tt.expectedErr.Error())
				}
				assert.Nil(t, resp)
				assert.Nil(t, stored, "rejected creation leaves no farm behind")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", resp.Token)
			assert.Equal(t, "refresh", resp.RefreshToken)
			assert.Equal(t, userID.Hex(), resp.Farm.OwnerID)
			require.NotNil(t, stored)
			assert.Equal(t, resp.Farm.ID, stored.ID)
		})
	}
}

func TestFarmService_CurrentAndUpdate(t *testing.T) {
	store := memstore.New()
	svc := service.NewFarmService(store, store.Farms(), nil, nil)
	ctx := context.Background()

	farm := &model.Farm{Name: "Old", Location: "Accra", OwnerID: "owner"}
	require.NoError(t, store.Farms().Create(ctx, farm))

	got, err := svc.Current(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Name)

	updated, err := svc.Update(ctx, farm.ID, &dto.UpdateFarmRequest{Name: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "Accra", updated.Location)

	_, err = svc.Current(ctx, "")
	assert.ErrorIs(t, err, service.ErrNoFarm)
	_, err = svc.Current(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrFarmNotFound)
}
