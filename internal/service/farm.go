package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FarmService manages the caller's farm.
type FarmService interface {
	// Create makes a farm owned by the user and links the user to it. The
	// returned token pair carries the new farm id.
	Create(ctx context.Context, userID primitive.ObjectID, req *dto.CreateFarmRequest) (*dto.FarmCreatedResponse, error)
	Current(ctx context.Context, farmID string) (*model.Farm, error)
	Update(ctx context.Context, farmID string, req *dto.UpdateFarmRequest) (*model.Farm, error)
}

// FarmServiceImpl implements FarmService.
type FarmServiceImpl struct {
	uow   repository.UnitOfWork
	farms repository.FarmRepositoryInterface
	users repository.UserRepositoryInterface
	auth  AuthService
}

// NewFarmService creates a new farm service.
func NewFarmService(
	uow repository.UnitOfWork,
	farms repository.FarmRepositoryInterface,
	users repository.UserRepositoryInterface,
	auth AuthService,
) FarmService {
	return &FarmServiceImpl{
		uow:   uow,
		farms: farms,
		users: users,
		auth:  auth,
	}
}

func (s *FarmServiceImpl) Create(ctx context.Context, userID primitive.ObjectID, req *dto.CreateFarmRequest) (*dto.FarmCreatedResponse, error) {
	user, err := s.users.FindByIDMinimal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.FarmID != "" {
		return nil, ErrFarmExists
	}

	farm := &model.Farm{
		Name:     req.Name,
		Location: req.Location,
		OwnerID:  userID.Hex(),
	}
	err = s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.farms.Create(ctx, farm); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrFarmExists
			}
			return err
		}
		assigned, err := s.users.AssignFarm(ctx, userID, farm.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrFarmExists
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("farm_id", farm.ID).Str("user_id", userID.Hex()).Msg("Farm created")

	pair, err := s.auth.ReissueTokens(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("farm created but token reissue failed: %w", err)
	}
	return &dto.FarmCreatedResponse{
		Farm:         farm,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *FarmServiceImpl) Current(ctx context.Context, farmID string) (*model.Farm, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, ErrFarmNotFound
	}
	return farm, nil
}

func (s *FarmServiceImpl) Update(ctx context.Context, farmID string, req *dto.UpdateFarmRequest) (*model.Farm, error) {
	farm, err := s.Current(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		farm.Name = *req.Name
	}
	if req.Location != nil {
		farm.Location = *req.Location
	}
	if err := s.farms.Update(ctx, farm); err != nil {
		return nil, err
	}
	return farm, nil
}
