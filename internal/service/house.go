package service

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// HouseService manages the houses of a farm.
type HouseService interface {
	Create(ctx context.Context, farmID string, req *dto.CreateHouseRequest) (*model.House, error)
	List(ctx context.Context, farmID string) ([]*model.House, error)
	Get(ctx context.Context, farmID, houseID string) (*model.House, error)
	Update(ctx context.Context, farmID, houseID string, req *dto.UpdateHouseRequest) (*model.House, error)
	Delete(ctx context.Context, farmID, houseID string) error
}

// HouseServiceImpl implements HouseService.
type HouseServiceImpl struct {
	uow         repository.UnitOfWork
	houses      repository.HouseRepositoryInterface
	allocations repository.AllocationRepositoryInterface
}

// NewHouseService creates a new house service.
func NewHouseService(
	uow repository.UnitOfWork,
	houses repository.HouseRepositoryInterface,
	allocations repository.AllocationRepositoryInterface,
) HouseService {
	return &HouseServiceImpl{
		uow:         uow,
		houses:      houses,
		allocations: allocations,
	}
}

func (s *HouseServiceImpl) Create(ctx context.Context, farmID string, req *dto.CreateHouseRequest) (*model.House, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	house := &model.House{
		FarmID:      farmID,
		Name:        req.Name,
		Capacity:    req.Capacity,
		HouseType:   req.HouseType,
		IsMonitored: req.IsMonitored,
	}
	if err := s.houses.Create(ctx, house); err != nil {
		return nil, err
	}

	log.Info().Str("farm_id", farmID).Str("house_id", house.ID).Msg("House created")
	return house, nil
}

func (s *HouseServiceImpl) List(ctx context.Context, farmID string) ([]*model.House, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	return nonNil(s.houses.ListByFarm(ctx, farmID))
}

func (s *HouseServiceImpl) Get(ctx context.Context, farmID, houseID string) (*model.House, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	house, err := s.houses.FindByIDAndFarm(ctx, houseID, farmID)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, ErrHouseNotFound
	}
	return house, nil
}

// Update patches a house. Capacity cannot drop below the birds it holds.
func (s *HouseServiceImpl) Update(ctx context.Context, farmID, houseID string, req *dto.UpdateHouseRequest) (*model.House, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	var result *model.House
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		house, err := s.Get(ctx, farmID, houseID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			house.Name = *req.Name
		}
		if req.HouseType != nil {
			house.HouseType = *req.HouseType
		}
		if req.IsMonitored != nil {
			house.IsMonitored = *req.IsMonitored
		}
		if req.Capacity != nil {
			if *req.Capacity < house.Occupancy {
				return ErrCapacityBelowUse
			}
			capacity := *req.Capacity
			house.Capacity = &capacity
		}

		if err := s.houses.Update(ctx, house); err != nil {
			return conflict(err)
		}
		result = house
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an empty house and its zero allocations.
func (s *HouseServiceImpl) Delete(ctx context.Context, farmID, houseID string) error {
	if farmID == "" {
		return ErrNoFarm
	}

	return s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		house, err := s.Get(ctx, farmID, houseID)
		if err != nil {
			return err
		}
		if house.Occupancy > 0 {
			return ErrResourceInUse
		}

		if err := s.allocations.DeleteByHouse(ctx, house.ID); err != nil {
			return err
		}
		return s.houses.Delete(ctx, house.ID)
	})
}
