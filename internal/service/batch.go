package service

import (
	"context"
	"time"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// BatchService manages bird batches of a farm.
type BatchService interface {
	Create(ctx context.Context, farmID string, req *dto.CreateBatchRequest) (*model.Batch, error)
	List(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error)
	Get(ctx context.Context, farmID, batchID string) (*model.Batch, error)
	Update(ctx context.Context, farmID, batchID string, req *dto.UpdateBatchRequest) (*model.Batch, error)
	Delete(ctx context.Context, farmID, batchID string) error
	// RefreshAges recomputes the age of every active batch and returns how
	// many changed.
	RefreshAges(ctx context.Context, now time.Time) (int, error)
}

// BatchServiceImpl implements BatchService.
type BatchServiceImpl struct {
	uow         repository.UnitOfWork
	batches     repository.BatchRepositoryInterface
	allocations repository.AllocationRepositoryInterface
	now         func() time.Time
}

// NewBatchService creates a new batch service.
func NewBatchService(
	uow repository.UnitOfWork,
	batches repository.BatchRepositoryInterface,
	allocations repository.AllocationRepositoryInterface,
) BatchService {
	return &BatchServiceImpl{
		uow:         uow,
		batches:     batches,
		allocations: allocations,
		now:         time.Now,
	}
}

// Create registers a batch. Every bird starts unallocated.
func (s *BatchServiceImpl) Create(ctx context.Context, farmID string, req *dto.CreateBatchRequest) (*model.Batch, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	batch := &model.Batch{
		FarmID:        farmID,
		Name:          req.Name,
		ArrivalDate:   req.ArrivalDate,
		AgeAtArrival:  req.AgeAtArrival,
		ChickenType:   req.ChickenType,
		Supplier:      req.Supplier,
		OriginalCount: req.OriginalCount,
		Quantity:      req.OriginalCount,
	}
	batch.Age = batch.AgeAt(s.now())

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	log.Info().
		Str("farm_id", farmID).
		Str("batch_id", batch.ID).
		Int("original_count", batch.OriginalCount).
		Msg("Batch created")
	return batch, nil
}

func (s *BatchServiceImpl) List(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	return nonNil(s.batches.ListByFarm(ctx, farmID, includeArchived))
}

func (s *BatchServiceImpl) Get(ctx context.Context, farmID, batchID string) (*model.Batch, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	batch, err := s.batches.FindByIDAndFarm(ctx, batchID, farmID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

// Update patches a batch. The original count and the unallocated quantity
// are never touched here.
func (s *BatchServiceImpl) Update(ctx context.Context, farmID, batchID string, req *dto.UpdateBatchRequest) (*model.Batch, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	var result *model.Batch
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.Get(ctx, farmID, batchID)
		if err != nil {
			return err
		}

		applyBatchPatch(batch, req)
		if batch.Losses() > batch.OriginalCount {
			return ErrLossesExceedBatch
		}
		batch.Age = batch.AgeAt(s.now())

		if err := s.batches.Update(ctx, batch); err != nil {
			return conflict(err)
		}
		result = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyBatchPatch(b *model.Batch, req *dto.UpdateBatchRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.ArrivalDate != nil {
		b.ArrivalDate = *req.ArrivalDate
	}
	if req.AgeAtArrival != nil {
		b.AgeAtArrival = *req.AgeAtArrival
	}
	if req.ChickenType != nil {
		b.ChickenType = *req.ChickenType
	}
	if req.Supplier != nil {
		b.Supplier = *req.Supplier
	}
	if req.Dead != nil {
		b.Dead = *req.Dead
	}
	if req.Culled != nil {
		b.Culled = *req.Culled
	}
	if req.Offlaid != nil {
		b.Offlaid = *req.Offlaid
	}
	if req.IsArchived != nil {
		b.IsArchived = *req.IsArchived
	}
}

// Delete removes a batch together with its empty allocations. A batch that
// still has birds in any house is rejected.
func (s *BatchServiceImpl) Delete(ctx context.Context, farmID, batchID string) error {
	if farmID == "" {
		return ErrNoFarm
	}

	return s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.Get(ctx, farmID, batchID)
		if err != nil {
			return err
		}

		allocations, err := s.allocations.ListByBatch(ctx, batch.ID)
		if err != nil {
			return err
		}
		for _, a := range allocations {
			if a.Quantity > 0 {
				return ErrResourceInUse
			}
		}

		if err := s.allocations.DeleteByBatch(ctx, batch.ID); err != nil {
			return err
		}
		return s.batches.Delete(ctx, batch.ID)
	})
}

func (s *BatchServiceImpl) RefreshAges(ctx context.Context, now time.Time) (int, error) {
	batches, err := s.batches.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, b := range batches {
		age := b.AgeAt(now)
		if age == b.Age {
			continue
		}
		if err := s.batches.SetAge(ctx, b.ID, age); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
