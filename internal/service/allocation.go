package service

import (
	"context"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/guttosm/flock-service/internal/repository"
)

// AllocateInput moves unallocated birds of a batch into a house.
type AllocateInput struct {
	BatchID  string
	HouseID  string
	Quantity int
}

// TransferInput moves birds of a batch from one house to another.
type TransferInput struct {
	BatchID     string
	FromHouseID string
	ToHouseID   string
	Quantity    int
}

// AllocationService keeps bird counts consistent across batches and houses.
//
// For every batch, the unallocated quantity plus its allocations never
// exceeds the original count. For every house with a capacity, the sum of
// allocations referencing it never exceeds that capacity. Each mutating call
// runs as one unit of work; a rejected call leaves no trace.
type AllocationService interface {
	Allocate(ctx context.Context, farmID string, in AllocateInput) (*model.Allocation, error)
	Transfer(ctx context.Context, farmID string, in TransferInput) (from, to *model.Allocation, err error)
	Update(ctx context.Context, farmID, allocationID string, quantity int) (*model.Allocation, error)
	Get(ctx context.Context, farmID, allocationID string) (*model.Allocation, error)
	ListByBatch(ctx context.Context, farmID, batchID string) ([]*model.Allocation, error)
	ListByHouse(ctx context.Context, farmID, houseID string) ([]*model.Allocation, error)
}

// AllocationServiceImpl implements AllocationService.
type AllocationServiceImpl struct {
	uow         repository.UnitOfWork
	batches     repository.BatchRepositoryInterface
	houses      repository.HouseRepositoryInterface
	allocations repository.AllocationRepositoryInterface
}

// NewAllocationService creates a new allocation service.
func NewAllocationService(
	uow repository.UnitOfWork,
	batches repository.BatchRepositoryInterface,
	houses repository.HouseRepositoryInterface,
	allocations repository.AllocationRepositoryInterface,
) AllocationService {
	return &AllocationServiceImpl{
		uow:         uow,
		batches:     batches,
		houses:      houses,
		allocations: allocations,
	}
}

// Allocate debits the batch's unallocated pool and credits the (batch, house)
// allocation, creating it on first use.
func (s *AllocationServiceImpl) Allocate(ctx context.Context, farmID string, in AllocateInput) (*model.Allocation, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	start := time.Now()
	var result *model.Allocation
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.batchInFarm(ctx, farmID, in.BatchID)
		if err != nil {
			return err
		}
		house, err := s.houseInFarm(ctx, farmID, in.HouseID)
		if err != nil {
			return err
		}

		if in.Quantity > batch.Quantity {
			return ErrInsufficientBirds
		}
		if !house.Fits(in.Quantity) {
			return ErrCapacityExceeded
		}

		alloc, err := s.credit(ctx, batch.ID, house, in.Quantity)
		if err != nil {
			return err
		}

		batch.Quantity -= in.Quantity
		if err := s.batches.Update(ctx, batch); err != nil {
			return conflict(err)
		}

		result = alloc
		return nil
	})
	metrics.RecordAllocation("allocate", time.Since(start), in.Quantity, err)
	if err != nil {
		return nil, err
	}

	l := logger.ForFarm("allocation", farmID)
	l.Debug().
		Str("batch_id", in.BatchID).
		Str("house_id", in.HouseID).
		Int("quantity", in.Quantity).
		Msg("Birds allocated")
	return result, nil
}

// Transfer moves birds between two allocations of the same batch. The batch's
// unallocated pool is not touched. A source drained to zero is kept.
func (s *AllocationServiceImpl) Transfer(ctx context.Context, farmID string, in TransferInput) (*model.Allocation, *model.Allocation, error) {
	if farmID == "" {
		return nil, nil, ErrNoFarm
	}
	if in.Quantity <= 0 {
		return nil, nil, ErrInvalidQuantity
	}
	if in.FromHouseID == in.ToHouseID {
		return nil, nil, ErrSameHouse
	}

	start := time.Now()
	var from, to *model.Allocation
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.batchInFarm(ctx, farmID, in.BatchID)
		if err != nil {
			return err
		}
		source, err := s.houseInFarm(ctx, farmID, in.FromHouseID)
		if err != nil {
			return err
		}
		dest, err := s.houseInFarm(ctx, farmID, in.ToHouseID)
		if err != nil {
			return err
		}

		src, err := s.allocations.FindByBatchAndHouse(ctx, batch.ID, source.ID)
		if err != nil {
			return err
		}
		if src == nil {
			return ErrAllocationNotFound
		}
		if src.Quantity < in.Quantity {
			return ErrInsufficientBirds
		}
		if !dest.Fits(in.Quantity) {
			return ErrCapacityExceeded
		}

		src.Quantity -= in.Quantity
		if err := s.allocations.Update(ctx, src); err != nil {
			return conflict(err)
		}
		source.Occupancy -= in.Quantity
		if err := s.houses.Update(ctx, source); err != nil {
			return conflict(err)
		}

		dst, err := s.credit(ctx, batch.ID, dest, in.Quantity)
		if err != nil {
			return err
		}

		from, to = src, dst
		return nil
	})
	metrics.RecordAllocation("transfer", time.Since(start), in.Quantity, err)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// Update sets an allocation to an absolute quantity. The difference is drawn
// from, or returned to, the batch's unallocated pool. A zero result is kept.
func (s *AllocationServiceImpl) Update(ctx context.Context, farmID, allocationID string, quantity int) (*model.Allocation, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	start := time.Now()
	var result *model.Allocation
	var delta int
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		alloc, batch, house, err := s.owned(ctx, farmID, allocationID)
		if err != nil {
			return err
		}
		if quantity < 0 {
			return ErrInvalidQuantity
		}

		delta = quantity - alloc.Quantity
		if delta == 0 {
			result = alloc
			return nil
		}
		if delta > 0 && !house.Fits(delta) {
			return ErrCapacityExceeded
		}
		if delta > batch.Quantity {
			return ErrInsufficientBirds
		}

		alloc.Quantity = quantity
		if err := s.allocations.Update(ctx, alloc); err != nil {
			return conflict(err)
		}
		house.Occupancy += delta
		if err := s.houses.Update(ctx, house); err != nil {
			return conflict(err)
		}
		batch.Quantity -= delta
		if err := s.batches.Update(ctx, batch); err != nil {
			return conflict(err)
		}

		result = alloc
		return nil
	})
	metrics.RecordAllocation("update", time.Since(start), abs(delta), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns an allocation whose batch and house both belong to the farm.
func (s *AllocationServiceImpl) Get(ctx context.Context, farmID, allocationID string) (*model.Allocation, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	alloc, _, _, err := s.owned(ctx, farmID, allocationID)
	return alloc, err
}

// ListByBatch lists the allocations of a batch. It never returns nil.
func (s *AllocationServiceImpl) ListByBatch(ctx context.Context, farmID, batchID string) ([]*model.Allocation, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	if _, err := s.batchInFarm(ctx, farmID, batchID); err != nil {
		return nil, err
	}
	return nonNil(s.allocations.ListByBatch(ctx, batchID))
}

// ListByHouse lists the allocations of a house. It never returns nil.
func (s *AllocationServiceImpl) ListByHouse(ctx context.Context, farmID, houseID string) ([]*model.Allocation, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	if _, err := s.houseInFarm(ctx, farmID, houseID); err != nil {
		return nil, err
	}
	return nonNil(s.allocations.ListByHouse(ctx, houseID))
}

// credit adds quantity birds of a batch to a house, creating the allocation
// when the pair has none yet.
func (s *AllocationServiceImpl) credit(ctx context.Context, batchID string, house *model.House, quantity int) (*model.Allocation, error) {
	alloc, err := s.allocations.FindByBatchAndHouse(ctx, batchID, house.ID)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = &model.Allocation{BatchID: batchID, HouseID: house.ID, Quantity: quantity}
		if err := s.allocations.Create(ctx, alloc); err != nil {
			return nil, conflict(err)
		}
	} else {
		alloc.Quantity += quantity
		if err := s.allocations.Update(ctx, alloc); err != nil {
			return nil, conflict(err)
		}
	}

	house.Occupancy += quantity
	if err := s.houses.Update(ctx, house); err != nil {
		return nil, conflict(err)
	}
	return alloc, nil
}

// owned loads an allocation with its batch and house. A missing allocation is
// not found; one whose batch or house lies outside the farm is forbidden.
func (s *AllocationServiceImpl) owned(ctx context.Context, farmID, allocationID string) (*model.Allocation, *model.Batch, *model.House, error) {
	alloc, err := s.allocations.FindByID(ctx, allocationID)
	if err != nil {
		return nil, nil, nil, err
	}
	if alloc == nil {
		return nil, nil, nil, ErrAllocationNotFound
	}

	batch, err := s.batches.FindByID(ctx, alloc.BatchID)
	if err != nil {
		return nil, nil, nil, err
	}
	house, err := s.houses.FindByID(ctx, alloc.HouseID)
	if err != nil {
		return nil, nil, nil, err
	}
	if batch == nil || house == nil || batch.FarmID != farmID || house.FarmID != farmID {
		return nil, nil, nil, ErrForbidden
	}
	return alloc, batch, house, nil
}

func (s *AllocationServiceImpl) batchInFarm(ctx context.Context, farmID, batchID string) (*model.Batch, error) {
	batch, err := s.batches.FindByIDAndFarm(ctx, batchID, farmID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

func (s *AllocationServiceImpl) houseInFarm(ctx context.Context, farmID, houseID string) (*model.House, error) {
	house, err := s.houses.FindByIDAndFarm(ctx, houseID, farmID)
	if err != nil {
		return nil, err
	}
	if house == nil {
		return nil, ErrHouseNotFound
	}
	return house, nil
}

func nonNil[T any](items []*T, err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []*T{}, nil
	}
	return items, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
