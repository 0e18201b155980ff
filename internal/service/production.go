package service

import (
	"context"
	"fmt"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
)

// ErrBatchChange is returned when an update tries to move a production
// record to another batch.
var ErrBatchChange = fmt.Errorf("%w: a production record cannot move to another batch", ErrValidation)

// ProductionService records daily egg collection and mortality per batch.
//
// Dead birds reported on a record are part of the batch's dead counter, so
// creating, editing and deleting a record adjust that counter by the same
// amount in the same unit of work.
type ProductionService interface {
	Create(ctx context.Context, farmID string, req *dto.ProductionRequest) (*dto.ProductionResponse, error)
	List(ctx context.Context, farmID, batchID string) ([]*dto.ProductionResponse, error)
	Get(ctx context.Context, farmID, productionID string) (*dto.ProductionResponse, error)
	Update(ctx context.Context, farmID, productionID string, req *dto.ProductionRequest) (*dto.ProductionResponse, error)
	Delete(ctx context.Context, farmID, productionID string) error
}

// ProductionServiceImpl implements ProductionService.
type ProductionServiceImpl struct {
	uow         repository.UnitOfWork
	batches     repository.BatchRepositoryInterface
	productions repository.ProductionRepositoryInterface
}

// NewProductionService creates a new production service.
func NewProductionService(
	uow repository.UnitOfWork,
	batches repository.BatchRepositoryInterface,
	productions repository.ProductionRepositoryInterface,
) ProductionService {
	return &ProductionServiceImpl{
		uow:         uow,
		batches:     batches,
		productions: productions,
	}
}

func (s *ProductionServiceImpl) Create(ctx context.Context, farmID string, req *dto.ProductionRequest) (*dto.ProductionResponse, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	var resp *dto.ProductionResponse
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.batch(ctx, farmID, req.BatchID)
		if err != nil {
			return err
		}

		eggs := req.Eggs()
		if eggs > batch.CurrentCount() {
			return ErrEggCountExceeded
		}
		if err := s.addDead(ctx, batch, req.NumberOfDeadBirds); err != nil {
			return err
		}

		p := &model.Production{
			FarmID:                farmID,
			BatchID:               batch.ID,
			Date:                  req.Date,
			NumberOfDeadBirds:     req.NumberOfDeadBirds,
			NumberOfEggsCollected: eggs,
			Notes:                 req.Notes,
		}
		if err := s.productions.Create(ctx, p); err != nil {
			return err
		}
		resp = decorate(p, batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns records of the farm, newest first, optionally for one batch.
func (s *ProductionServiceImpl) List(ctx context.Context, farmID, batchID string) ([]*dto.ProductionResponse, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	records, err := s.productions.ListByFarm(ctx, farmID, batchID)
	if err != nil {
		return nil, err
	}

	batches := make(map[string]*model.Batch)
	out := make([]*dto.ProductionResponse, 0, len(records))
	for _, p := range records {
		b, ok := batches[p.BatchID]
		if !ok {
			if b, err = s.batches.FindByID(ctx, p.BatchID); err != nil {
				return nil, err
			}
			batches[p.BatchID] = b
		}
		out = append(out, decorate(p, b))
	}
	return out, nil
}

func (s *ProductionServiceImpl) Get(ctx context.Context, farmID, productionID string) (*dto.ProductionResponse, error) {
	p, err := s.record(ctx, farmID, productionID)
	if err != nil {
		return nil, err
	}
	b, err := s.batches.FindByID(ctx, p.BatchID)
	if err != nil {
		return nil, err
	}
	return decorate(p, b), nil
}

func (s *ProductionServiceImpl) Update(ctx context.Context, farmID, productionID string, req *dto.ProductionRequest) (*dto.ProductionResponse, error) {
	var resp *dto.ProductionResponse
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.record(ctx, farmID, productionID)
		if err != nil {
			return err
		}
		if req.BatchID != "" && req.BatchID != p.BatchID {
			return ErrBatchChange
		}
		batch, err := s.batch(ctx, farmID, p.BatchID)
		if err != nil {
			return err
		}

		deadDelta := req.NumberOfDeadBirds - p.NumberOfDeadBirds
		eggs := req.Eggs()
		if eggs > batch.CurrentCount()+p.NumberOfDeadBirds {
			return ErrEggCountExceeded
		}
		if err := s.addDead(ctx, batch, deadDelta); err != nil {
			return err
		}

		p.Date = req.Date
		p.NumberOfDeadBirds = req.NumberOfDeadBirds
		p.NumberOfEggsCollected = eggs
		p.Notes = req.Notes
		if err := s.productions.Update(ctx, p); err != nil {
			return err
		}
		resp = decorate(p, batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes a record and gives its dead birds back to the batch count.
func (s *ProductionServiceImpl) Delete(ctx context.Context, farmID, productionID string) error {
	return s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.record(ctx, farmID, productionID)
		if err != nil {
			return err
		}
		batch, err := s.batches.FindByIDAndFarm(ctx, p.BatchID, farmID)
		if err != nil {
			return err
		}
		if batch != nil {
			dead := p.NumberOfDeadBirds
			if dead > batch.Dead {
				dead = batch.Dead
			}
			if err := s.addDead(ctx, batch, -dead); err != nil {
				return err
			}
		}

		found, err := s.productions.Delete(ctx, p.ID, farmID)
		if err != nil {
			return err
		}
		if !found {
			return ErrProductionNotFound
		}
		return nil
	})
}

func (s *ProductionServiceImpl) record(ctx context.Context, farmID, productionID string) (*model.Production, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	p, err := s.productions.FindByIDAndFarm(ctx, productionID, farmID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductionNotFound
	}
	return p, nil
}

func (s *ProductionServiceImpl) batch(ctx context.Context, farmID, batchID string) (*model.Batch, error) {
	b, err := s.batches.FindByIDAndFarm(ctx, batchID, farmID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBatchNotFound
	}
	return b, nil
}

func (s *ProductionServiceImpl) addDead(ctx context.Context, batch *model.Batch, n int) error {
	if n == 0 {
		return nil
	}
	batch.Dead += n
	if batch.Losses() > batch.OriginalCount {
		return ErrLossesExceedBatch
	}
	return conflict(s.batches.Update(ctx, batch))
}

// decorate attaches derived figures. The rate is computed against the
// batch's living birds at response time.
func decorate(p *model.Production, batch *model.Batch) *dto.ProductionResponse {
	birds := 0
	if batch != nil {
		birds = batch.CurrentCount()
	}
	return &dto.ProductionResponse{
		Production:     p,
		ProductionRate: model.ProductionRate(p.NumberOfEggsCollected, birds),
		TrayBreakdown:  p.Trays(),
	}
}
