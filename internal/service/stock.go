package service

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
)

// StockService manages farm inventory.
type StockService interface {
	Create(ctx context.Context, farmID string, req *dto.StockRequest) (*model.Stock, error)
	List(ctx context.Context, farmID string) ([]*model.Stock, error)
	ListLow(ctx context.Context, farmID string) ([]*model.Stock, error)
	Get(ctx context.Context, farmID, stockID string) (*model.Stock, error)
	Update(ctx context.Context, farmID, stockID string, req *dto.StockRequest) (*model.Stock, error)
	Delete(ctx context.Context, farmID, stockID string) error
	// ScanLow lists low items across every farm.
	ScanLow(ctx context.Context) ([]*model.Stock, error)
}

// StockServiceImpl implements StockService.
type StockServiceImpl struct {
	stocks repository.StockRepositoryInterface
}

// NewStockService creates a new stock service.
func NewStockService(stocks repository.StockRepositoryInterface) StockService {
	return &StockServiceImpl{stocks: stocks}
}

func (s *StockServiceImpl) Create(ctx context.Context, farmID string, req *dto.StockRequest) (*model.Stock, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	stock := &model.Stock{
		FarmID:    farmID,
		Item:      req.Item,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
	}
	if err := s.stocks.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockServiceImpl) List(ctx context.Context, farmID string) ([]*model.Stock, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	return nonNil(s.stocks.ListByFarm(ctx, farmID))
}

func (s *StockServiceImpl) ListLow(ctx context.Context, farmID string) ([]*model.Stock, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	return nonNil(s.stocks.ListLow(ctx, farmID))
}

func (s *StockServiceImpl) Get(ctx context.Context, farmID, stockID string) (*model.Stock, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	stock, err := s.stocks.FindByIDAndFarm(ctx, stockID, farmID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, ErrStockNotFound
	}
	return stock, nil
}

func (s *StockServiceImpl) Update(ctx context.Context, farmID, stockID string, req *dto.StockRequest) (*model.Stock, error) {
	stock, err := s.Get(ctx, farmID, stockID)
	if err != nil {
		return nil, err
	}
	stock.Item = req.Item
	stock.Category = req.Category
	stock.Quantity = req.Quantity
	stock.Threshold = req.Threshold
	if err := s.stocks.Update(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *StockServiceImpl) Delete(ctx context.Context, farmID, stockID string) error {
	if farmID == "" {
		return ErrNoFarm
	}
	found, err := s.stocks.Delete(ctx, stockID, farmID)
	if err != nil {
		return err
	}
	if !found {
		return ErrStockNotFound
	}
	return nil
}

func (s *StockServiceImpl) ScanLow(ctx context.Context) ([]*model.Stock, error) {
	return nonNil(s.stocks.ListLow(ctx, ""))
}
