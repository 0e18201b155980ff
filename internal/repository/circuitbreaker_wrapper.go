// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/flock-service/internal/circuitbreaker"
	"github.com/guttosm/flock-service/internal/domain/model"
)

// LogsRepositoryWithCircuitBreaker guards the logs collection. Writes are
// dropped while the circuit is open so logging never fails a request.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, entry) }))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error { return r.repo.CreateMany(ctx, entries) }))
}

func (r *LogsRepositoryWithCircuitBreaker) ListAudit(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.LogEntry, error) { return r.repo.ListAudit(ctx, farmID, filter) })
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// UnitOfWorkWithCircuitBreaker wraps a UnitOfWork with circuit breaker protection.
// Business rule rejections raised inside fn do not count against the circuit.
type UnitOfWorkWithCircuitBreaker struct {
	uow            UnitOfWork
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewUnitOfWorkWithCircuitBreaker creates a new unit of work wrapper with circuit breaker.
func NewUnitOfWorkWithCircuitBreaker(uow UnitOfWork, cb *circuitbreaker.CircuitBreaker) *UnitOfWorkWithCircuitBreaker {
	return &UnitOfWorkWithCircuitBreaker{uow: uow, circuitBreaker: cb}
}

// WithTransaction runs fn in a transaction with circuit breaker protection.
func (u *UnitOfWorkWithCircuitBreaker) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.circuitBreaker.Execute(ctx, func() error {
		return u.uow.WithTransaction(ctx, fn)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (u *UnitOfWorkWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return u.circuitBreaker
}

// FarmRepositoryWithCircuitBreaker wraps a FarmRepositoryInterface with circuit breaker protection.
type FarmRepositoryWithCircuitBreaker struct {
	repo           FarmRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewFarmRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewFarmRepositoryWithCircuitBreaker(repo FarmRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *FarmRepositoryWithCircuitBreaker {
	return &FarmRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *FarmRepositoryWithCircuitBreaker) Create(ctx context.Context, farm *model.Farm) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, farm) })
}

func (r *FarmRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.Farm, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Farm, error) { return r.repo.FindByID(ctx, id) })
}

func (r *FarmRepositoryWithCircuitBreaker) FindByOwner(ctx context.Context, ownerID string) (*model.Farm, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Farm, error) { return r.repo.FindByOwner(ctx, ownerID) })
}

func (r *FarmRepositoryWithCircuitBreaker) Update(ctx context.Context, farm *model.Farm) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, farm) })
}

// BatchRepositoryWithCircuitBreaker wraps a BatchRepositoryInterface with circuit breaker protection.
type BatchRepositoryWithCircuitBreaker struct {
	repo           BatchRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBatchRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewBatchRepositoryWithCircuitBreaker(repo BatchRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *BatchRepositoryWithCircuitBreaker {
	return &BatchRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *BatchRepositoryWithCircuitBreaker) Create(ctx context.Context, batch *model.Batch) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, batch) })
}

func (r *BatchRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.Batch, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Batch, error) { return r.repo.FindByID(ctx, id) })
}

func (r *BatchRepositoryWithCircuitBreaker) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Batch, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Batch, error) { return r.repo.FindByIDAndFarm(ctx, id, farmID) })
}

func (r *BatchRepositoryWithCircuitBreaker) ListByFarm(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Batch, error) { return r.repo.ListByFarm(ctx, farmID, includeArchived) })
}

func (r *BatchRepositoryWithCircuitBreaker) ListActive(ctx context.Context) ([]*model.Batch, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Batch, error) { return r.repo.ListActive(ctx) })
}

func (r *BatchRepositoryWithCircuitBreaker) Update(ctx context.Context, batch *model.Batch) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, batch) })
}

func (r *BatchRepositoryWithCircuitBreaker) SetAge(ctx context.Context, id string, age int) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.SetAge(ctx, id, age) })
}

func (r *BatchRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Delete(ctx, id) })
}

// HouseRepositoryWithCircuitBreaker wraps a HouseRepositoryInterface with circuit breaker protection.
type HouseRepositoryWithCircuitBreaker struct {
	repo           HouseRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewHouseRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewHouseRepositoryWithCircuitBreaker(repo HouseRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *HouseRepositoryWithCircuitBreaker {
	return &HouseRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *HouseRepositoryWithCircuitBreaker) Create(ctx context.Context, house *model.House) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, house) })
}

func (r *HouseRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.House, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.House, error) { return r.repo.FindByID(ctx, id) })
}

func (r *HouseRepositoryWithCircuitBreaker) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.House, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.House, error) { return r.repo.FindByIDAndFarm(ctx, id, farmID) })
}

func (r *HouseRepositoryWithCircuitBreaker) ListByFarm(ctx context.Context, farmID string) ([]*model.House, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.House, error) { return r.repo.ListByFarm(ctx, farmID) })
}

func (r *HouseRepositoryWithCircuitBreaker) Update(ctx context.Context, house *model.House) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, house) })
}

func (r *HouseRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Delete(ctx, id) })
}

// AllocationRepositoryWithCircuitBreaker wraps an AllocationRepositoryInterface with circuit breaker protection.
type AllocationRepositoryWithCircuitBreaker struct {
	repo           AllocationRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAllocationRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewAllocationRepositoryWithCircuitBreaker(repo AllocationRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AllocationRepositoryWithCircuitBreaker {
	return &AllocationRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *AllocationRepositoryWithCircuitBreaker) Create(ctx context.Context, allocation *model.Allocation) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, allocation) })
}

func (r *AllocationRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.Allocation, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Allocation, error) { return r.repo.FindByID(ctx, id) })
}

func (r *AllocationRepositoryWithCircuitBreaker) FindByBatchAndHouse(ctx context.Context, batchID, houseID string) (*model.Allocation, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Allocation, error) {
		return r.repo.FindByBatchAndHouse(ctx, batchID, houseID)
	})
}

func (r *AllocationRepositoryWithCircuitBreaker) ListByBatch(ctx context.Context, batchID string) ([]*model.Allocation, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Allocation, error) { return r.repo.ListByBatch(ctx, batchID) })
}

func (r *AllocationRepositoryWithCircuitBreaker) ListByHouse(ctx context.Context, houseID string) ([]*model.Allocation, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Allocation, error) { return r.repo.ListByHouse(ctx, houseID) })
}

func (r *AllocationRepositoryWithCircuitBreaker) Update(ctx context.Context, allocation *model.Allocation) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, allocation) })
}

func (r *AllocationRepositoryWithCircuitBreaker) DeleteByBatch(ctx context.Context, batchID string) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.DeleteByBatch(ctx, batchID) })
}

func (r *AllocationRepositoryWithCircuitBreaker) DeleteByHouse(ctx context.Context, houseID string) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.DeleteByHouse(ctx, houseID) })
}

// StockRepositoryWithCircuitBreaker wraps a StockRepositoryInterface with circuit breaker protection.
type StockRepositoryWithCircuitBreaker struct {
	repo           StockRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewStockRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewStockRepositoryWithCircuitBreaker(repo StockRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *StockRepositoryWithCircuitBreaker {
	return &StockRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *StockRepositoryWithCircuitBreaker) Create(ctx context.Context, stock *model.Stock) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, stock) })
}

func (r *StockRepositoryWithCircuitBreaker) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Stock, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Stock, error) { return r.repo.FindByIDAndFarm(ctx, id, farmID) })
}

func (r *StockRepositoryWithCircuitBreaker) ListByFarm(ctx context.Context, farmID string) ([]*model.Stock, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Stock, error) { return r.repo.ListByFarm(ctx, farmID) })
}

// ListLow returns an empty list while the circuit is open; the low-stock scan is advisory.
func (r *StockRepositoryWithCircuitBreaker) ListLow(ctx context.Context, farmID string) ([]*model.Stock, error) {
	items, err := circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Stock, error) { return r.repo.ListLow(ctx, farmID) })
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) && farmID == "" {
		return []*model.Stock{}, nil
	}
	return items, err
}

func (r *StockRepositoryWithCircuitBreaker) Update(ctx context.Context, stock *model.Stock) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, stock) })
}

func (r *StockRepositoryWithCircuitBreaker) Delete(ctx context.Context, id, farmID string) (bool, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (bool, error) { return r.repo.Delete(ctx, id, farmID) })
}

// ProductionRepositoryWithCircuitBreaker wraps a ProductionRepositoryInterface with circuit breaker protection.
type ProductionRepositoryWithCircuitBreaker struct {
	repo           ProductionRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductionRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductionRepositoryWithCircuitBreaker(repo ProductionRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductionRepositoryWithCircuitBreaker {
	return &ProductionRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *ProductionRepositoryWithCircuitBreaker) Create(ctx context.Context, production *model.Production) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, production) })
}

func (r *ProductionRepositoryWithCircuitBreaker) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Production, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.Production, error) { return r.repo.FindByIDAndFarm(ctx, id, farmID) })
}

func (r *ProductionRepositoryWithCircuitBreaker) ListByFarm(ctx context.Context, farmID, batchID string) ([]*model.Production, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.Production, error) { return r.repo.ListByFarm(ctx, farmID, batchID) })
}

func (r *ProductionRepositoryWithCircuitBreaker) Update(ctx context.Context, production *model.Production) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, production) })
}

func (r *ProductionRepositoryWithCircuitBreaker) Delete(ctx context.Context, id, farmID string) (bool, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (bool, error) { return r.repo.Delete(ctx, id, farmID) })
}

// FeedFormulaRepositoryWithCircuitBreaker wraps a FeedFormulaRepositoryInterface with circuit breaker protection.
type FeedFormulaRepositoryWithCircuitBreaker struct {
	repo           FeedFormulaRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewFeedFormulaRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewFeedFormulaRepositoryWithCircuitBreaker(repo FeedFormulaRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *FeedFormulaRepositoryWithCircuitBreaker {
	return &FeedFormulaRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *FeedFormulaRepositoryWithCircuitBreaker) Create(ctx context.Context, formula *model.FeedFormula) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, formula) })
}

func (r *FeedFormulaRepositoryWithCircuitBreaker) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.FeedFormula, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.FeedFormula, error) { return r.repo.FindByIDAndFarm(ctx, id, farmID) })
}

func (r *FeedFormulaRepositoryWithCircuitBreaker) ListActiveByFarm(ctx context.Context, farmID string) ([]*model.FeedFormula, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*model.FeedFormula, error) { return r.repo.ListActiveByFarm(ctx, farmID) })
}

func (r *FeedFormulaRepositoryWithCircuitBreaker) Update(ctx context.Context, formula *model.FeedFormula) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Update(ctx, formula) })
}

func (r *FeedFormulaRepositoryWithCircuitBreaker) Deactivate(ctx context.Context, id, farmID string) (bool, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (bool, error) { return r.repo.Deactivate(ctx, id, farmID) })
}
