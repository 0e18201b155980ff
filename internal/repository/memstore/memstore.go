// Package memstore provides an in-memory, transactional implementation of
// the flock repositories. Transactions are serialized: each one works on a
// private copy of the state that replaces the shared state only on success.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
)

type state struct {
	farms       map[string]model.Farm
	batches     map[string]model.Batch
	houses      map[string]model.House
	allocations map[string]model.Allocation
	stocks      map[string]model.Stock
	productions map[string]model.Production
	formulas    map[string]model.FeedFormula
}

func newState() state {
	return state{
		farms:       map[string]model.Farm{},
		batches:     map[string]model.Batch{},
		houses:      map[string]model.House{},
		allocations: map[string]model.Allocation{},
		stocks:      map[string]model.Stock{},
		productions: map[string]model.Production{},
		formulas:    map[string]model.FeedFormula{},
	}
}

func cloneMap[T any](in map[string]T, cp func(T) T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = cp(v)
	}
	return out
}

func same[T any](v T) T { return v }

func cloneHouse(h model.House) model.House {
	if h.Capacity != nil {
		c := *h.Capacity
		h.Capacity = &c
	}
	return h
}

func cloneFormula(f model.FeedFormula) model.FeedFormula {
	f.Ingredients = append([]model.Ingredient(nil), f.Ingredients...)
	return f
}

func (s state) clone() state {
	return state{
		farms:       cloneMap(s.farms, same[model.Farm]),
		batches:     cloneMap(s.batches, same[model.Batch]),
		houses:      cloneMap(s.houses, cloneHouse),
		allocations: cloneMap(s.allocations, same[model.Allocation]),
		stocks:      cloneMap(s.stocks, same[model.Stock]),
		productions: cloneMap(s.productions, same[model.Production]),
		formulas:    cloneMap(s.formulas, cloneFormula),
	}
}

type txKey struct{}

type transaction struct {
	state *state
}

// Store holds every collection in memory.
type Store struct {
	mu    sync.Mutex
	state state
	nowFn func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{state: newState(), nowFn: func() time.Time { return time.Now().UTC() }}
}

// WithTransaction runs fn against a private copy of the state and commits it
// only when fn succeeds.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(txKey{}).(*transaction); nested {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	tx := &transaction{state: &working}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	s.state = working
	return nil
}

// view runs fn against the transaction's state when ctx carries one,
// otherwise against the shared state under the store lock.
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if tx, ok := ctx.Value(txKey{}).(*transaction); ok {
		return fn(tx.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Store) now() time.Time {
	return s.nowFn()
}

// Farms returns the farm repository view of the store.
func (s *Store) Farms() repository.FarmRepositoryInterface { return farmRepo{s} }

// Batches returns the batch repository view of the store.
func (s *Store) Batches() repository.BatchRepositoryInterface { return batchRepo{s} }

// Houses returns the house repository view of the store.
func (s *Store) Houses() repository.HouseRepositoryInterface { return houseRepo{s} }

// Allocations returns the allocation repository view of the store.
func (s *Store) Allocations() repository.AllocationRepositoryInterface { return allocationRepo{s} }

// Stocks returns the stock repository view of the store.
func (s *Store) Stocks() repository.StockRepositoryInterface { return stockRepo{s} }

// Productions returns the production repository view of the store.
func (s *Store) Productions() repository.ProductionRepositoryInterface { return productionRepo{s} }

// FeedFormulas returns the feed formula repository view of the store.
func (s *Store) FeedFormulas() repository.FeedFormulaRepositoryInterface { return formulaRepo{s} }

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func ptr[T any](v T) *T { return &v }

type farmRepo struct{ s *Store }

func (r farmRepo) Create(ctx context.Context, farm *model.Farm) error {
	return r.s.view(ctx, func(st *state) error {
		for _, f := range st.farms {
			if f.OwnerID == farm.OwnerID {
				return repository.ErrDuplicateKey
			}
		}
		farm.ID = newID(farm.ID)
		farm.CreatedAt, farm.UpdatedAt = r.s.now(), r.s.now()
		st.farms[farm.ID] = *farm
		return nil
	})
}

func (r farmRepo) FindByID(ctx context.Context, id string) (out *model.Farm, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if f, ok := st.farms[id]; ok {
			out = ptr(f)
		}
		return nil
	})
	return out, err
}

func (r farmRepo) FindByOwner(ctx context.Context, ownerID string) (out *model.Farm, err error) {
	err = r.s.view(ctx, func(st *state) error {
		for _, f := range st.farms {
			if f.OwnerID == ownerID {
				out = ptr(f)
			}
		}
		return nil
	})
	return out, err
}

func (r farmRepo) Update(ctx context.Context, farm *model.Farm) error {
	return r.s.view(ctx, func(st *state) error {
		cur, ok := st.farms[farm.ID]
		if !ok {
			return nil
		}
		cur.Name, cur.Location, cur.UpdatedAt = farm.Name, farm.Location, r.s.now()
		st.farms[farm.ID] = cur
		farm.UpdatedAt = cur.UpdatedAt
		return nil
	})
}

type batchRepo struct{ s *Store }

func (r batchRepo) Create(ctx context.Context, batch *model.Batch) error {
	return r.s.view(ctx, func(st *state) error {
		batch.ID = newID(batch.ID)
		batch.Version = 1
		batch.CreatedAt, batch.UpdatedAt = r.s.now(), r.s.now()
		st.batches[batch.ID] = *batch
		return nil
	})
}

func (r batchRepo) FindByID(ctx context.Context, id string) (*model.Batch, error) {
	return r.FindByIDAndFarm(ctx, id, "")
}

func (r batchRepo) FindByIDAndFarm(ctx context.Context, id, farmID string) (out *model.Batch, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if b, ok := st.batches[id]; ok && (farmID == "" || b.FarmID == farmID) {
			out = ptr(b)
		}
		return nil
	})
	return out, err
}

func (r batchRepo) list(ctx context.Context, keep func(model.Batch) bool) (out []*model.Batch, err error) {
	out = make([]*model.Batch, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, b := range st.batches {
			if keep(b) {
				out = append(out, ptr(b))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ArrivalDate.After(out[j].ArrivalDate) })
	return out, err
}

func (r batchRepo) ListByFarm(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error) {
	return r.list(ctx, func(b model.Batch) bool {
		return b.FarmID == farmID && (includeArchived || !b.IsArchived)
	})
}

func (r batchRepo) ListActive(ctx context.Context) ([]*model.Batch, error) {
	return r.list(ctx, func(b model.Batch) bool { return !b.IsArchived })
}

func (r batchRepo) Update(ctx context.Context, batch *model.Batch) error {
	return r.s.view(ctx, func(st *state) error {
		cur, ok := st.batches[batch.ID]
		if !ok || cur.Version != batch.Version {
			return repository.ErrVersionConflict
		}
		next := *batch
		next.Version++
		next.UpdatedAt = r.s.now()
		st.batches[batch.ID] = next
		*batch = next
		return nil
	})
}

func (r batchRepo) SetAge(ctx context.Context, id string, age int) error {
	return r.s.view(ctx, func(st *state) error {
		if cur, ok := st.batches[id]; ok {
			cur.Age = age
			cur.Version++
			st.batches[id] = cur
		}
		return nil
	})
}

func (r batchRepo) Delete(ctx context.Context, id string) error {
	return r.s.view(ctx, func(st *state) error {
		delete(st.batches, id)
		return nil
	})
}

type houseRepo struct{ s *Store }

func (r houseRepo) Create(ctx context.Context, house *model.House) error {
	return r.s.view(ctx, func(st *state) error {
		house.ID = newID(house.ID)
		house.Version = 1
		house.Occupancy = 0
		house.CreatedAt, house.UpdatedAt = r.s.now(), r.s.now()
		st.houses[house.ID] = cloneHouse(*house)
		return nil
	})
}

func (r houseRepo) FindByID(ctx context.Context, id string) (*model.House, error) {
	return r.FindByIDAndFarm(ctx, id, "")
}

func (r houseRepo) FindByIDAndFarm(ctx context.Context, id, farmID string) (out *model.House, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if h, ok := st.houses[id]; ok && (farmID == "" || h.FarmID == farmID) {
			out = ptr(cloneHouse(h))
		}
		return nil
	})
	return out, err
}

func (r houseRepo) ListByFarm(ctx context.Context, farmID string) (out []*model.House, err error) {
	out = make([]*model.House, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, h := range st.houses {
			if h.FarmID == farmID {
				out = append(out, ptr(cloneHouse(h)))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r houseRepo) Update(ctx context.Context, house *model.House) error {
	return r.s.view(ctx, func(st *state) error {
		cur, ok := st.houses[house.ID]
		if !ok || cur.Version != house.Version {
			return repository.ErrVersionConflict
		}
		next := cloneHouse(*house)
		next.Version++
		next.UpdatedAt = r.s.now()
		st.houses[house.ID] = next
		*house = cloneHouse(next)
		return nil
	})
}

func (r houseRepo) Delete(ctx context.Context, id string) error {
	return r.s.view(ctx, func(st *state) error {
		delete(st.houses, id)
		return nil
	})
}

type allocationRepo struct{ s *Store }

func (r allocationRepo) Create(ctx context.Context, allocation *model.Allocation) error {
	return r.s.view(ctx, func(st *state) error {
		for _, a := range st.allocations {
			if a.BatchID == allocation.BatchID && a.HouseID == allocation.HouseID {
				return repository.ErrDuplicateKey
			}
		}
		allocation.ID = newID(allocation.ID)
		allocation.Version = 1
		allocation.CreatedAt, allocation.UpdatedAt = r.s.now(), r.s.now()
		st.allocations[allocation.ID] = *allocation
		return nil
	})
}

func (r allocationRepo) FindByID(ctx context.Context, id string) (out *model.Allocation, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if a, ok := st.allocations[id]; ok {
			out = ptr(a)
		}
		return nil
	})
	return out, err
}

func (r allocationRepo) FindByBatchAndHouse(ctx context.Context, batchID, houseID string) (out *model.Allocation, err error) {
	err = r.s.view(ctx, func(st *state) error {
		for _, a := range st.allocations {
			if a.BatchID == batchID && a.HouseID == houseID {
				out = ptr(a)
			}
		}
		return nil
	})
	return out, err
}

func (r allocationRepo) list(ctx context.Context, keep func(model.Allocation) bool) (out []*model.Allocation, err error) {
	out = make([]*model.Allocation, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, a := range st.allocations {
			if keep(a) {
				out = append(out, ptr(a))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r allocationRepo) ListByBatch(ctx context.Context, batchID string) ([]*model.Allocation, error) {
	return r.list(ctx, func(a model.Allocation) bool { return a.BatchID == batchID })
}

func (r allocationRepo) ListByHouse(ctx context.Context, houseID string) ([]*model.Allocation, error) {
	return r.list(ctx, func(a model.Allocation) bool { return a.HouseID == houseID })
}

func (r allocationRepo) Update(ctx context.Context, allocation *model.Allocation) error {
	return r.s.view(ctx, func(st *state) error {
		cur, ok := st.allocations[allocation.ID]
		if !ok || cur.Version != allocation.Version {
			return repository.ErrVersionConflict
		}
		next := *allocation
		next.Version++
		next.UpdatedAt = r.s.now()
		st.allocations[allocation.ID] = next
		*allocation = next
		return nil
	})
}

func (r allocationRepo) deleteWhere(ctx context.Context, match func(model.Allocation) bool) error {
	return r.s.view(ctx, func(st *state) error {
		for id, a := range st.allocations {
			if match(a) {
				delete(st.allocations, id)
			}
		}
		return nil
	})
}

func (r allocationRepo) DeleteByBatch(ctx context.Context, batchID string) error {
	return r.deleteWhere(ctx, func(a model.Allocation) bool { return a.BatchID == batchID })
}

func (r allocationRepo) DeleteByHouse(ctx context.Context, houseID string) error {
	return r.deleteWhere(ctx, func(a model.Allocation) bool { return a.HouseID == houseID })
}

type stockRepo struct{ s *Store }

func (r stockRepo) Create(ctx context.Context, stock *model.Stock) error {
	return r.s.view(ctx, func(st *state) error {
		stock.ID = newID(stock.ID)
		stock.CreatedAt, stock.UpdatedAt = r.s.now(), r.s.now()
		st.stocks[stock.ID] = *stock
		return nil
	})
}

func (r stockRepo) FindByIDAndFarm(ctx context.Context, id, farmID string) (out *model.Stock, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if v, ok := st.stocks[id]; ok && v.FarmID == farmID {
			out = ptr(v)
		}
		return nil
	})
	return out, err
}

func (r stockRepo) list(ctx context.Context, keep func(model.Stock) bool) (out []*model.Stock, err error) {
	out = make([]*model.Stock, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, v := range st.stocks {
			if keep(v) {
				out = append(out, ptr(v))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r stockRepo) ListByFarm(ctx context.Context, farmID string) ([]*model.Stock, error) {
	return r.list(ctx, func(v model.Stock) bool { return v.FarmID == farmID })
}

func (r stockRepo) ListLow(ctx context.Context, farmID string) ([]*model.Stock, error) {
	return r.list(ctx, func(v model.Stock) bool {
		return (farmID == "" || v.FarmID == farmID) && v.IsLow()
	})
}

func (r stockRepo) Update(ctx context.Context, stock *model.Stock) error {
	return r.s.view(ctx, func(st *state) error {
		if cur, ok := st.stocks[stock.ID]; ok && cur.FarmID == stock.FarmID {
			stock.UpdatedAt = r.s.now()
			st.stocks[stock.ID] = *stock
		}
		return nil
	})
}

func (r stockRepo) Delete(ctx context.Context, id, farmID string) (found bool, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if cur, ok := st.stocks[id]; ok && cur.FarmID == farmID {
			delete(st.stocks, id)
			found = true
		}
		return nil
	})
	return found, err
}

type productionRepo struct{ s *Store }

func (r productionRepo) Create(ctx context.Context, production *model.Production) error {
	return r.s.view(ctx, func(st *state) error {
		production.ID = newID(production.ID)
		production.CreatedAt, production.UpdatedAt = r.s.now(), r.s.now()
		st.productions[production.ID] = *production
		return nil
	})
}

func (r productionRepo) FindByIDAndFarm(ctx context.Context, id, farmID string) (out *model.Production, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if v, ok := st.productions[id]; ok && v.FarmID == farmID {
			out = ptr(v)
		}
		return nil
	})
	return out, err
}

func (r productionRepo) ListByFarm(ctx context.Context, farmID, batchID string) (out []*model.Production, err error) {
	out = make([]*model.Production, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, v := range st.productions {
			if v.FarmID == farmID && (batchID == "" || v.BatchID == batchID) {
				out = append(out, ptr(v))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

func (r productionRepo) Update(ctx context.Context, production *model.Production) error {
	return r.s.view(ctx, func(st *state) error {
		if cur, ok := st.productions[production.ID]; ok && cur.FarmID == production.FarmID {
			production.UpdatedAt = r.s.now()
			st.productions[production.ID] = *production
		}
		return nil
	})
}

func (r productionRepo) Delete(ctx context.Context, id, farmID string) (found bool, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if cur, ok := st.productions[id]; ok && cur.FarmID == farmID {
			delete(st.productions, id)
			found = true
		}
		return nil
	})
	return found, err
}

type formulaRepo struct{ s *Store }

func (r formulaRepo) Create(ctx context.Context, formula *model.FeedFormula) error {
	return r.s.view(ctx, func(st *state) error {
		formula.ID = newID(formula.ID)
		formula.IsActive = true
		formula.CreatedAt, formula.UpdatedAt = r.s.now(), r.s.now()
		st.formulas[formula.ID] = cloneFormula(*formula)
		return nil
	})
}

func (r formulaRepo) FindByIDAndFarm(ctx context.Context, id, farmID string) (out *model.FeedFormula, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if v, ok := st.formulas[id]; ok && v.FarmID == farmID && v.IsActive {
			out = ptr(cloneFormula(v))
		}
		return nil
	})
	return out, err
}

func (r formulaRepo) ListActiveByFarm(ctx context.Context, farmID string) (out []*model.FeedFormula, err error) {
	out = make([]*model.FeedFormula, 0)
	err = r.s.view(ctx, func(st *state) error {
		for _, v := range st.formulas {
			if v.FarmID == farmID && v.IsActive {
				out = append(out, ptr(cloneFormula(v)))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r formulaRepo) Update(ctx context.Context, formula *model.FeedFormula) error {
	return r.s.view(ctx, func(st *state) error {
		if cur, ok := st.formulas[formula.ID]; ok && cur.FarmID == formula.FarmID && cur.IsActive {
			formula.UpdatedAt = r.s.now()
			st.formulas[formula.ID] = cloneFormula(*formula)
		}
		return nil
	})
}

func (r formulaRepo) Deactivate(ctx context.Context, id, farmID string) (found bool, err error) {
	err = r.s.view(ctx, func(st *state) error {
		if cur, ok := st.formulas[id]; ok && cur.FarmID == farmID && cur.IsActive {
			cur.IsActive = false
			cur.UpdatedAt = r.s.now()
			st.formulas[id] = cur
			found = true
		}
		return nil
	})
	return found, err
}
