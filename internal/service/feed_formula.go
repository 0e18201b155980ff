package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/guttosm/flock-service/internal/client/optimizer"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/guttosm/flock-service/internal/service/cache"
)

// ErrOptimizerRejected is returned when the optimizer refuses the request itself.
var ErrOptimizerRejected = fmt.Errorf("%w: feed optimizer rejected the request", ErrValidation)

// FeedFormulaService manages feed recipes and proxies optimization requests.
type FeedFormulaService interface {
	Create(ctx context.Context, farmID string, req *dto.FeedFormulaRequest) (*model.FeedFormula, error)
	List(ctx context.Context, farmID string) ([]*model.FeedFormula, error)
	Get(ctx context.Context, farmID, formulaID string) (*model.FeedFormula, error)
	Update(ctx context.Context, farmID, formulaID string, req *dto.FeedFormulaRequest) (*model.FeedFormula, error)
	Delete(ctx context.Context, farmID, formulaID string) error
	Optimize(ctx context.Context, farmID string, req *dto.OptimizeFormulaRequest) (json.RawMessage, error)
}

// FeedFormulaServiceImpl implements FeedFormulaService.
type FeedFormulaServiceImpl struct {
	formulas  repository.FeedFormulaRepositoryInterface
	optimizer optimizer.Client
	cache     cache.Cache[json.RawMessage]
}

// NewFeedFormulaService creates a new feed formula service. A nil cache
// disables caching of optimizer answers.
func NewFeedFormulaService(
	formulas repository.FeedFormulaRepositoryInterface,
	client optimizer.Client,
	results cache.Cache[json.RawMessage],
) FeedFormulaService {
	return &FeedFormulaServiceImpl{
		formulas:  formulas,
		optimizer: client,
		cache:     results,
	}
}

func (s *FeedFormulaServiceImpl) Create(ctx context.Context, farmID string, req *dto.FeedFormulaRequest) (*model.FeedFormula, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	f := &model.FeedFormula{FarmID: farmID}
	applyFormula(f, req)
	if err := s.formulas.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedFormulaServiceImpl) List(ctx context.Context, farmID string) ([]*model.FeedFormula, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	return nonNil(s.formulas.ListActiveByFarm(ctx, farmID))
}

// Get returns an active formula of the farm.
func (s *FeedFormulaServiceImpl) Get(ctx context.Context, farmID, formulaID string) (*model.FeedFormula, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}
	f, err := s.formulas.FindByIDAndFarm(ctx, formulaID, farmID)
	if err != nil {
		return nil, err
	}
	if f == nil || !f.IsActive {
		return nil, ErrFormulaNotFound
	}
	return f, nil
}

func (s *FeedFormulaServiceImpl) Update(ctx context.Context, farmID, formulaID string, req *dto.FeedFormulaRequest) (*model.FeedFormula, error) {
	f, err := s.Get(ctx, farmID, formulaID)
	if err != nil {
		return nil, err
	}
	applyFormula(f, req)
	if err := s.formulas.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete deactivates the formula. The record is kept.
func (s *FeedFormulaServiceImpl) Delete(ctx context.Context, farmID, formulaID string) error {
	if farmID == "" {
		return ErrNoFarm
	}
	found, err := s.formulas.Deactivate(ctx, formulaID, farmID)
	if err != nil {
		return err
	}
	if !found {
		return ErrFormulaNotFound
	}
	return nil
}

func applyFormula(f *model.FeedFormula, req *dto.FeedFormulaRequest) {
	f.Name = req.Name
	f.Ingredients = req.Ingredients
	f.TargetNutrition = req.TargetNutrition
	f.TargetGroup = req.TargetGroup
	f.Notes = req.Notes
	f.TotalCost = model.TotalCost(req.Ingredients)
}

// Optimize asks the optimizer for a least-cost formula. Identical requests
// of a farm are answered from cache until the entry expires.
func (s *FeedFormulaServiceImpl) Optimize(ctx context.Context, farmID string, req *dto.OptimizeFormulaRequest) (json.RawMessage, error) {
	if farmID == "" {
		return nil, ErrNoFarm
	}

	in := optimizer.Request{
		FarmID:               farmID,
		AvailableIngredients: req.AvailableIngredients,
		TargetNutrition:      *req.TargetNutrition,
		TargetGroup:          req.TargetGroup,
		Constraints:          req.Constraints,
	}

	var key string
	if s.cache != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		key = string(body)
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	start := time.Now()
	result, err := s.optimizer.Optimize(ctx, in)
	if err != nil {
		metrics.RecordOptimizerRequest(time.Since(start), "error")
		return nil, s.optimizerError(farmID, err)
	}
	metrics.RecordOptimizerRequest(time.Since(start), "success")

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}

func (s *FeedFormulaServiceImpl) optimizerError(farmID string, err error) error {
	var apiErr *optimizer.Error
	if errors.As(err, &apiErr) && !apiErr.Temporary() &&
		apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrOptimizerRejected, apiErr.Message)
	}
	l := logger.ForFarm("feed_formula", farmID)
	l.Warn().Err(err).Msg("Feed optimizer call failed")
	return fmt.Errorf("%w: %v", ErrOptimizerUnavailable, err)
}
