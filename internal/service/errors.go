package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/flock-service/internal/repository"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// map it to a response with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

var (
	// ErrNoFarm is returned when the caller is not a member of any farm.
	ErrNoFarm = fmt.Errorf("%w: caller has no farm", ErrForbidden)

	ErrFarmNotFound       = fmt.Errorf("%w: farm", ErrNotFound)
	ErrBatchNotFound      = fmt.Errorf("%w: batch", ErrNotFound)
	ErrHouseNotFound      = fmt.Errorf("%w: house", ErrNotFound)
	ErrAllocationNotFound = fmt.Errorf("%w: allocation", ErrNotFound)
	ErrStockNotFound      = fmt.Errorf("%w: stock item", ErrNotFound)
	ErrProductionNotFound = fmt.Errorf("%w: production record", ErrNotFound)
	ErrFormulaNotFound    = fmt.Errorf("%w: feed formula", ErrNotFound)

	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	ErrInsufficientBirds = fmt.Errorf("%w: not enough birds available", ErrValidation)
	ErrCapacityExceeded  = fmt.Errorf("%w: house capacity exceeded", ErrValidation)
	ErrSameHouse         = fmt.Errorf("%w: source and destination house are the same", ErrValidation)
	ErrCapacityBelowUse  = fmt.Errorf("%w: capacity below current occupancy", ErrValidation)
	ErrLossesExceedBatch = fmt.Errorf("%w: losses exceed original count", ErrValidation)
	ErrEggCountExceeded  = fmt.Errorf("%w: eggs collected exceed living birds", ErrValidation)

	// ErrConcurrentUpdate is returned when a record changed between read and write.
	ErrConcurrentUpdate = fmt.Errorf("%w: resource was modified concurrently, retry", ErrConflict)
	// ErrResourceInUse is returned when deleting a batch or house that still holds birds.
	ErrResourceInUse = fmt.Errorf("%w: resource still holds birds", ErrConflict)
	// ErrFarmExists is returned when the caller already belongs to a farm.
	ErrFarmExists = fmt.Errorf("%w: user already belongs to a farm", ErrConflict)

	// ErrOptimizerUnavailable is returned when the feed optimizer cannot be reached.
	ErrOptimizerUnavailable = errors.New("feed optimizer unavailable")
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
)

// conflict maps optimistic locking failures from the repository layer.
func conflict(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) || errors.Is(err, repository.ErrDuplicateKey) {
		return ErrConcurrentUpdate
	}
	return err
}
