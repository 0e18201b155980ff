package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/flock-service/internal/circuitbreaker"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/service"
)

type errorMapping struct {
	target error
	status int
	key    string
}

// serviceErrors is ordered from specific to generic; the first match wins.
var serviceErrors = []errorMapping{
	{service.ErrNoFarm, http.StatusForbidden, i18n.ErrKeyNoFarm},
	{service.ErrFarmExists, http.StatusConflict, i18n.ErrKeyFarmExists},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials},
	{service.ErrInvalidToken, http.StatusUnauthorized, i18n.ErrKeyInvalidToken},
	{service.ErrTokenBlacklisted, http.StatusUnauthorized, i18n.ErrKeyInvalidToken},
	{service.ErrUserExists, http.StatusConflict, i18n.ErrKeyUserExists},

	{service.ErrFarmNotFound, http.StatusNotFound, i18n.ErrKeyFarmNotFound},
	{service.ErrBatchNotFound, http.StatusNotFound, i18n.ErrKeyBatchNotFound},
	{service.ErrHouseNotFound, http.StatusNotFound, i18n.ErrKeyHouseNotFound},
	{service.ErrAllocationNotFound, http.StatusNotFound, i18n.ErrKeyAllocationNotFound},
	{service.ErrStockNotFound, http.StatusNotFound, i18n.ErrKeyStockNotFound},
	{service.ErrProductionNotFound, http.StatusNotFound, i18n.ErrKeyProductionNotFound},
	{service.ErrFormulaNotFound, http.StatusNotFound, i18n.ErrKeyFormulaNotFound},

	{service.ErrInvalidQuantity, http.StatusBadRequest, i18n.ErrKeyInvalidQuantity},
	{service.ErrInsufficientBirds, http.StatusBadRequest, i18n.ErrKeyInsufficientBirds},
	{service.ErrCapacityExceeded, http.StatusBadRequest, i18n.ErrKeyCapacityExceeded},
	{service.ErrSameHouse, http.StatusBadRequest, i18n.ErrKeySameHouse},
	{service.ErrCapacityBelowUse, http.StatusBadRequest, i18n.ErrKeyCapacityBelowUse},
	{service.ErrLossesExceedBatch, http.StatusBadRequest, i18n.ErrKeyLossesExceedBatch},
	{service.ErrEggCountExceeded, http.StatusBadRequest, i18n.ErrKeyEggCountExceeded},
	{service.ErrBatchChange, http.StatusBadRequest, i18n.ErrKeyBatchChange},
	{service.ErrOptimizerRejected, http.StatusBadRequest, i18n.ErrKeyOptimizerRejected},

	{service.ErrConcurrentUpdate, http.StatusConflict, i18n.ErrKeyConcurrentUpdate},
	{service.ErrResourceInUse, http.StatusConflict, i18n.ErrKeyResourceInUse},

	{service.ErrOptimizerUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyOptimizerDown},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},

	{service.ErrForbidden, http.StatusForbidden, i18n.ErrKeyForbidden},
	{service.ErrNotFound, http.StatusNotFound, i18n.ErrKeyNotFound},
	{service.ErrValidation, http.StatusBadRequest, i18n.ErrKeyInvalidRequest},
	{service.ErrConflict, http.StatusConflict, i18n.ErrKeyConflict},
}

// statusForError resolves the response status and message key of a service error.
func statusForError(err error) (int, string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return m.status, m.key
		}
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}

// ServiceError writes the response for an error returned by a service call.
func (b *ResponseBuilder) ServiceError(err error) {
	status, key := statusForError(err)
	b.Error(status, key, err)
}

// BindError writes a 400 for a body that failed to bind or validate. Field
// validation errors are reported verbatim; binding tag failures are listed
// per field in the details.
func (b *ResponseBuilder) BindError(err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		b.abort(http.StatusBadRequest, validationErr.Error(),
			map[string]string{validationErr.Field: validationErr.Message}, err)
		return
	}

	message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequestBody, i18n.GetLocale(b.c))
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		b.abort(http.StatusBadRequest, message, fieldDetails(fieldErrs), err)
		return
	}
	b.abort(http.StatusBadRequest, message, nil, err)
}

// fieldDetails maps each failing field to its rule, e.g. "Quantity": "min=1".
func fieldDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[fe.Field()] = rule
	}
	return details
}
