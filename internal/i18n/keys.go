package i18n

// Request, auth and infrastructure message keys.
const (
	ErrKeyInvalidRequest       = "error.invalid_request"
	ErrKeyInvalidRequestBody   = "error.invalid_request_body"
	ErrKeyInternalError        = "error.internal_error"
	ErrKeyUnauthorized         = "error.unauthorized"
	ErrKeyInvalidCredentials   = "error.invalid_credentials"
	ErrKeyAPIKeyRequired       = "error.api_key_required"
	ErrKeyInvalidAPIKey        = "error.invalid_api_key"
	ErrKeyForbidden            = "error.forbidden"
	ErrKeyNotFound             = "error.not_found"
	ErrKeyRateLimitExceeded    = "error.rate_limit_exceeded"
	ErrKeyConflict             = "error.conflict"
	ErrKeyInvalidToken         = "error.invalid_token"
	ErrKeyTokenRequired        = "error.token_required"
	ErrKeyRefreshTokenRequired = "error.refresh_token_required"
	ErrKeyUserExists           = "error.user_exists"
	ErrKeyTimeout              = "error.timeout"
	ErrKeyServiceUnavailable   = "error.service_unavailable"
)

// Domain rule message keys.
const (
	ErrKeyNoFarm             = "error.no_farm"
	ErrKeyFarmExists         = "error.farm_exists"
	ErrKeyFarmNotFound       = "error.farm_not_found"
	ErrKeyBatchNotFound      = "error.batch_not_found"
	ErrKeyHouseNotFound      = "error.house_not_found"
	ErrKeyAllocationNotFound = "error.allocation_not_found"
	ErrKeyStockNotFound      = "error.stock_not_found"
	ErrKeyProductionNotFound = "error.production_not_found"
	ErrKeyFormulaNotFound    = "error.formula_not_found"
	ErrKeyInvalidQuantity    = "error.invalid_quantity"
	ErrKeyInsufficientBirds  = "error.insufficient_birds"
	ErrKeyCapacityExceeded   = "error.capacity_exceeded"
	ErrKeySameHouse          = "error.same_house"
	ErrKeyCapacityBelowUse   = "error.capacity_below_occupancy"
	ErrKeyLossesExceedBatch  = "error.losses_exceed_batch"
	ErrKeyEggCountExceeded   = "error.egg_count_exceeded"
	ErrKeyBatchChange        = "error.batch_change"
	ErrKeyConcurrentUpdate   = "error.concurrent_update"
	ErrKeyResourceInUse      = "error.resource_in_use"
	ErrKeyOptimizerRejected  = "error.optimizer_rejected"
	ErrKeyOptimizerDown      = "error.optimizer_unavailable"
)
