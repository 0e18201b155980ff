// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidQuantity is returned when a bird quantity is not positive.
	ErrInvalidQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must be a positive integer",
	}
	// ErrNegativeQuantity is returned when an absolute quantity is negative.
	ErrNegativeQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must not be negative",
	}
)

// AllocateRequest represents the JSON request body for allocating birds to a house.
//
// @Description Request to move unallocated birds from a batch into a house
// @Example {"batchId": "b-1", "houseId": "h-1", "quantity": 40}
type AllocateRequest struct {
	BatchID  string `json:"batchId" binding:"required" example:"3b0f6a2c-9a51-4f7b-8d0e-1b9c4d2e7a10"`
	HouseID  string `json:"houseId" binding:"required" example:"9c2d5e1f-0a3b-4c6d-8e7f-2a1b3c4d5e6f"`
	Quantity int    `json:"quantity" binding:"required" example:"40" minimum:"1"`
} // @name AllocateRequest

// Validate performs custom validation on the request.
func (r *AllocateRequest) Validate() error {
	if r.BatchID == "" {
		return &ValidationError{Field: "batchId", Message: "batchId is required"}
	}
	if r.HouseID == "" {
		return &ValidationError{Field: "houseId", Message: "houseId is required"}
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// TransferRequest represents the JSON request body for moving birds between houses.
//
// @Description Request to move birds of a batch from one house to another
// @Example {"batchId": "b-1", "fromHouseId": "h-1", "toHouseId": "h-2", "quantity": 40}
type TransferRequest struct {
	BatchID     string `json:"batchId" binding:"required"`
	FromHouseID string `json:"fromHouseId" binding:"required"`
	ToHouseID   string `json:"toHouseId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required" example:"40" minimum:"1"`
} // @name TransferRequest

// Validate performs custom validation on the request.
func (r *TransferRequest) Validate() error {
	if r.BatchID == "" {
		return &ValidationError{Field: "batchId", Message: "batchId is required"}
	}
	if r.FromHouseID == "" || r.ToHouseID == "" {
		return &ValidationError{Field: "houseId", Message: "fromHouseId and toHouseId are required"}
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// UpdateAllocationRequest sets an allocation to an absolute quantity.
//
// @Description Request to set the absolute quantity of an allocation
// @Example {"quantity": 25}
type UpdateAllocationRequest struct {
	// Quantity is a pointer so an explicit zero is distinguishable from a missing field.
	Quantity *int `json:"quantity" binding:"required" example:"25" minimum:"0"`
} // @name UpdateAllocationRequest

// Validate performs custom validation on the request.
func (r *UpdateAllocationRequest) Validate() error {
	if r.Quantity == nil {
		return &ValidationError{Field: "quantity", Message: "quantity is required"}
	}
	if *r.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
