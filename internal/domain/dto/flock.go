package dto

import (
	"strings"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
)

// CreateFarmRequest represents the JSON request body for creating a farm.
//
// @Description Request to create the caller's farm
// @Example {"name": "Green Valley", "location": "Kumasi"}
type CreateFarmRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Green Valley"`
	Location string `json:"location" binding:"required,max=100" example:"Kumasi"`
} // @name CreateFarmRequest

// Validate performs custom validation on the request.
func (r *CreateFarmRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(r.Location) == "" {
		return &ValidationError{Field: "location", Message: "location is required"}
	}
	return nil
}

// UpdateFarmRequest patches the caller's farm.
type UpdateFarmRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Location *string `json:"location,omitempty" binding:"omitempty,max=100"`
} // @name UpdateFarmRequest

// FarmCreatedResponse carries the new farm and a token pair that includes it.
type FarmCreatedResponse struct {
	Farm         *model.Farm `json:"farm"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
} // @name FarmCreatedResponse

// CreateBatchRequest represents the JSON request body for creating a batch.
//
// @Description Request to register a new batch of birds
// @Example {"name": "Layers March", "arrivalDate": "2026-03-01T00:00:00Z", "ageAtArrival": 1, "chickenType": "Isa Brown", "originalCount": 1000}
type CreateBatchRequest struct {
	Name          string    `json:"name" binding:"required" example:"Layers March"`
	ArrivalDate   time.Time `json:"arrivalDate" binding:"required"`
	AgeAtArrival  int       `json:"ageAtArrival" binding:"min=0" example:"1"`
	ChickenType   string    `json:"chickenType" binding:"required" example:"Isa Brown"`
	Supplier      string    `json:"supplier,omitempty"`
	OriginalCount int       `json:"originalCount" binding:"required,gt=0" example:"1000"`
} // @name CreateBatchRequest

// Validate performs custom validation on the request.
func (r *CreateBatchRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.OriginalCount <= 0 {
		return &ValidationError{Field: "originalCount", Message: "must be a positive integer"}
	}
	if r.AgeAtArrival < 0 {
		return &ValidationError{Field: "ageAtArrival", Message: "must not be negative"}
	}
	return nil
}

// UpdateBatchRequest patches a batch. The original count and the unallocated
// quantity cannot be changed through this request.
type UpdateBatchRequest struct {
	Name         *string    `json:"name,omitempty"`
	ArrivalDate  *time.Time `json:"arrivalDate,omitempty"`
	AgeAtArrival *int       `json:"ageAtArrival,omitempty"`
	ChickenType  *string    `json:"chickenType,omitempty"`
	Supplier     *string    `json:"supplier,omitempty"`
	Dead         *int       `json:"dead,omitempty"`
	Culled       *int       `json:"culled,omitempty"`
	Offlaid      *int       `json:"offlaid,omitempty"`
	IsArchived   *bool      `json:"isArchived,omitempty"`
} // @name UpdateBatchRequest

// Validate performs custom validation on the request.
func (r *UpdateBatchRequest) Validate() error {
	for field, v := range map[string]*int{"ageAtArrival": r.AgeAtArrival, "dead": r.Dead, "culled": r.Culled, "offlaid": r.Offlaid} {
		if v != nil && *v < 0 {
			return &ValidationError{Field: field, Message: "must not be negative"}
		}
	}
	return nil
}

// CreateHouseRequest represents the JSON request body for creating a house.
//
// @Description Request to create a house
// @Example {"name": "House A", "capacity": 500, "houseType": "Caged"}
type CreateHouseRequest struct {
	Name        string `json:"name" binding:"required" example:"House A"`
	Capacity    *int   `json:"capacity,omitempty" example:"500"`
	HouseType   string `json:"houseType" binding:"required" example:"Caged"`
	IsMonitored bool   `json:"isMonitored"`
} // @name CreateHouseRequest

// Validate performs custom validation on the request.
func (r *CreateHouseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		return &ValidationError{Field: "capacity", Message: "must not be negative"}
	}
	if !model.ValidHouseType(r.HouseType) {
		return &ValidationError{Field: "houseType", Message: "must be one of Caged, Deep Litter"}
	}
	return nil
}

// UpdateHouseRequest patches a house.
type UpdateHouseRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	HouseType   *string `json:"houseType,omitempty"`
	IsMonitored *bool   `json:"isMonitored,omitempty"`
} // @name UpdateHouseRequest

// Validate performs custom validation on the request.
func (r *UpdateHouseRequest) Validate() error {
	if r.Capacity != nil && *r.Capacity < 0 {
		return &ValidationError{Field: "capacity", Message: "must not be negative"}
	}
	if r.HouseType != nil && !model.ValidHouseType(*r.HouseType) {
		return &ValidationError{Field: "houseType", Message: "must be one of Caged, Deep Litter"}
	}
	return nil
}

// TransferResponse holds both allocations after a transfer.
type TransferResponse struct {
	From *model.Allocation `json:"from"`
	To   *model.Allocation `json:"to"`
} // @name TransferResponse

// StockRequest creates or replaces a stock item.
//
// @Description Request to create or update a stock item
// @Example {"item": "Layer mash", "category": "Feed", "quantity": 25, "threshold": 10}
type StockRequest struct {
	Item      string  `json:"item" binding:"required" example:"Layer mash"`
	Category  string  `json:"category" binding:"required" example:"Feed"`
	Quantity  float64 `json:"quantity" binding:"min=0" example:"25"`
	Threshold float64 `json:"threshold" binding:"min=0" example:"10"`
} // @name StockRequest

// Validate performs custom validation on the request.
func (r *StockRequest) Validate() error {
	if strings.TrimSpace(r.Item) == "" {
		return &ValidationError{Field: "item", Message: "item is required"}
	}
	if !model.ValidStockCategory(r.Category) {
		return &ValidationError{Field: "category", Message: "must be one of Feed, Equipment"}
	}
	if r.Quantity < 0 || r.Threshold < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	return nil
}

// ProductionRequest creates or replaces a production record. Eggs may be
// given as a total or as trays plus loose eggs; trays win when both are set.
//
// @Description Request to record daily production
// @Example {"batchId": "b-1", "date": "2026-03-10T00:00:00Z", "numberOfTrays": 8, "extraEggs": 5}
type ProductionRequest struct {
	BatchID               string    `json:"batchId" binding:"required"`
	Date                  time.Time `json:"date" binding:"required"`
	NumberOfDeadBirds     int       `json:"numberOfDeadBirds" binding:"min=0"`
	NumberOfEggsCollected int       `json:"numberOfEggsCollected" binding:"min=0"`
	NumberOfTrays         *int      `json:"numberOfTrays,omitempty"`
	ExtraEggs             int       `json:"extraEggs" binding:"min=0"`
	Notes                 string    `json:"notes,omitempty"`
} // @name ProductionRequest

// Validate performs custom validation on the request.
func (r *ProductionRequest) Validate() error {
	if r.BatchID == "" {
		return &ValidationError{Field: "batchId", Message: "batchId is required"}
	}
	if r.NumberOfDeadBirds < 0 || r.NumberOfEggsCollected < 0 || r.ExtraEggs < 0 {
		return &ValidationError{Field: "numberOfEggsCollected", Message: "must not be negative"}
	}
	if r.NumberOfTrays != nil && *r.NumberOfTrays < 0 {
		return &ValidationError{Field: "numberOfTrays", Message: "must not be negative"}
	}
	return nil
}

// Eggs returns the total eggs described by the request.
func (r *ProductionRequest) Eggs() int {
	if r.NumberOfTrays != nil {
		return *r.NumberOfTrays*model.EggsPerTray + r.ExtraEggs
	}
	return r.NumberOfEggsCollected
}

// ProductionResponse decorates a production record with derived figures.
type ProductionResponse struct {
	*model.Production
	ProductionRate float64             `json:"productionRate" example:"87.5"`
	TrayBreakdown  model.TrayBreakdown `json:"trayBreakdown"`
} // @name ProductionResponse

// FeedFormulaRequest creates or replaces a feed formula.
//
// @Description Request to create or update a feed formula
type FeedFormulaRequest struct {
	Name            string             `json:"name" binding:"required"`
	Ingredients     []model.Ingredient `json:"ingredients" binding:"required,min=1"`
	TargetNutrition model.Nutrition    `json:"targetNutrition"`
	TargetGroup     string             `json:"targetGroup,omitempty" example:"layers"`
	Notes           string             `json:"notes,omitempty"`
} // @name FeedFormulaRequest

// Validate performs custom validation on the request and fills defaults.
func (r *FeedFormulaRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(r.Ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	for _, in := range r.Ingredients {
		if in.Name == "" || in.Quantity < 0 || in.Cost < 0 || !model.ValidUnit(in.Unit) {
			return &ValidationError{Field: "ingredients", Message: "each ingredient needs a name, a non-negative quantity and cost, and a unit of kg, g or %"}
		}
	}
	if r.TargetGroup == "" {
		r.TargetGroup = model.TargetLayers
	}
	if !model.ValidTargetGroup(r.TargetGroup) {
		return &ValidationError{Field: "targetGroup", Message: "must be one of chicks, growers, layers, broilers"}
	}
	return nil
}

// OptimizeFormulaRequest asks the optimizer for a least-cost formula.
//
// @Description Request to compute an optimized feed formula
type OptimizeFormulaRequest struct {
	AvailableIngredients []model.Ingredient `json:"availableIngredients" binding:"required"`
	TargetNutrition      *model.Nutrition   `json:"targetNutrition" binding:"required"`
	TargetGroup          string             `json:"targetGroup,omitempty" example:"layers"`
	Constraints          map[string]any     `json:"constraints,omitempty" swaggertype:"object"`
} // @name OptimizeFormulaRequest

// Validate performs custom validation on the request and fills defaults.
func (r *OptimizeFormulaRequest) Validate() error {
	if len(r.AvailableIngredients) == 0 {
		return &ValidationError{Field: "availableIngredients", Message: "available ingredients are required"}
	}
	if r.TargetNutrition == nil {
		return &ValidationError{Field: "targetNutrition", Message: "target nutrition is required"}
	}
	if r.TargetGroup == "" {
		r.TargetGroup = model.TargetLayers
	}
	return nil
}
