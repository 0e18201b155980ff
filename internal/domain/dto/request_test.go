//go:build !integration

package dto

import (
	"testing"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestAllocateRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       AllocateRequest
		expectedError error
	}{
		{
			name:    "valid request",
			request: AllocateRequest{BatchID: "b", HouseID: "h", Quantity: 40},
		},
		{
			name:          "zero quantity",
			request:       AllocateRequest{BatchID: "b", HouseID: "h", Quantity: 0},
			expectedError: ErrInvalidQuantity,
		},
		{
			name:          "negative quantity",
			request:       AllocateRequest{BatchID: "b", HouseID: "h", Quantity: -10},
			expectedError: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	err := (&AllocateRequest{HouseID: "h", Quantity: 1}).Validate()
	assert.EqualError(t, err, "batchId: batchId is required")
}

func TestTransferRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TransferRequest{BatchID: "b", FromHouseID: "a", ToHouseID: "c", Quantity: 1}).Validate())
	assert.Error(t, (&TransferRequest{BatchID: "b", FromHouseID: "a", Quantity: 1}).Validate())
	assert.Equal(t, ErrInvalidQuantity, (&TransferRequest{BatchID: "b", FromHouseID: "a", ToHouseID: "c"}).Validate())
}

func TestUpdateAllocationRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateAllocationRequest{Quantity: intPtr(0)}).Validate())
	assert.Equal(t, ErrNegativeQuantity, (&UpdateAllocationRequest{Quantity: intPtr(-1)}).Validate())
	assert.Error(t, (&UpdateAllocationRequest{}).Validate())
}

func TestCreateHouseRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateHouseRequest{Name: "A", HouseType: "Caged"}).Validate())
	assert.Error(t, (&CreateHouseRequest{Name: "A", HouseType: "Barn"}).Validate())
	assert.Error(t, (&CreateHouseRequest{Name: "A", HouseType: "Caged", Capacity: intPtr(-5)}).Validate())
}

func TestProductionRequest_Eggs(t *testing.T) {
	assert.Equal(t, 120, (&ProductionRequest{NumberOfEggsCollected: 120}).Eggs())
	assert.Equal(t, 245, (&ProductionRequest{NumberOfEggsCollected: 1, NumberOfTrays: intPtr(8), ExtraEggs: 5}).Eggs())
}

func TestFeedFormulaRequest_Validate_DefaultsTargetGroup(t *testing.T) {
	req := FeedFormulaRequest{
		Name: "Grower",
		Ingredients: []model.Ingredient{
			{Name: "Maize", Quantity: 10, Unit: "kg", Cost: 0.3},
		},
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "layers", req.TargetGroup)

	req.Ingredients[0].Unit = "lb"
	assert.Error(t, req.Validate())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "email", Message: "invalid format"}
	assert.Equal(t, "email: invalid format", err.Error())
}
