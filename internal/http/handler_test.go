//go:build !integration

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/guttosm/flock-service/internal/repository/memstore"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testFarmID     = "farm-1"
	farmToken      = "farm-token"
	otherFarmToken = "other-farm-token"
	noFarmToken    = "no-farm-token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuth accepts three tokens: one for testFarmID, one for another farm and
// one for a user without a farm.
func mockAuth(t *testing.T) *mocks.MockAuthService {
	auth := mocks.NewMockAuthService(t)
	auth.On("ValidateToken", mock.Anything, farmToken).
		Return(&dto.Claims{UserID: primitive.NewObjectID(), Email: "farmer@example.com", FarmID: testFarmID}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything, otherFarmToken).
		Return(&dto.Claims{UserID: primitive.NewObjectID(), Email: "other@example.com", FarmID: "farm-2"}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything, noFarmToken).
		Return(&dto.Claims{UserID: primitive.NewObjectID(), Email: "new@example.com"}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything, mock.Anything).
		Return(nil, service.ErrInvalidToken).Maybe()
	return auth
}

func testRouterConfig(t *testing.T) RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.AuthService = mockAuth(t)
	return cfg
}

// memoryServices builds the farm services over one in-memory store.
func memoryServices() Services {
	store := memstore.New()
	return Services{
		Batches:     service.NewBatchService(store, store.Batches(), store.Allocations()),
		Houses:      service.NewHouseService(store, store.Houses(), store.Allocations()),
		Allocations: service.NewAllocationService(store, store.Batches(), store.Houses(), store.Allocations()),
		Stock:       service.NewStockService(store.Stocks()),
		Production:  service.NewProductionService(store, store.Batches(), store.Productions()),
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	handler := NewHandler(memoryServices(), WithAudit(false))
	return NewRouter(handler, NewHealthHandler(), testRouterConfig(t))
}

func setupRouterWithMock(t *testing.T) (*gin.Engine, *mocks.MockAllocationService) {
	allocations := mocks.NewMockAllocationService(t)
	handler := NewHandler(Services{Allocations: allocations}, WithAudit(false))
	return NewRouter(handler, NewHealthHandler(), testRouterConfig(t)), allocations
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	assert.NotEmpty(t, envelope.RequestID)

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func createBatch(t *testing.T, router *gin.Engine, count int) model.Batch {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/v1/batches", farmToken, map[string]interface{}{
		"name":          "Layers March",
		"arrivalDate":   "2026-03-01T00:00:00Z",
		"ageAtArrival":  1,
		"chickenType":   "Isa Brown",
		"originalCount": count,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[model.Batch](t, w)
}

func createHouse(t *testing.T, router *gin.Engine, capacity *int) model.House {
	t.Helper()
	body := map[string]interface{}{"name": "House A", "houseType": model.HouseTypeCaged}
	if capacity != nil {
		body["capacity"] = *capacity
	}
	w := doRequest(router, http.MethodPost, "/api/v1/houses", farmToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[model.House](t, w)
}

func TestAllocationFlow(t *testing.T) {
	router := setupRouter(t)
	capacity := 100

	batch := createBatch(t, router, 200)
	assert.Equal(t, 200, batch.Quantity)
	houseA := createHouse(t, router, &capacity)
	houseB := createHouse(t, router, nil)

	// Allocate 60 birds into house A.
	w := doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
		BatchID: batch.ID, HouseID: houseA.ID, Quantity: 60,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	allocation := decodeData[model.Allocation](t, w)
	assert.Equal(t, 60, allocation.Quantity)

	// A second allocation to the same pair adds to the same record.
	w = doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
		BatchID: batch.ID, HouseID: houseA.ID, Quantity: 20,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	again := decodeData[model.Allocation](t, w)
	assert.Equal(t, allocation.ID, again.ID)
	assert.Equal(t, 80, again.Quantity)

	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 120, decodeData[model.Batch](t, w).Quantity)

	// House A has room for 20 more.
	w = doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
		BatchID: batch.ID, HouseID: houseA.ID, Quantity: 21,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Transfer 30 birds from A to B.
	w = doRequest(router, http.MethodPost, "/api/v1/allocations/transfer", farmToken, dto.TransferRequest{
		BatchID: batch.ID, FromHouseID: houseA.ID, ToHouseID: houseB.ID, Quantity: 30,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	transfer := decodeData[dto.TransferResponse](t, w)
	assert.Equal(t, 50, transfer.From.Quantity)
	assert.Equal(t, 30, transfer.To.Quantity)

	// Transfers leave the unallocated pool alone.
	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, 120, decodeData[model.Batch](t, w).Quantity)

	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID+"/allocations", farmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]model.Allocation](t, w), 2)

	// Setting an allocation to zero returns its birds to the batch.
	w = doRequest(router, http.MethodPatch, "/api/v1/allocations/"+transfer.To.ID, farmToken, `{"quantity": 0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, decodeData[model.Allocation](t, w).Quantity)

	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, 150, decodeData[model.Batch](t, w).Quantity)
}

func TestAllocationErrors(t *testing.T) {
	router := setupRouter(t)
	batch := createBatch(t, router, 10)
	house := createHouse(t, router, nil)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "missing token",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          "garbage",
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "caller without farm",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          noFarmToken,
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "malformed body",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           `{"batchId":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative quantity",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: -5},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "more birds than unallocated",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 11},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown batch",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           dto.AllocateRequest{BatchID: "missing", HouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "batch of another farm",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          otherFarmToken,
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "transfer to same house",
			method:         http.MethodPost,
			path:           "/api/v1/allocations/transfer",
			token:          farmToken,
			body:           dto.TransferRequest{BatchID: batch.ID, FromHouseID: house.ID, ToHouseID: house.ID, Quantity: 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "transfer without source allocation",
			method:         http.MethodPost,
			path:           "/api/v1/allocations/transfer",
			token:          farmToken,
			body:           dto.TransferRequest{BatchID: batch.ID, FromHouseID: house.ID, ToHouseID: "other", Quantity: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "update without quantity",
			method:         http.MethodPatch,
			path:           "/api/v1/allocations/some-id",
			token:          farmToken,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown allocation",
			method:         http.MethodGet,
			path:           "/api/v1/allocations/missing",
			token:          farmToken,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			resp := decodeError(t, w)
			assert.NotEmpty(t, resp.Error)
		})
	}

	// Rejected requests leave the batch untouched.
	w := doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, 10, decodeData[model.Batch](t, w).Quantity)
}

func TestAllocate_ServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"concurrent update", service.ErrConcurrentUpdate, http.StatusConflict},
		{"capacity exceeded", service.ErrCapacityExceeded, http.StatusBadRequest},
		{"house not found", service.ErrHouseNotFound, http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, allocations := setupRouterWithMock(t)
			allocations.On("Allocate", mock.Anything, testFarmID, service.AllocateInput{
				BatchID: "b-1", HouseID: "h-1", Quantity: 5,
			}).Return(nil, tt.err).Once()

			w := doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
				BatchID: "b-1", HouseID: "h-1", Quantity: 5,
			})
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAllocate_PassesCallerFarm(t *testing.T) {
	router, allocations := setupRouterWithMock(t)
	allocations.On("Allocate", mock.Anything, "farm-2", mock.AnythingOfType("service.AllocateInput")).
		Return(&model.Allocation{ID: "a-1", BatchID: "b-1", HouseID: "h-1", Quantity: 5}, nil).Once()

	w := doRequest(router, http.MethodPost, "/api/v1/allocations", otherFarmToken, dto.AllocateRequest{
		BatchID: "b-1", HouseID: "h-1", Quantity: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "a-1", decodeData[model.Allocation](t, w).ID)
}

func TestBatchAndHouseLifecycle(t *testing.T) {
	router := setupRouter(t)
	capacity := 50

	batch := createBatch(t, router, 40)
	house := createHouse(t, router, &capacity)

	w := doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
		BatchID: batch.ID, HouseID: house.ID, Quantity: 30,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	allocation := decodeData[model.Allocation](t, w)

	// Capacity cannot drop below what the house holds.
	w = doRequest(router, http.MethodPatch, "/api/v1/houses/"+house.ID, farmToken, `{"capacity": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPatch, "/api/v1/houses/"+house.ID, farmToken, `{"capacity": 30, "name": "House Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "House Z", decodeData[model.House](t, w).Name)

	w = doRequest(router, http.MethodGet, "/api/v1/houses", farmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]model.House](t, w), 1)

	w = doRequest(router, http.MethodGet, "/api/v1/batches", otherFarmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeData[[]model.Batch](t, w))

	// Birds still housed keep the batch and the house alive.
	w = doRequest(router, http.MethodDelete, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doRequest(router, http.MethodDelete, "/api/v1/houses/"+house.ID, farmToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodPatch, "/api/v1/allocations/"+allocation.ID, farmToken, `{"quantity": 0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockRoutes(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/stocks", farmToken, dto.StockRequest{
		Item: "Layer mash", Category: "Feed", Quantity: 5, Threshold: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	low := decodeData[model.Stock](t, w)

	w = doRequest(router, http.MethodPost, "/api/v1/stocks", farmToken, dto.StockRequest{
		Item: "Drinkers", Category: "Equipment", Quantity: 40, Threshold: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/stocks/low", farmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeData[[]model.Stock](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)

	w = doRequest(router, http.MethodPost, "/api/v1/stocks", farmToken, `{"item": "Grit", "category": "Toys", "quantity": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/stocks/"+low.ID, farmToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/stocks/"+low.ID, farmToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductionRoutes(t *testing.T) {
	router := setupRouter(t)
	batch := createBatch(t, router, 100)

	w := doRequest(router, http.MethodPost, "/api/v1/production", farmToken, map[string]interface{}{
		"batchId":           batch.ID,
		"date":              "2026-03-10T00:00:00Z",
		"numberOfDeadBirds": 2,
		"numberOfTrays":     3,
		"extraEggs":         4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decodeData[dto.ProductionResponse](t, w)
	assert.Equal(t, 3*model.EggsPerTray+4, record.NumberOfEggsCollected)

	// The dead birds count as batch losses.
	w = doRequest(router, http.MethodGet, "/api/v1/batches/"+batch.ID, farmToken, nil)
	assert.Equal(t, 2, decodeData[model.Batch](t, w).Dead)

	w = doRequest(router, http.MethodPost, "/api/v1/production", farmToken, map[string]interface{}{
		"batchId":               batch.ID,
		"date":                  "2026-03-11T00:00:00Z",
		"numberOfEggsCollected": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/production?batchId="+batch.ID, farmToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]dto.ProductionResponse](t, w), 1)
}

func TestUnregisteredServicesHaveNoRoutes(t *testing.T) {
	router := setupRouter(t)

	// Farm, formula and audit services are not configured in this router.
	w := doRequest(router, http.MethodGet, "/api/v1/feed-formulas", farmToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/farms/current", farmToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/audit", farmToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
