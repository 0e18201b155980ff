//go:build contract

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPI_ContractCompliance validates that API responses match the documented contract.
func TestAPI_ContractCompliance(t *testing.T) {
	router := setupRouter(t)
	batch := createBatch(t, router, 100)
	house := createHouse(t, router, nil)

	tests := []struct {
		name             string
		method           string
		path             string
		token            string
		body             interface{}
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "POST /api/v1/allocations - Created 201",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           dto.AllocateRequest{BatchID: batch.ID, HouseID: house.ID, Quantity: 10},
			expectedStatus: http.StatusCreated,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.RequestID, "Response must include request_id")
				assert.NotZero(t, resp.Timestamp, "Response must include timestamp")

				allocation, ok := resp.Data.(map[string]interface{})
				require.True(t, ok, "data must be an object")
				for _, field := range []string{"id", "batchId", "houseId", "quantity", "version", "createdAt", "updatedAt"} {
					assert.Contains(t, allocation, field)
				}
				assert.Equal(t, float64(10), allocation["quantity"])
			},
		},
		{
			name:           "GET /api/v1/batches/:id - Success 200",
			method:         http.MethodGet,
			path:           "/api/v1/batches/" + batch.ID,
			token:          farmToken,
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

				data, ok := resp.Data.(map[string]interface{})
				require.True(t, ok)
				for _, field := range []string{"id", "farmId", "name", "arrivalDate", "ageAtArrival", "age", "chickenType", "originalCount", "quantity", "dead", "culled", "offlaid", "isArchived"} {
					assert.Contains(t, data, field)
				}
				assert.Equal(t, float64(90), data["quantity"])
			},
		},
		{
			name:           "POST /api/v1/allocations - Bad Request 400",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			body:           `{"batchId": "b-1", "houseId": "h-1", "quantity": -1}`,
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
				assert.NotEmpty(t, resp.Message)
				assert.NotEmpty(t, resp.RequestID)
				assert.NotZero(t, resp.Timestamp)
			},
		},
		{
			name:           "GET /api/v1/houses/:id - Not Found 404",
			method:         http.MethodGet,
			path:           "/api/v1/houses/missing",
			token:          farmToken,
			expectedStatus: http.StatusNotFound,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
			},
		},
		{
			name:           "GET /api/v1/batches/:id - other farm is Not Found 404",
			method:         http.MethodGet,
			path:           "/api/v1/batches/" + batch.ID,
			token:          otherFarmToken,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GET /api/v1/batches - no farm is Forbidden 403",
			method:         http.MethodGet,
			path:           "/api/v1/batches",
			token:          noFarmToken,
			expectedStatus: http.StatusForbidden,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Error)
			},
		},
		{
			name:           "DELETE /api/v1/houses/:id - Conflict 409",
			method:         http.MethodDelete,
			path:           "/api/v1/houses/" + house.ID,
			token:          farmToken,
			expectedStatus: http.StatusConflict,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeConflict, decodeError(t, w).Error)
			},
		},
		{
			name:           "GET /api/v1/batches - Unauthorized 401",
			method:         http.MethodGet,
			path:           "/api/v1/batches",
			expectedStatus: http.StatusUnauthorized,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, w).Error)
			},
		},
		{
			name:           "GET /healthz - Success 200",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "ok", resp["status"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Response must include X-Request-ID header")

			if tt.validateResponse != nil {
				tt.validateResponse(t, w)
			}
		})
	}
}

// TestAPI_TransferSchema validates the transfer response carries both sides of the move.
func TestAPI_TransferSchema(t *testing.T) {
	router := setupRouter(t)
	batch := createBatch(t, router, 50)
	from := createHouse(t, router, nil)
	to := createHouse(t, router, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/allocations", farmToken, dto.AllocateRequest{
		BatchID: batch.ID, HouseID: from.ID, Quantity: 50,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, http.MethodPost, "/api/v1/allocations/transfer", farmToken, dto.TransferRequest{
		BatchID: batch.ID, FromHouseID: from.ID, ToHouseID: to.ID, Quantity: 20,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data map[string]map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Data, "from")
	require.Contains(t, resp.Data, "to")
	assert.Equal(t, from.ID, resp.Data["from"]["houseId"])
	assert.Equal(t, float64(30), resp.Data["from"]["quantity"])
	assert.Equal(t, to.ID, resp.Data["to"]["houseId"])
	assert.Equal(t, float64(20), resp.Data["to"]["quantity"])
}

// TestAPI_Headers validates required headers are present.
func TestAPI_Headers(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name            string
		method          string
		path            string
		token           string
		body            interface{}
		expectedHeaders map[string]string
	}{
		{
			name:   "X-Request-ID header present",
			method: http.MethodGet,
			path:   "/api/v1/batches",
			token:  farmToken,
			expectedHeaders: map[string]string{
				"X-Request-ID": "",
			},
		},
		{
			name:   "Health endpoint headers",
			method: http.MethodGet,
			path:   "/healthz",
			expectedHeaders: map[string]string{
				"X-Request-ID": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.token, tt.body)

			for headerName, expectedValue := range tt.expectedHeaders {
				actualValue := w.Header().Get(headerName)
				if expectedValue == "" {
					assert.NotEmpty(t, actualValue, "Header %s must be present", headerName)
				} else {
					assert.Equal(t, expectedValue, actualValue, "Header %s mismatch", headerName)
				}
			}
		})
	}
}
