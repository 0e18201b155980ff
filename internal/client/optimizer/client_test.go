//go:build !integration

package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.OptimizerConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestAPIClient_Optimize(t *testing.T) {
	req := Request{
		FarmID:               "farm-1",
		AvailableIngredients: []model.Ingredient{{Name: "Maize", Quantity: 50, Unit: model.UnitKilogram, Cost: 0.35}},
		TargetNutrition:      model.Nutrition{Protein: 16},
		TargetGroup:          model.TargetLayers,
	}

	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
		temporary  bool
	}{
		{
			name:   "returns optimizer body unchanged",
			status: http.StatusOK,
			body:   `{"total_cost":17.5,"ingredients":[]}`,
		},
		{
			name:       "maps client error",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":"bird_age must be positive"}`,
			wantErr:    true,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "maps server error as temporary",
			status:     http.StatusInternalServerError,
			body:       `{"detail":"infeasible"}`,
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
			temporary:  true,
		},
		{
			name:       "rejects invalid JSON",
			status:     http.StatusOK,
			body:       `not json`,
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
			temporary:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/optimize", r.URL.Path)
				raw, _ := io.ReadAll(r.Body)
				var got Request
				require.NoError(t, json.Unmarshal(raw, &got))
				assert.Equal(t, "farm-1", got.FarmID)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			out, err := client.Optimize(context.Background(), req)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.JSONEq(t, tt.body, string(out))
				return
			}
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.temporary, apiErr.Temporary())
		})
	}
}

func TestAPIClient_NotConfigured(t *testing.T) {
	client := NewClient(config.OptimizerConfig{})

	_, err := client.Optimize(context.Background(), Request{})

	assert.ErrorIs(t, err, ErrNotConfigured)
}
