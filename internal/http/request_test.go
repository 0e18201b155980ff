//go:build !integration

package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantInvalid bool
	}{
		{name: "valid allocation", body: `{"batchId": "b-1", "houseId": "h-1", "quantity": 251}`},
		{name: "malformed json", body: `{"batchId": `, wantErr: true},
		{name: "missing required field", body: `{"houseId": "h-1", "quantity": 5}`, wantErr: true},
		{name: "negative quantity fails validation", body: `{"batchId": "b-1", "houseId": "h-1", "quantity": -3}`, wantErr: true, wantInvalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := builderContext(http.MethodPost, "/api/v1/allocations", tt.body)

			req, err := DecodeRequest[dto.AllocateRequest](c)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, dto.AllocateRequest{BatchID: "b-1", HouseID: "h-1", Quantity: 251}, *req)
				return
			}

			assert.Error(t, err)
			assert.Nil(t, req)
			var validationErr *dto.ValidationError
			assert.Equal(t, tt.wantInvalid, errors.As(err, &validationErr))
		})
	}
}
