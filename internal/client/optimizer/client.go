// Package optimizer is a client for the external feed formula optimizer.
package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/domain/model"
)

// ErrNotConfigured is returned when no optimizer URL is configured.
var ErrNotConfigured = errors.New("feed optimizer url not configured")

// Client computes optimized feed formulas.
type Client interface {
	Optimize(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request is the payload posted to the optimizer.
type Request struct {
	FarmID               string             `json:"farmId"`
	AvailableIngredients []model.Ingredient `json:"availableIngredients"`
	TargetNutrition      model.Nutrition    `json:"targetNutrition"`
	TargetGroup          string             `json:"targetGroup"`
	Constraints          map[string]any     `json:"constraints,omitempty"`
}

// Error is a non-2xx answer from the optimizer.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("feed optimizer error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying later could succeed.
func (e *Error) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type apiError struct {
	Detail  any    `json:"detail"`
	Message string `json:"message"`
}

func (a *apiError) text() string {
	if a.Message != "" {
		return a.Message
	}
	if a.Detail != nil {
		return fmt.Sprint(a.Detail)
	}
	return ""
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	configured bool
}

// NewClient builds an optimizer client from configuration.
func NewClient(cfg config.OptimizerConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(200 * time.Millisecond)

	return &APIClient{
		httpClient: restyClient,
		configured: base != "",
	}
}

// Optimize posts req to /optimize and returns the optimizer's JSON answer unchanged.
func (c *APIClient) Optimize(ctx context.Context, req Request) (json.RawMessage, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post("/optimize")
	if err != nil {
		return nil, fmt.Errorf("call feed optimizer: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: apiErr.text()}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, &Error{StatusCode: http.StatusBadGateway, Message: "optimizer returned invalid JSON"}
	}
	return json.RawMessage(body), nil
}
