package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aquadesk/config"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
)

// IClient is the upstream water-delivery backend. Every call is a plain
// REST round-trip; the backend owns the data, this service only caches
// and reconciles.
type IClient interface {
	FetchOrders(ctx context.Context) ([]OrderPayload, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) error
	UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) error
	DeleteOrder(ctx context.Context, id int64) error
	StartOrder(ctx context.Context, id int64) error
	CompleteOrder(ctx context.Context, id int64, req CompleteOrderRequest) error

	FetchCustomers(ctx context.Context) ([]*models.Customer, error)
	CreateCustomer(ctx context.Context, req CustomerRequest) error
	UpdateCustomer(ctx context.Context, backendID int64, req CustomerRequest) error
	DeleteCustomer(ctx context.Context, backendID int64) error

	FetchCouriers(ctx context.Context) ([]*models.Courier, error)

	Login(ctx context.Context, username, password string) (*models.Session, error)
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
	log     logger.ILogger
}

func NewClient(cfg config.Config, log logger.ILogger) IClient {
	return &client{
		baseURL: cfg.BackendBaseURL,
		token:   cfg.BackendToken,
		http: &http.Client{
			Timeout: time.Duration(cfg.BackendTimeoutSec) * time.Second,
		},
		log: log,
	}
}

// do performs one JSON round-trip. out may be nil for calls whose body is
// not interesting.
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend: %s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
