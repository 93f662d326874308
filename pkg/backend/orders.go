package backend

import (
	"context"
	"fmt"
	"net/http"
)

// OrderPayload is an order as the upstream returns it. The list endpoint
// has been observed to omit the id field, hence the pointer.
type OrderPayload struct {
	ID            *int64  `json:"id"`
	CustomerID    int64   `json:"customerId"`
	CourierID     int64   `json:"courierId"`
	CarboyCount   int     `json:"carboyCount"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	CreatedAt     string  `json:"createdAt"`
}

type CreateOrderRequest struct {
	CustomerID  int64 `json:"customerId"`
	CourierID   int64 `json:"courierId"`
	CarboyCount int   `json:"carboyCount"`
}

// UpdateOrderRequest deliberately carries the carboy count only: the
// upstream fails to parse date/time fields on this endpoint.
type UpdateOrderRequest struct {
	CarboyCount int `json:"carboyCount"`
}

type CompleteOrderRequest struct {
	CarboysDelivered int     `json:"carboysDelivered"`
	CarboysCollected int     `json:"carboysCollected"`
	PaymentAmount    float64 `json:"paymentAmount"`
	PaymentMethod    string  `json:"paymentMethod"`
}

func (c *client) FetchOrders(ctx context.Context) ([]OrderPayload, error) {
	var payloads []OrderPayload
	if err := c.do(ctx, http.MethodGet, "/orders/all", nil, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

func (c *client) CreateOrder(ctx context.Context, req CreateOrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders/add", req, nil)
}

func (c *client) UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/update/%d", id), req, nil)
}

func (c *client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/delete/%d", id), nil, nil)
}

func (c *client) StartOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/start/%d", id), nil, nil)
}

func (c *client) CompleteOrder(ctx context.Context, id int64, req CompleteOrderRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/complete/%d", id), req, nil)
}
