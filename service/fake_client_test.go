package service

import (
	"context"
	"errors"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/models"
)

// fakeClient is an in-memory stand-in for the upstream backend. Setting
// failAll makes every call return a transport-style error.
type fakeClient struct {
	orders    []backend.OrderPayload
	customers []*models.Customer
	couriers  []*models.Courier
	failAll   bool

	createdOrders   []backend.CreateOrderRequest
	deletedOrderIDs []int64
	startedOrderIDs []int64
	completed       map[int64]backend.CompleteOrderRequest
}

var errBackendDown = errors.New("backend: GET /: connection refused")

func (f *fakeClient) FetchOrders(context.Context) ([]backend.OrderPayload, error) {
	if f.failAll {
		return nil, errBackendDown
	}
	return f.orders, nil
}

func (f *fakeClient) CreateOrder(_ context.Context, req backend.CreateOrderRequest) error {
	if f.failAll {
		return errBackendDown
	}
	f.createdOrders = append(f.createdOrders, req)
	return nil
}

func (f *fakeClient) UpdateOrder(context.Context, int64, backend.UpdateOrderRequest) error {
	if f.failAll {
		return errBackendDown
	}
	return nil
}

func (f *fakeClient) DeleteOrder(_ context.Context, id int64) error {
	if f.failAll {
		return errBackendDown
	}
	f.deletedOrderIDs = append(f.deletedOrderIDs, id)
	return nil
}

func (f *fakeClient) StartOrder(_ context.Context, id int64) error {
	if f.failAll {
		return errBackendDown
	}
	f.startedOrderIDs = append(f.startedOrderIDs, id)
	return nil
}

func (f *fakeClient) CompleteOrder(_ context.Context, id int64, req backend.CompleteOrderRequest) error {
	if f.failAll {
		return errBackendDown
	}
	if f.completed == nil {
		f.completed = make(map[int64]backend.CompleteOrderRequest)
	}
	f.completed[id] = req
	return nil
}

func (f *fakeClient) FetchCustomers(context.Context) ([]*models.Customer, error) {
	if f.failAll {
		return nil, errBackendDown
	}
	return f.customers, nil
}

func (f *fakeClient) CreateCustomer(context.Context, backend.CustomerRequest) error {
	if f.failAll {
		return errBackendDown
	}
	return nil
}

func (f *fakeClient) UpdateCustomer(context.Context, int64, backend.CustomerRequest) error {
	if f.failAll {
		return errBackendDown
	}
	return nil
}

func (f *fakeClient) DeleteCustomer(context.Context, int64) error {
	if f.failAll {
		return errBackendDown
	}
	return nil
}

func (f *fakeClient) FetchCouriers(context.Context) ([]*models.Courier, error) {
	if f.failAll {
		return nil, errBackendDown
	}
	return f.couriers, nil
}

func (f *fakeClient) Login(context.Context, string, string) (*models.Session, error) {
	if f.failAll {
		return nil, errBackendDown
	}
	return &models.Session{Role: "admin", Token: "token"}, nil
}
