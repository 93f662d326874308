package backend

import (
	"context"
	"fmt"
	"net/http"

	"aquadesk/pkg/models"
)

// CustomerRequest is the mutation body for customer create/update calls.
type CustomerRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	PhoneNumber    string  `json:"phoneNumber"`
	Address        string  `json:"address"`
	PricePerCarboy float64 `json:"pricePerCarboy"`
}

func (c *client) FetchCustomers(ctx context.Context) ([]*models.Customer, error) {
	var raws []RawCustomer
	if err := c.do(ctx, http.MethodGet, "/customers/all", nil, &raws); err != nil {
		return nil, err
	}

	customers := make([]*models.Customer, 0, len(raws))
	for _, raw := range raws {
		customers = append(customers, NormalizeCustomer(raw))
	}
	return customers, nil
}

func (c *client) CreateCustomer(ctx context.Context, req CustomerRequest) error {
	return c.do(ctx, http.MethodPost, "/customers/add", req, nil)
}

func (c *client) UpdateCustomer(ctx context.Context, backendID int64, req CustomerRequest) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/customers/update/%d", backendID), req, nil)
}

func (c *client) DeleteCustomer(ctx context.Context, backendID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/delete/%d", backendID), nil, nil)
}
