package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
)

// UnassignedCourier is the display placeholder for orders whose courier
// reference cannot be resolved.
const UnassignedCourier = "Təyin olunmayıb"

// resolver indexes customers and couriers for display-field lookups.
// Customer entries are reachable under every identifier representation in
// circulation: the canonical prefixed id, the bare backend number, and a
// locally numbered id.
type resolver struct {
	customers map[string]*models.Customer
	couriers  map[int64]*models.Courier
}

func newResolver(customers []*models.Customer, couriers []*models.Courier) *resolver {
	r := &resolver{
		customers: make(map[string]*models.Customer, len(customers)*2),
		couriers:  make(map[int64]*models.Courier, len(couriers)),
	}
	for _, c := range customers {
		r.customers[c.ID] = c
		if c.BackendID != 0 {
			r.customers[strconv.FormatInt(c.BackendID, 10)] = c
		}
	}
	for _, c := range couriers {
		r.couriers[c.ID] = c
	}
	return r
}

func (r *resolver) customer(ref string) *models.Customer {
	if c, ok := r.customers[ref]; ok {
		return c
	}
	// A bare number may refer to a backend customer known here only under
	// its prefixed id, and vice versa.
	if c, ok := r.customers[models.BackendIDPrefix+ref]; ok {
		return c
	}
	if c, ok := r.customers[strings.TrimPrefix(ref, models.BackendIDPrefix)]; ok {
		return c
	}
	return nil
}

func (r *resolver) courier(id int64) *models.Courier {
	return r.couriers[id]
}

// enrich fills the display fields on an order in place.
func (r *resolver) enrich(o *models.Order) {
	if c := r.customer(o.CustomerID); c != nil {
		o.CustomerFullName = c.FullName()
		o.CustomerPhone = c.Phone
		o.CustomerAddress = c.Address
	}
	if c := r.courier(o.CourierID); c != nil {
		o.CourierFullName = c.FullName()
	} else {
		o.CourierFullName = UnassignedCourier
	}
}

// fetchResolver builds a resolver from the upstream directories. Either
// fetch failing degrades to an empty index; enrichment then falls back to
// placeholders instead of the whole read failing.
func fetchResolver(ctx context.Context, client backend.IClient, log logger.ILogger) *resolver {
	customers, err := client.FetchCustomers(ctx)
	if err != nil {
		log.Error("failed to fetch customers for enrichment", logger.Error(err))
	}
	couriers, err := client.FetchCouriers(ctx)
	if err != nil {
		log.Error("failed to fetch couriers for enrichment", logger.Error(err))
	}
	return newResolver(customers, couriers)
}

// remoteOrders fetches the backend order list and converts it to enriched
// orders. A transport or status failure yields an empty slice, never an
// error: callers must treat that as "no data available".
func remoteOrders(ctx context.Context, client backend.IClient, res *resolver, log logger.ILogger) []*models.Order {
	payloads, err := client.FetchOrders(ctx)
	if err != nil {
		log.Error("failed to fetch backend orders", logger.Error(err))
		return []*models.Order{}
	}

	orders := make([]*models.Order, 0, len(payloads))
	for i, p := range payloads {
		o := &models.Order{
			CustomerID: models.BackendIDPrefix + strconv.FormatInt(p.CustomerID, 10),
			CourierID:  p.CourierID,
			BidonCount: p.CarboyCount,
			Amount:     backend.Qepik(p.Price),
			Status:     models.OrderStatus(p.Status),
			Payment:    models.PaymentMethod(p.PaymentMethod),
			Source:     models.SourceBackend,
			Date:       dateOf(p.CreatedAt),
		}
		if o.Status == "" {
			o.Status = models.StatusPending
		}
		if p.ID != nil {
			o.ID = *p.ID
		} else {
			// The list endpoint omits ids; negative positional stand-ins are
			// used so they can never collide with a real backend id, and are
			// flagged so destructive calls are refused.
			o.ID = -int64(i + 1)
			o.Ephemeral = true
		}
		res.enrich(o)
		orders = append(orders, o)
	}
	return orders
}

// backendCustomerID extracts the upstream numeric id from either the
// canonical prefixed form or a bare number.
func backendCustomerID(ref string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(ref, models.BackendIDPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: customer %q has no backend id", models.ErrValidation, ref)
	}
	return id, nil
}

// dateOf reduces an upstream timestamp to the calendar-date key.
func dateOf(createdAt string) string {
	if len(createdAt) >= len(models.DateLayout) {
		return createdAt[:len(models.DateLayout)]
	}
	return createdAt
}
