package service

import (
	"context"
	"fmt"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/events"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/pkg/models"
	"aquadesk/storage"
)

// NewOrderInput is a create request for either side (local cache or
// backend passthrough).
type NewOrderInput struct {
	CustomerID string `json:"customer_id"`
	CourierID  int64  `json:"courier_id"`
	BidonCount int    `json:"bidon_count"`
}

type OrderService interface {
	LocalByDate(date string) []*models.Order
	LocalDates() []string
	AddLocal(ctx context.Context, date string, input NewOrderInput) (*models.Order, error)
	ReplaceLocal(ctx context.Context, date string, orders []*models.Order) error
	UpdateLocal(ctx context.Context, date string, id int64, patch models.OrderPatch) (*models.Order, error)
	RemoveLocal(ctx context.Context, date string, id int64) error
	CompleteLocal(ctx context.Context, date string, id int64, report models.DeliveryReport) (*models.Order, error)

	// Remote returns the enriched backend order list. Failures degrade to
	// an empty slice; an empty result means "no data available", not
	// "definitely zero orders".
	Remote(ctx context.Context) []*models.Order
	CreateRemote(ctx context.Context, input NewOrderInput) error
	UpdateRemote(ctx context.Context, id int64, bidonCount int) error
	DeleteRemote(ctx context.Context, id int64) error
	StartRemote(ctx context.Context, id int64) error
	CompleteRemote(ctx context.Context, id int64, report models.DeliveryReport) error
}

type orderService struct {
	cache    storage.IOrderCache
	client   backend.IClient
	producer events.IProducer
	metrics  *metrics.Metrics
	log      logger.ILogger
}

func NewOrderService(cache storage.IOrderCache, client backend.IClient, producer events.IProducer, m *metrics.Metrics, log logger.ILogger) OrderService {
	return &orderService{
		cache:    cache,
		client:   client,
		producer: producer,
		metrics:  m,
		log:      log,
	}
}

func (s *orderService) LocalByDate(date string) []*models.Order {
	return s.cache.GetByDate(date)
}

func (s *orderService) LocalDates() []string {
	return s.cache.Dates()
}

// ReplaceLocal swaps out a whole date bucket, renumbering the orders. Used
// by bulk edits that rewrite a day's plan in one shot.
func (s *orderService) ReplaceLocal(ctx context.Context, date string, orders []*models.Order) error {
	if date == "" {
		return fmt.Errorf("%w: date is required", models.ErrValidation)
	}

	res := fetchResolver(ctx, s.client, s.log)
	for i, o := range orders {
		if o.BidonCount <= 0 {
			return fmt.Errorf("%w: bidon count must be positive", models.ErrValidation)
		}
		o.ID = int64(i + 1)
		o.Date = date
		o.Source = models.SourceLocal
		if o.Status == "" {
			o.Status = models.StatusPending
		}
		res.enrich(o)
	}
	return s.cache.ReplaceDate(ctx, date, orders)
}

func (s *orderService) AddLocal(ctx context.Context, date string, input NewOrderInput) (*models.Order, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", models.ErrValidation)
	}
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	res := fetchResolver(ctx, s.client, s.log)
	customer := res.customer(input.CustomerID)
	if customer == nil {
		return nil, fmt.Errorf("%w: unknown customer %q", models.ErrValidation, input.CustomerID)
	}

	order := &models.Order{
		CustomerID: input.CustomerID,
		CourierID:  input.CourierID,
		BidonCount: input.BidonCount,
		Amount:     int64(input.BidonCount) * customer.PricePerBidon,
	}
	res.enrich(order)

	order, err := s.cache.Add(ctx, date, order)
	if err != nil {
		return nil, err
	}

	s.metrics.OrdersCreated.WithLabelValues(string(models.SourceLocal)).Inc()
	s.publish(events.OrderCreated, order)
	return order, nil
}

func (s *orderService) UpdateLocal(ctx context.Context, date string, id int64, patch models.OrderPatch) (*models.Order, error) {
	if patch.BidonCount != nil {
		if *patch.BidonCount <= 0 {
			return nil, fmt.Errorf("%w: bidon count must be positive", models.ErrValidation)
		}
		// Keep the amount derivable from count and the customer's price.
		// The stored amount is not a safe base: completion may have
		// overridden it with the amount actually paid.
		if patch.Amount == nil {
			if existing := findByID(s.cache.GetByDate(date), id); existing != nil {
				if c := fetchResolver(ctx, s.client, s.log).customer(existing.CustomerID); c != nil {
					amount := int64(*patch.BidonCount) * c.PricePerBidon
					patch.Amount = &amount
				} else if existing.BidonCount > 0 {
					// Directory unavailable; fall back to the stored ratio.
					perBidon := existing.Amount / int64(existing.BidonCount)
					amount := int64(*patch.BidonCount) * perBidon
					patch.Amount = &amount
				}
			}
		}
	}
	return s.cache.Update(ctx, date, id, patch)
}

func (s *orderService) RemoveLocal(ctx context.Context, date string, id int64) error {
	order := findByID(s.cache.GetByDate(date), id)
	if err := s.cache.Remove(ctx, date, id); err != nil {
		return err
	}
	if order != nil {
		s.metrics.OrdersDeleted.WithLabelValues(string(models.SourceLocal)).Inc()
		s.publish(events.OrderDeleted, order)
	}
	return nil
}

func (s *orderService) CompleteLocal(ctx context.Context, date string, id int64, report models.DeliveryReport) (*models.Order, error) {
	if report.Payment == "" {
		return nil, fmt.Errorf("%w: payment method is required", models.ErrValidation)
	}

	status := models.StatusCompleted
	patch := models.OrderPatch{Status: &status, Payment: &report.Payment}
	if report.AmountPaid > 0 {
		patch.Amount = &report.AmountPaid
	}

	order, err := s.cache.Update(ctx, date, id, patch)
	if err != nil || order == nil {
		return order, err
	}

	s.metrics.OrdersCompleted.WithLabelValues(string(report.Payment)).Inc()
	s.metrics.RevenueQepik.Add(float64(order.Amount))
	s.publish(events.OrderCompleted, order)
	return order, nil
}

func (s *orderService) Remote(ctx context.Context) []*models.Order {
	res := fetchResolver(ctx, s.client, s.log)
	return remoteOrders(ctx, s.client, res, s.log)
}

func (s *orderService) CreateRemote(ctx context.Context, input NewOrderInput) error {
	if err := validateOrderInput(input); err != nil {
		return err
	}

	customerID, err := backendCustomerID(input.CustomerID)
	if err != nil {
		return err
	}
	err = s.client.CreateOrder(ctx, backend.CreateOrderRequest{
		CustomerID:  customerID,
		CourierID:   input.CourierID,
		CarboyCount: input.BidonCount,
	})
	if err != nil {
		s.metrics.BackendFailures.WithLabelValues("create_order").Inc()
		return err
	}
	s.metrics.OrdersCreated.WithLabelValues(string(models.SourceBackend)).Inc()
	return nil
}

func (s *orderService) UpdateRemote(ctx context.Context, id int64, bidonCount int) error {
	if bidonCount <= 0 {
		return fmt.Errorf("%w: bidon count must be positive", models.ErrValidation)
	}
	order, err := s.findRemote(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.UpdateOrder(ctx, order.ID, backend.UpdateOrderRequest{CarboyCount: bidonCount}); err != nil {
		s.metrics.BackendFailures.WithLabelValues("update_order").Inc()
		return err
	}
	return nil
}

func (s *orderService) DeleteRemote(ctx context.Context, id int64) error {
	order, err := s.findRemote(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.DeleteOrder(ctx, order.ID); err != nil {
		s.metrics.BackendFailures.WithLabelValues("delete_order").Inc()
		return err
	}
	s.metrics.OrdersDeleted.WithLabelValues(string(models.SourceBackend)).Inc()
	s.publish(events.OrderDeleted, order)
	return nil
}

func (s *orderService) StartRemote(ctx context.Context, id int64) error {
	order, err := s.findRemote(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.StartOrder(ctx, order.ID); err != nil {
		s.metrics.BackendFailures.WithLabelValues("start_order").Inc()
		return err
	}
	return nil
}

func (s *orderService) CompleteRemote(ctx context.Context, id int64, report models.DeliveryReport) error {
	if report.Payment == "" {
		return fmt.Errorf("%w: payment method is required", models.ErrValidation)
	}
	order, err := s.findRemote(ctx, id)
	if err != nil {
		return err
	}

	err = s.client.CompleteOrder(ctx, order.ID, backend.CompleteOrderRequest{
		CarboysDelivered: report.BidonsDelivered,
		CarboysCollected: report.BidonsCollected,
		PaymentAmount:    backend.Manat(report.AmountPaid),
		PaymentMethod:    string(report.Payment),
	})
	if err != nil {
		s.metrics.BackendFailures.WithLabelValues("complete_order").Inc()
		return err
	}

	s.metrics.OrdersCompleted.WithLabelValues(string(report.Payment)).Inc()
	s.metrics.RevenueQepik.Add(float64(order.Amount))
	s.publish(events.OrderCompleted, order)
	return nil
}

// findRemote locates a backend order by the id the caller saw in a prior
// listing. Orders whose id is a positional stand-in are refused for any
// mutation: the call would hit an arbitrary record upstream.
func (s *orderService) findRemote(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range s.Remote(ctx) {
		if o.ID != id {
			continue
		}
		if o.Ephemeral {
			s.log.Warning("refusing mutation of order without stable backend id", logger.Int64("id", id))
			return nil, models.ErrEphemeralID
		}
		return o, nil
	}
	return nil, models.ErrNotFound
}

func (s *orderService) publish(eventType events.EventType, order *models.Order) {
	err := s.producer.PublishOrderEvent(events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Date:       order.Date,
		CustomerID: order.CustomerID,
		Amount:     order.Amount,
		Source:     order.Source,
	})
	if err != nil {
		s.log.Warning("order event not published", logger.Error(err))
	}
}

func validateOrderInput(input NewOrderInput) error {
	if input.CustomerID == "" {
		return fmt.Errorf("%w: customer is required", models.ErrValidation)
	}
	if input.BidonCount <= 0 {
		return fmt.Errorf("%w: bidon count must be positive", models.ErrValidation)
	}
	return nil
}

func findByID(orders []*models.Order, id int64) *models.Order {
	for _, o := range orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
