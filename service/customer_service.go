package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/pkg/models"
)

// CustomerInput is a customer create/update form. The price arrives in
// qepik; validation runs fully before any backend call.
type CustomerInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PricePerBidon int64  `json:"price_per_bidon"`
}

type CustomerService interface {
	// List returns the normalized customer directory. Read failures
	// degrade to an empty list.
	List(ctx context.Context) []*models.Customer
	Create(ctx context.Context, input CustomerInput) error
	Update(ctx context.Context, id string, input CustomerInput) error
	Delete(ctx context.Context, id string) error

	Couriers(ctx context.Context) []*models.Courier
}

type customerService struct {
	client  backend.IClient
	metrics *metrics.Metrics
	log     logger.ILogger
}

func NewCustomerService(client backend.IClient, m *metrics.Metrics, log logger.ILogger) CustomerService {
	return &customerService{client: client, metrics: m, log: log}
}

func (s *customerService) List(ctx context.Context) []*models.Customer {
	customers, err := s.client.FetchCustomers(ctx)
	if err != nil {
		s.log.Error("failed to fetch customers", logger.Error(err))
		s.metrics.BackendFailures.WithLabelValues("fetch_customers").Inc()
		return []*models.Customer{}
	}
	return customers
}

func (s *customerService) Couriers(ctx context.Context) []*models.Courier {
	couriers, err := s.client.FetchCouriers(ctx)
	if err != nil {
		s.log.Error("failed to fetch couriers", logger.Error(err))
		s.metrics.BackendFailures.WithLabelValues("fetch_couriers").Inc()
		return []*models.Courier{}
	}
	return couriers
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) error {
	phone, err := s.validate(ctx, input, "")
	if err != nil {
		return err
	}

	err = s.client.CreateCustomer(ctx, backend.CustomerRequest{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhoneNumber:    phone,
		Address:        input.Address,
		PricePerCarboy: backend.Manat(input.PricePerBidon),
	})
	if err != nil {
		s.metrics.BackendFailures.WithLabelValues("create_customer").Inc()
	}
	return err
}

func (s *customerService) Update(ctx context.Context, id string, input CustomerInput) error {
	backendID, err := backendCustomerID(id)
	if err != nil {
		return err
	}
	phone, err := s.validate(ctx, input, id)
	if err != nil {
		return err
	}

	err = s.client.UpdateCustomer(ctx, backendID, backend.CustomerRequest{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhoneNumber:    phone,
		Address:        input.Address,
		PricePerCarboy: backend.Manat(input.PricePerBidon),
	})
	if err != nil {
		s.metrics.BackendFailures.WithLabelValues("update_customer").Inc()
	}
	return err
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	backendID, err := backendCustomerID(id)
	if err != nil {
		return err
	}
	if err := s.client.DeleteCustomer(ctx, backendID); err != nil {
		s.metrics.BackendFailures.WithLabelValues("delete_customer").Inc()
		return err
	}
	return nil
}

// validate checks the form and returns the normalized phone. selfID
// excludes the customer being updated from the uniqueness check.
func (s *customerService) validate(ctx context.Context, input CustomerInput, selfID string) (string, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return "", fmt.Errorf("%w: first name is required", models.ErrValidation)
	}
	if input.PricePerBidon <= 0 {
		return "", fmt.Errorf("%w: price per bidon must be positive", models.ErrValidation)
	}

	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return "", err
	}

	for _, existing := range s.List(ctx) {
		if existing.ID == selfID {
			continue
		}
		if normalized, err := NormalizePhone(existing.Phone); err == nil && normalized == phone {
			return "", models.ErrDuplicatePhone
		}
	}
	return phone, nil
}

// NormalizePhone brings a phone number to the +994XXXXXXXXX form.
// Accepted inputs: full international form, 994-prefixed, 0-prefixed
// national form, or a bare 9-digit subscriber number.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	hasPlus := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '+' && digits.Len() == 0 && !hasPlus:
			hasPlus = true
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separators are ignored
		default:
			return "", fmt.Errorf("%w: invalid phone %q", models.ErrValidation, raw)
		}
	}

	num := digits.String()
	switch {
	case strings.HasPrefix(num, "994") && len(num) == 12:
		return "+" + num, nil
	case strings.HasPrefix(num, "0") && len(num) == 10:
		return "+994" + num[1:], nil
	case !hasPlus && len(num) == 9:
		return "+994" + num, nil
	}
	return "", fmt.Errorf("%w: invalid phone %q", models.ErrValidation, raw)
}
