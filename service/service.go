package service

import (
	"aquadesk/pkg/backend"
	"aquadesk/pkg/events"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/storage"
)

type IServiceManager interface {
	Order() OrderService
	Customer() CustomerService
	Report() ReportService
	Auth() AuthService
}

type service struct {
	orderService    OrderService
	customerService CustomerService
	reportService   ReportService
	authService     AuthService
}

func New(cache storage.IOrderCache, client backend.IClient, producer events.IProducer, m *metrics.Metrics, log logger.ILogger) IServiceManager {
	return &service{
		orderService:    NewOrderService(cache, client, producer, m, log),
		customerService: NewCustomerService(client, m, log),
		reportService:   NewReportService(cache, client, log),
		authService:     NewAuthService(client, log),
	}
}

func (s *service) Order() OrderService {
	return s.orderService
}

func (s *service) Customer() CustomerService {
	return s.customerService
}

func (s *service) Report() ReportService {
	return s.reportService
}

func (s *service) Auth() AuthService {
	return s.authService
}
