package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/storage"
	"aquadesk/storage/cache"
)

func newTestCache(t *testing.T) storage.IOrderCache {
	t.Helper()
	snaps, err := cache.NewFileSnapshots(t.TempDir())
	require.NoError(t, err)
	return cache.NewOrderCache(context.Background(), snaps, logger.New("test", "error"))
}

func ptr[T any](v T) *T { return &v }

func testCustomers() []*models.Customer {
	return []*models.Customer{
		{ID: "srv-1", BackendID: 1, FirstName: "Ali", LastName: "Mammadov", Phone: "+994501111111", Address: "Nizami 5", PricePerBidon: 350},
		{ID: "srv-2", BackendID: 2, FirstName: "Leyla", LastName: "Aliyeva", Phone: "+994502222222", Address: "Füzuli 3", PricePerBidon: 400},
	}
}

func testCouriers() []*models.Courier {
	return []*models.Courier{
		{ID: 10, FirstName: "Vugar", LastName: "Hasanov", Phone: "+994553334455"},
	}
}

func TestBuildMergesRemoteAndLocal(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(100)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "PENDING", CreatedAt: "2026-08-30T08:00:00"},
		},
	}
	c := newTestCache(t)
	_, err := c.Add(context.Background(), "2026-08-30",
		&models.Order{CustomerID: "srv-2", CourierID: 10, BidonCount: 1, Amount: 400})
	require.NoError(t, err)

	svc := NewReportService(c, client, logger.New("test", "error"))
	report := svc.Build(context.Background(), ReportFilter{})

	require.Len(t, report.Groups, 1)
	assert.Equal(t, "2026-08-30", report.Groups[0].Date)
	assert.Len(t, report.Groups[0].Orders, 2)
	assert.Equal(t, 2, report.Stats.Total)
	assert.Equal(t, 2, report.Stats.Pending)
}

func TestBuildDeduplicatesPreferringRemote(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(100)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "PENDING", CreatedAt: "2026-08-30T08:00:00"},
		},
	}
	c := newTestCache(t)
	// Same customer, date, courier and bidon count as the backend copy.
	_, err := c.Add(context.Background(), "2026-08-30",
		&models.Order{CustomerID: "srv-1", CourierID: 10, BidonCount: 2, Amount: 700})
	require.NoError(t, err)

	svc := NewReportService(c, client, logger.New("test", "error"))
	report := svc.Build(context.Background(), ReportFilter{})

	require.Equal(t, 1, report.Stats.Total)
	assert.Equal(t, models.SourceBackend, report.Groups[0].Orders[0].Source)
	assert.Equal(t, int64(100), report.Groups[0].Orders[0].ID)
}

func TestBuildDegradesToLocalOnBackendFailure(t *testing.T) {
	client := &fakeClient{failAll: true}
	c := newTestCache(t)
	_, err := c.Add(context.Background(), "2026-08-30",
		&models.Order{CustomerID: "srv-1", CourierID: 10, BidonCount: 2, Amount: 700})
	require.NoError(t, err)

	svc := NewReportService(c, client, logger.New("test", "error"))
	report := svc.Build(context.Background(), ReportFilter{})

	require.Equal(t, 1, report.Stats.Total)
	local := report.Groups[0].Orders[0]
	assert.Equal(t, models.SourceLocal, local.Source)
	// Enrichment has no directory to draw from; the courier placeholder
	// still applies.
	assert.Empty(t, local.CustomerFullName)
	assert.Equal(t, UnassignedCourier, local.CourierFullName)
}

func TestBuildStatsRevenueCountsCompletedOnly(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(1)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "COMPLETED", CreatedAt: "2026-08-30T08:00:00"},
			{ID: ptr(int64(2)), CustomerID: 1, CourierID: 10, CarboyCount: 1, Price: 3.5, Status: "REJECTED", CreatedAt: "2026-08-30T09:00:00"},
			{ID: ptr(int64(3)), CustomerID: 2, CourierID: 10, CarboyCount: 1, Price: 4.0, Status: "PENDING", CreatedAt: "2026-08-30T10:00:00"},
		},
	}

	svc := NewReportService(newTestCache(t), client, logger.New("test", "error"))
	report := svc.Build(context.Background(), ReportFilter{})

	assert.Equal(t, 3, report.Stats.Total)
	// Rejected counts as no longer pending but earns nothing.
	assert.Equal(t, 2, report.Stats.Completed)
	assert.Equal(t, 1, report.Stats.Pending)
	assert.Equal(t, int64(700), report.Stats.RevenueQepik)
}

func TestBuildStatusFilter(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(1)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "COMPLETED", CreatedAt: "2026-08-30T08:00:00"},
			{ID: ptr(int64(2)), CustomerID: 2, CourierID: 10, CarboyCount: 1, Price: 4.0, Status: "PENDING", CreatedAt: "2026-08-30T09:00:00"},
		},
	}
	svc := NewReportService(newTestCache(t), client, logger.New("test", "error"))

	pending := svc.Build(context.Background(), ReportFilter{Status: StatusFilterPending})
	require.Equal(t, 1, pending.Stats.Total)
	assert.Equal(t, int64(2), pending.Groups[0].Orders[0].ID)

	completed := svc.Build(context.Background(), ReportFilter{Status: StatusFilterCompleted})
	require.Equal(t, 1, completed.Stats.Total)
	assert.Equal(t, int64(1), completed.Groups[0].Orders[0].ID)
}

func TestBuildPaymentFilterMatchesRemoteOrders(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(1)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "COMPLETED", PaymentMethod: "cash", CreatedAt: "2026-08-30T08:00:00"},
			{ID: ptr(int64(2)), CustomerID: 2, CourierID: 10, CarboyCount: 1, Price: 4.0, Status: "COMPLETED", PaymentMethod: "card", CreatedAt: "2026-08-30T09:00:00"},
		},
	}
	svc := NewReportService(newTestCache(t), client, logger.New("test", "error"))

	all := svc.Build(context.Background(), ReportFilter{})
	require.Equal(t, 2, all.Stats.Total)

	cash := svc.Build(context.Background(), ReportFilter{Payment: models.PaymentCash})
	require.Equal(t, 1, cash.Stats.Total)
	assert.Equal(t, int64(1), cash.Groups[0].Orders[0].ID)
	assert.Equal(t, models.PaymentCash, cash.Groups[0].Orders[0].Payment)

	card := svc.Build(context.Background(), ReportFilter{Payment: models.PaymentCard})
	require.Equal(t, 1, card.Stats.Total)
	assert.Equal(t, int64(2), card.Groups[0].Orders[0].ID)
}

func TestBuildSearchMatchesCustomerName(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(1)), CustomerID: 1, CourierID: 10, CarboyCount: 2, Price: 7.0, Status: "PENDING", CreatedAt: "2026-08-30T08:00:00"},
			{ID: ptr(int64(2)), CustomerID: 2, CourierID: 10, CarboyCount: 1, Price: 4.0, Status: "PENDING", CreatedAt: "2026-08-30T09:00:00"},
		},
	}
	svc := NewReportService(newTestCache(t), client, logger.New("test", "error"))

	report := svc.Build(context.Background(), ReportFilter{Search: "leyla"})
	require.Equal(t, 1, report.Stats.Total)
	assert.Equal(t, "Leyla Aliyeva", report.Groups[0].Orders[0].CustomerFullName)
}

func TestBuildGroupsMostRecentDateFirst(t *testing.T) {
	client := &fakeClient{
		customers: testCustomers(),
		couriers:  testCouriers(),
		orders: []backend.OrderPayload{
			{ID: ptr(int64(1)), CustomerID: 1, CourierID: 10, CarboyCount: 1, Price: 3.5, Status: "PENDING", CreatedAt: "2026-08-29T08:00:00"},
			{ID: ptr(int64(2)), CustomerID: 1, CourierID: 10, CarboyCount: 1, Price: 3.5, Status: "PENDING", CreatedAt: "2026-08-31T08:00:00"},
			{ID: ptr(int64(3)), CustomerID: 1, CourierID: 10, CarboyCount: 1, Price: 3.5, Status: "PENDING", CreatedAt: "2026-08-30T08:00:00"},
		},
	}
	svc := NewReportService(newTestCache(t), client, logger.New("test", "error"))

	report := svc.Build(context.Background(), ReportFilter{})
	require.Len(t, report.Groups, 3)
	assert.Equal(t, "2026-08-31", report.Groups[0].Date)
	assert.Equal(t, "2026-08-30", report.Groups[1].Date)
	assert.Equal(t, "2026-08-29", report.Groups[2].Date)
}
