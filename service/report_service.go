package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/storage"
)

const (
	StatusFilterAll       = "all"
	StatusFilterPending   = "pending"
	StatusFilterCompleted = "completed"
)

// ReportFilter narrows the merged order view. Zero values mean "no
// restriction".
type ReportFilter struct {
	Date       string
	Search     string
	Status     string
	CustomerID string
	CourierID  int64
	Payment    models.PaymentMethod
}

type DateGroup struct {
	Date   string          `json:"date"`
	Orders []*models.Order `json:"orders"`
}

type Stats struct {
	Total        int   `json:"total"`
	Completed    int   `json:"completed"`
	Pending      int   `json:"pending"`
	RevenueQepik int64 `json:"revenue_qepik"`
}

// Report is the aggregated view the dashboard renders: filtered orders
// grouped by date (most recent first) plus summary statistics.
type Report struct {
	Groups []DateGroup `json:"groups"`
	Stats  Stats       `json:"stats"`
}

type ReportService interface {
	Build(ctx context.Context, filter ReportFilter) *Report
}

type reportService struct {
	cache  storage.IOrderCache
	client backend.IClient
	log    logger.ILogger
}

func NewReportService(cache storage.IOrderCache, client backend.IClient, log logger.ILogger) ReportService {
	return &reportService{cache: cache, client: client, log: log}
}

func (s *reportService) Build(ctx context.Context, filter ReportFilter) *Report {
	res := fetchResolver(ctx, s.client, s.log)
	remote := remoteOrders(ctx, s.client, res, s.log)

	var local []*models.Order
	if filter.Date != "" {
		local = s.cache.GetByDate(filter.Date)
	} else {
		for _, bucket := range s.cache.All() {
			local = append(local, bucket...)
		}
	}
	for _, o := range local {
		res.enrich(o)
	}

	merged := reconcile(remote, local)

	var filtered []*models.Order
	for _, o := range merged {
		if matches(o, filter) {
			filtered = append(filtered, o)
		}
	}

	return &Report{
		Groups: groupByDate(filtered),
		Stats:  computeStats(filtered),
	}
}

// reconcile merges the two order sets. A locally cached order that the
// backend already lists (same customer, date, courier and bidon count)
// is dropped in favor of the backend copy, so a create-and-refresh cycle
// does not double-count.
func reconcile(remote, local []*models.Order) []*models.Order {
	seen := make(map[string]bool, len(remote))
	for _, o := range remote {
		seen[identityKey(o)] = true
	}

	merged := make([]*models.Order, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	for _, o := range local {
		if seen[identityKey(o)] {
			continue
		}
		merged = append(merged, o)
	}
	return merged
}

func identityKey(o *models.Order) string {
	customer := strings.TrimPrefix(o.CustomerID, models.BackendIDPrefix)
	return fmt.Sprintf("%s|%s|%d|%d", customer, o.Date, o.CourierID, o.BidonCount)
}

func matches(o *models.Order, filter ReportFilter) bool {
	if filter.Date != "" && o.Date != filter.Date {
		return false
	}
	if filter.CustomerID != "" && !sameCustomer(o.CustomerID, filter.CustomerID) {
		return false
	}
	if filter.CourierID != 0 && o.CourierID != filter.CourierID {
		return false
	}
	if filter.Payment != "" && o.Payment != filter.Payment {
		return false
	}

	switch filter.Status {
	case "", StatusFilterAll:
	case StatusFilterPending:
		if o.IsCompleted() {
			return false
		}
	case StatusFilterCompleted:
		if !o.IsCompleted() {
			return false
		}
	}

	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		haystacks := []string{
			strings.ToLower(o.CustomerFullName),
			strings.ToLower(o.CourierFullName),
			o.Date,
			strconv.Itoa(o.BidonCount),
		}
		found := false
		for _, h := range haystacks {
			if strings.Contains(h, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameCustomer(a, b string) bool {
	return strings.TrimPrefix(a, models.BackendIDPrefix) == strings.TrimPrefix(b, models.BackendIDPrefix)
}

func groupByDate(orders []*models.Order) []DateGroup {
	buckets := make(map[string][]*models.Order)
	for _, o := range orders {
		buckets[o.Date] = append(buckets[o.Date], o)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	// Most recent first; the date keys sort lexicographically.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]DateGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, DateGroup{Date: date, Orders: buckets[date]})
	}
	return groups
}

func computeStats(orders []*models.Order) Stats {
	stats := Stats{Total: len(orders)}
	for _, o := range orders {
		if o.IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if o.Earns() {
			stats.RevenueQepik += o.Amount
		}
	}
	return stats
}
