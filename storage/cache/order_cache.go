package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/storage"
)

type orderCache struct {
	mu      sync.RWMutex
	buckets map[string][]*models.Order
	snaps   storage.ISnapshotStorage
	log     logger.ILogger
}

// NewOrderCache loads the date-bucketed order index from the snapshot
// storage. A missing or corrupt snapshot means an empty index, never a
// startup failure.
func NewOrderCache(ctx context.Context, snaps storage.ISnapshotStorage, log logger.ILogger) storage.IOrderCache {
	c := &orderCache{
		buckets: make(map[string][]*models.Order),
		snaps:   snaps,
		log:     log,
	}

	data, err := snaps.Load(ctx, storage.SnapshotKeyOrders)
	if err != nil {
		log.Warning("failed to load order snapshot, starting empty", logger.Error(err))
		return c
	}
	if len(data) == 0 {
		return c
	}
	if err := json.Unmarshal(data, &c.buckets); err != nil {
		log.Warning("corrupt order snapshot, starting empty", logger.Error(err))
		c.buckets = make(map[string][]*models.Order)
	}
	return c
}

func (c *orderCache) GetByDate(date string) []*models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if date == "" {
		return []*models.Order{}
	}
	bucket, ok := c.buckets[date]
	if !ok {
		return []*models.Order{}
	}
	out := make([]*models.Order, len(bucket))
	for i, o := range bucket {
		cp := *o
		out[i] = &cp
	}
	return out
}

func (c *orderCache) ReplaceDate(ctx context.Context, date string, orders []*models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buckets[date] = orders
	return c.persist(ctx)
}

func (c *orderCache) Add(ctx context.Context, date string, order *models.Order) (*models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Bucket-scoped ids: max existing id + 1, starting at 1.
	var maxID int64
	for _, o := range c.buckets[date] {
		if o.ID > maxID {
			maxID = o.ID
		}
	}
	order.ID = maxID + 1
	order.Date = date
	order.Source = models.SourceLocal
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	c.buckets[date] = append(c.buckets[date], order)
	if err := c.persist(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *orderCache) Remove(ctx context.Context, date string, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.buckets[date]
	if !ok {
		return nil
	}
	for i, o := range bucket {
		if o.ID == id {
			c.buckets[date] = append(bucket[:i], bucket[i+1:]...)
			return c.persist(ctx)
		}
	}
	return nil
}

func (c *orderCache) Update(ctx context.Context, date string, id int64, patch models.OrderPatch) (*models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range c.buckets[date] {
		if o.ID == id {
			patch.Apply(o)
			if err := c.persist(ctx); err != nil {
				return nil, err
			}
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (c *orderCache) All() map[string][]*models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string][]*models.Order, len(c.buckets))
	for date, bucket := range c.buckets {
		cp := make([]*models.Order, len(bucket))
		for i, o := range bucket {
			oc := *o
			cp[i] = &oc
		}
		out[date] = cp
	}
	return out
}

func (c *orderCache) Dates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dates := make([]string, 0, len(c.buckets))
	for date := range c.buckets {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// persist re-serializes the whole mapping. Callers hold the write lock.
func (c *orderCache) persist(ctx context.Context) error {
	data, err := json.MarshalIndent(c.buckets, "", "  ")
	if err != nil {
		return err
	}
	if err := c.snaps.Save(ctx, storage.SnapshotKeyOrders, data); err != nil {
		c.log.Error("failed to persist order snapshot", logger.Error(err))
		return err
	}
	return nil
}
