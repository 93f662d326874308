package storage

import (
	"context"

	"aquadesk/pkg/models"
)

// Snapshot keys. Each key maps to one durable blob that is rewritten
// wholesale on every mutation.
const (
	SnapshotKeyOrders      = "orders_by_date"
	SnapshotKeyPreferences = "preferences"
)

type ISnapshotStorage interface {
	// Load returns the blob stored under key, or (nil, nil) when the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close()
}

// IOrderCache is the date-bucketed local order store. Reads of unknown or
// empty dates return an empty bucket; Remove and Update of a missing id
// are no-ops.
type IOrderCache interface {
	GetByDate(date string) []*models.Order
	ReplaceDate(ctx context.Context, date string, orders []*models.Order) error
	Add(ctx context.Context, date string, order *models.Order) (*models.Order, error)
	Remove(ctx context.Context, date string, id int64) error
	Update(ctx context.Context, date string, id int64, patch models.OrderPatch) (*models.Order, error)
	All() map[string][]*models.Order
	Dates() []string
}

type IPreferenceStorage interface {
	Preferences() models.Preferences
	SetDarkMode(ctx context.Context, on bool) error
}
