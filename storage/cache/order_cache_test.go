package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
	"aquadesk/storage"
)

func newTestCache(t *testing.T) (storage.IOrderCache, storage.ISnapshotStorage) {
	t.Helper()
	snaps, err := NewFileSnapshots(t.TempDir())
	require.NoError(t, err)
	return NewOrderCache(context.Background(), snaps, logger.New("test", "error")), snaps
}

func TestAddAssignsBucketScopedIDs(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	first, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 2, Amount: 700})
	require.NoError(t, err)
	second, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-2", BidonCount: 1, Amount: 350})
	require.NoError(t, err)
	otherDay, err := c.Add(ctx, "2026-08-31", &models.Order{CustomerID: "srv-1", BidonCount: 3, Amount: 1050})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	// Each date bucket numbers independently.
	assert.Equal(t, int64(1), otherDay.ID)

	assert.Equal(t, "2026-08-30", first.Date)
	assert.Equal(t, models.SourceLocal, first.Source)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestAddDoesNotReuseIDAfterRemove(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 1})
	require.NoError(t, err)
	second, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-2", BidonCount: 1})
	require.NoError(t, err)

	require.NoError(t, c.Remove(ctx, "2026-08-30", 1))

	third, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-3", BidonCount: 1})
	require.NoError(t, err)
	assert.Equal(t, second.ID+1, third.ID)
}

func TestPersistenceAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	snaps, err := NewFileSnapshots(dir)
	require.NoError(t, err)
	log := logger.New("test", "error")
	ctx := context.Background()

	c := NewOrderCache(ctx, snaps, log)
	_, err = c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 2, Amount: 700})
	require.NoError(t, err)
	_, err = c.Add(ctx, "2026-08-29", &models.Order{CustomerID: "srv-2", BidonCount: 1, Amount: 350})
	require.NoError(t, err)

	reopened := NewOrderCache(ctx, snaps, log)
	assert.Len(t, reopened.GetByDate("2026-08-30"), 1)
	assert.Len(t, reopened.GetByDate("2026-08-29"), 1)
	assert.Equal(t, "srv-1", reopened.GetByDate("2026-08-30")[0].CustomerID)
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, storage.SnapshotKeyOrders+".json"),
		[]byte("{not json"), 0o644))

	snaps, err := NewFileSnapshots(dir)
	require.NoError(t, err)

	c := NewOrderCache(context.Background(), snaps, logger.New("test", "error"))
	assert.Empty(t, c.All())

	// The cache must still accept writes after a corrupt load.
	_, err = c.Add(context.Background(), "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 1})
	assert.NoError(t, err)
}

func TestUpdateAppliesPatchAndPersists(t *testing.T) {
	c, snaps := newTestCache(t)
	ctx := context.Background()

	order, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 2, Amount: 700})
	require.NoError(t, err)

	status := models.StatusCompleted
	payment := models.PaymentCash
	updated, err := c.Update(ctx, "2026-08-30", order.ID, models.OrderPatch{Status: &status, Payment: &payment})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, models.PaymentCash, updated.Payment)
	// Untouched fields survive.
	assert.Equal(t, 2, updated.BidonCount)
	assert.Equal(t, int64(700), updated.Amount)

	reopened := NewOrderCache(ctx, snaps, logger.New("test", "error"))
	assert.Equal(t, models.StatusCompleted, reopened.GetByDate("2026-08-30")[0].Status)
}

func TestUpdateMissingOrderReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	status := models.StatusCompleted
	updated, err := c.Update(context.Background(), "2026-08-30", 99, models.OrderPatch{Status: &status})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestRemoveMissingOrderIsNoop(t *testing.T) {
	c, _ := newTestCache(t)
	assert.NoError(t, c.Remove(context.Background(), "2026-08-30", 5))
	assert.NoError(t, c.Remove(context.Background(), "no-such-date", 1))
}

func TestGetByDateReturnsCopies(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "2026-08-30", &models.Order{CustomerID: "srv-1", BidonCount: 2})
	require.NoError(t, err)

	got := c.GetByDate("2026-08-30")
	got[0].BidonCount = 99

	assert.Equal(t, 2, c.GetByDate("2026-08-30")[0].BidonCount)
}

func TestDatesSortedMostRecentFirst(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-29", "2026-08-31", "2026-08-30"} {
		_, err := c.Add(ctx, date, &models.Order{CustomerID: "srv-1", BidonCount: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"2026-08-31", "2026-08-30", "2026-08-29"}, c.Dates())
}
