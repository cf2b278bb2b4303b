package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openretail/possync/internal/common"
	"github.com/openretail/possync/internal/models"
)

func createSale(t *testing.T, s *Store, storeID int64, total int64) *models.Sale {
	t.Helper()
	sale := &models.Sale{StoreID: storeID, TotalCents: total, PaymentMethod: "cash"}
	items := []*models.SaleItem{
		{ProductID: 7, Quantity: 2, UnitPriceCents: total / 2},
	}
	require.NoError(t, s.Sales.Create(context.Background(), sale, items))
	return sale
}

func TestSaleCreate_AssignsIDAndQueues(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sale := createSale(t, s, 1, 500)
	require.NotEmpty(t, sale.ID)
	assert.Equal(t, models.SalePending, sale.SyncStatus)

	got, err := s.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SalePending, got.SyncStatus)
	assert.False(t, got.CloudID.Valid, "cloud id must stay unset until pushed")

	items, err := s.Sales.GetItems(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
}

func TestSaleCreate_RejectedItemLeavesNoHeader(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sale := &models.Sale{StoreID: 1, TotalCents: 500, PaymentMethod: "cash"}
	items := []*models.SaleItem{
		{ProductID: 7, Quantity: 1, UnitPriceCents: 250},
		{ProductID: 8, Quantity: 0, UnitPriceCents: 250}, // violates the quantity check
	}
	require.Error(t, s.Sales.Create(ctx, sale, items))

	_, err := s.Sales.GetByID(ctx, sale.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "header written before the rejected item must roll back")

	n, err := s.Sales.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n, "a half-written sale must never enter the push queue")
}

func TestSaleGetByID_Missing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Sales.GetByID(context.Background(), "no-such-sale")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetPending_NewestFirstAndFiltered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := &models.Sale{StoreID: 1, TotalCents: 100, CreatedAt: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, s.Sales.Create(ctx, older, nil))
	newer := &models.Sale{StoreID: 1, TotalCents: 200, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Sales.Create(ctx, newer, nil))
	otherStore := &models.Sale{StoreID: 2, TotalCents: 300}
	require.NoError(t, s.Sales.Create(ctx, otherStore, nil))

	pending, err := s.Sales.GetPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, newer.ID, pending[0].ID)
	assert.Equal(t, older.ID, pending[1].ID)
}

func TestMarkSynced_ExactlyOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sale := createSale(t, s, 1, 500)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.Sales.MarkSynced(ctx, sale.ID, 41, now))

	got, err := s.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaleSynced, got.SyncStatus)
	require.True(t, got.CloudID.Valid)
	assert.Equal(t, int64(41), got.CloudID.Int64)
	assert.True(t, got.SyncedAt.Valid)

	// A second transition must be rejected: the cloud identity is
	// assigned at most once.
	err = s.Sales.MarkSynced(ctx, sale.ID, 42, now)
	require.Error(t, err)

	got, err = s.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(41), got.CloudID.Int64)

	pending, err := s.Sales.GetPending(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, pending, "synced sales must never be re-selected")
}

func TestMarkError_TerminalUntilReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sale := createSale(t, s, 1, 500)
	require.NoError(t, s.Sales.MarkError(ctx, sale.ID))

	got, err := s.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaleError, got.SyncStatus)
	assert.False(t, got.CloudID.Valid)

	pending, err := s.Sales.GetPending(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, pending, "errored sales must stay out of push cycles")

	n, err := s.Sales.ResetErrors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	pending, err = s.Sales.GetPending(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCountPending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	createSale(t, s, 1, 100)
	sale2 := createSale(t, s, 1, 200)
	createSale(t, s, 2, 300)

	n, err := s.Sales.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Sales.MarkSynced(ctx, sale2.ID, 9, time.Now().UTC()))

	n, err = s.Sales.CountPending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
