package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openretail/possync/internal/common"
	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// SyncStateRepo stores the per-store sync bookkeeping row.
type SyncStateRepo struct {
	db dbx.DBTX
}

func NewSyncStateRepo(db dbx.DBTX) *SyncStateRepo {
	return &SyncStateRepo{db: db}
}

// Touch records a completed full sync, creating the bookkeeping row on
// first use and updating it afterwards.
func (r *SyncStateRepo) Touch(ctx context.Context, storeID int64, storeName string, at time.Time) error {
	query := `INSERT INTO sync_state (store_id, store_name, last_sync_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(store_id) DO UPDATE SET
			store_name = excluded.store_name,
			last_sync_at = excluded.last_sync_at,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, storeID, storeName, at, at)
	if err != nil {
		return fmt.Errorf("failed to upsert sync state: %w", err)
	}
	return nil
}

// LastSyncAt returns when the store last completed a full sync, or nil if
// it never has.
func (r *SyncStateRepo) LastSyncAt(ctx context.Context, storeID int64) (*time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT last_sync_at FROM sync_state WHERE store_id = ?`, storeID)

	var t sql.NullTime
	if err := row.Scan(&t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sync state: %w", err)
	}
	if !t.Valid {
		return nil, nil
	}
	return &t.Time, nil
}

// Get returns the full bookkeeping row for a store, or common.ErrNotFound
// for a store that has never synced.
func (r *SyncStateRepo) Get(ctx context.Context, storeID int64) (*models.SyncState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT store_id, store_name, last_sync_at, updated_at FROM sync_state WHERE store_id = ?`, storeID)

	state := &models.SyncState{}
	if err := row.Scan(&state.StoreID, &state.StoreName, &state.LastSyncAt, &state.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sync state for store %d: %w", storeID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return state, nil
}
