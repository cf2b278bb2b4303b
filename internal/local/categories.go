package local

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// CategoryRepo stores the local mirror of product categories.
type CategoryRepo struct {
	db dbx.DBTX
}

func NewCategoryRepo(db dbx.DBTX) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Upsert inserts or updates a mirrored category keyed by its cloud
// identity. The cloud is authoritative: every business field of a matched
// row is overwritten unconditionally.
func (r *CategoryRepo) Upsert(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (cloud_id, store_id, name, synced_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cloud_id) DO UPDATE SET
			store_id = excluded.store_id,
			name = excluded.name,
			synced_at = excluded.synced_at
	`
	_, err := r.db.ExecContext(ctx, query, c.CloudID, c.StoreID, c.Name, c.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

// GetAll lists the mirrored categories for a store.
func (r *CategoryRepo) GetAll(ctx context.Context, storeID int64) ([]models.Category, error) {
	query := `SELECT id, cloud_id, store_id, name, synced_at FROM categories WHERE store_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.CloudID, &item.StoreID, &item.Name, &item.SyncedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count reports the number of mirrored categories for a store.
func (r *CategoryRepo) Count(ctx context.Context, storeID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE store_id = ?`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return n, nil
}
