package local

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// ProductRepo stores the local mirror of the product catalog.
type ProductRepo struct {
	db dbx.DBTX
}

func NewProductRepo(db dbx.DBTX) *ProductRepo {
	return &ProductRepo{db: db}
}

// Upsert inserts or updates a mirrored product keyed by its cloud
// identity, overwriting every business field of a matched row.
func (r *ProductRepo) Upsert(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (cloud_id, store_id, category_id, name, sku, price_cents, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cloud_id) DO UPDATE SET
			store_id = excluded.store_id,
			category_id = excluded.category_id,
			name = excluded.name,
			sku = excluded.sku,
			price_cents = excluded.price_cents,
			synced_at = excluded.synced_at
	`
	_, err := r.db.ExecContext(ctx, query,
		p.CloudID, p.StoreID, p.CategoryID, p.Name, p.SKU, p.PriceCents, p.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// GetAll lists the mirrored products for a store.
func (r *ProductRepo) GetAll(ctx context.Context, storeID int64) ([]models.Product, error) {
	query := `SELECT id, cloud_id, store_id, category_id, name, sku, price_cents, synced_at
		FROM products WHERE store_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		var item models.Product
		if err := rows.Scan(&item.ID, &item.CloudID, &item.StoreID, &item.CategoryID,
			&item.Name, &item.SKU, &item.PriceCents, &item.SyncedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count reports the number of mirrored products for a store.
func (r *ProductRepo) Count(ctx context.Context, storeID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE store_id = ?`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
