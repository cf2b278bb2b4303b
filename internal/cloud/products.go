package cloud

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// ProductRepo reads the authoritative catalog rows.
type ProductRepo struct {
	db dbx.DBTX
}

func NewProductRepo(db dbx.DBTX) *ProductRepo {
	return &ProductRepo{db: db}
}

// ListByStore returns every live product for a store.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID int64) ([]*models.Product, error) {
	query := `SELECT id, store_id, category_id, name, sku, price_cents
		FROM products WHERE store_id = $1 AND deleted = false ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		item := &models.Product{}
		if err := rows.Scan(&item.CloudID, &item.StoreID, &item.CategoryID, &item.Name, &item.SKU, &item.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
