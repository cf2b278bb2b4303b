package cloud

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// CategoryRepo reads the authoritative category rows.
type CategoryRepo struct {
	db dbx.DBTX
}

func NewCategoryRepo(db dbx.DBTX) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListByStore returns every live category for a store. Soft-deleted rows
// never leave the cloud.
func (r *CategoryRepo) ListByStore(ctx context.Context, storeID int64) ([]*models.Category, error) {
	query := `SELECT id, store_id, name FROM categories WHERE store_id = $1 AND deleted = false ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		item := &models.Category{}
		if err := rows.Scan(&item.CloudID, &item.StoreID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
