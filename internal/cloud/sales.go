package cloud

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// SaleRepo writes uploaded sales. It holds the raw *sql.DB rather than a
// DBTX because every upload runs in its own transaction.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

// Create inserts a sale header and its line items in one transaction and
// returns the identity the cloud assigned to the header. A failing item
// insert rolls the header back, so no orphaned headers can exist.
func (r *SaleRepo) Create(ctx context.Context, sale *models.Sale, items []*models.SaleItem) (int64, error) {
	var cloudID int64

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO sales (store_id, customer_id, total_cents, payment_method, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			sale.StoreID, sale.CustomerID, sale.TotalCents, sale.PaymentMethod, sale.CreatedAt)
		if err := row.Scan(&cloudID); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for _, item := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price_cents)
				VALUES ($1, $2, $3, $4)`,
				cloudID, item.ProductID, item.Quantity, item.UnitPriceCents)
			if err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return cloudID, nil
}
