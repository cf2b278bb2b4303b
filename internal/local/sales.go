package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openretail/possync/internal/common"
	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// SaleRepo stores the transactional sale queue. Sales are created here by
// the point-of-sale workflow and mutated only by the push engine after
// that. It holds the raw *sql.DB so Create can run header and line items
// in one transaction.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

// Create records a sale drafted at the terminal together with its line
// items and queues it for upload. Header and items are written in one
// transaction; a rejected item leaves no header behind for the push
// engine to upload incomplete. The local identity is assigned here; the
// cloud identity stays unset until a successful push.
func (r *SaleRepo) Create(ctx context.Context, sale *models.Sale, items []*models.SaleItem) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	sale.SyncStatus = models.SalePending

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO sales (id, store_id, customer_id, total_cents, payment_method, created_at, sync_status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, query,
			sale.ID, sale.StoreID, sale.CustomerID, sale.TotalCents, sale.PaymentMethod, sale.CreatedAt, sale.SyncStatus)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for _, item := range items {
			item.SaleID = sale.ID
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price_cents) VALUES (?, ?, ?, ?)`,
				item.SaleID, item.ProductID, item.Quantity, item.UnitPriceCents)
			if err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}

		return nil
	})
}

// GetPending returns the sales awaiting upload for a store, newest first.
// Synced and errored sales are never candidates.
func (r *SaleRepo) GetPending(ctx context.Context, storeID int64) ([]*models.Sale, error) {
	query := `SELECT id, store_id, customer_id, total_cents, payment_method, created_at, sync_status, cloud_id, synced_at, deleted
		FROM sales
		WHERE store_id = ? AND sync_status = ? AND deleted = 0
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, storeID, models.SalePending)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending sales: %w", err)
	}
	defer rows.Close()

	var result []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		if err := rows.Scan(&sale.ID, &sale.StoreID, &sale.CustomerID, &sale.TotalCents,
			&sale.PaymentMethod, &sale.CreatedAt, &sale.SyncStatus, &sale.CloudID,
			&sale.SyncedAt, &sale.Deleted); err != nil {
			return nil, err
		}
		result = append(result, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetItems loads the line items of a sale.
func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*models.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, quantity, unit_price_cents FROM sale_items WHERE sale_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to select sale items: %w", err)
	}
	defer rows.Close()

	var result []*models.SaleItem
	for rows.Next() {
		item := &models.SaleItem{}
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single sale, or common.ErrNotFound when no sale has
// that identity.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	query := `SELECT id, store_id, customer_id, total_cents, payment_method, created_at, sync_status, cloud_id, synced_at, deleted
		FROM sales WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	sale := &models.Sale{}
	if err := row.Scan(&sale.ID, &sale.StoreID, &sale.CustomerID, &sale.TotalCents,
		&sale.PaymentMethod, &sale.CreatedAt, &sale.SyncStatus, &sale.CloudID,
		&sale.SyncedAt, &sale.Deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return sale, nil
}

// MarkSynced records a successful upload. Only a pending sale can make
// this transition, which keeps the cloud assignment at most once.
func (r *SaleRepo) MarkSynced(ctx context.Context, id string, cloudID int64, syncedAt time.Time) error {
	query := `UPDATE sales SET sync_status = ?, cloud_id = ?, synced_at = ? WHERE id = ? AND sync_status = ?`
	res, err := r.db.ExecContext(ctx, query, models.SaleSynced, cloudID, syncedAt, id, models.SalePending)
	if err != nil {
		return fmt.Errorf("failed to mark sale synced: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}

// MarkError flags a failed upload. The cloud id stays unset and the sale
// drops out of later push cycles until reset explicitly.
func (r *SaleRepo) MarkError(ctx context.Context, id string) error {
	query := `UPDATE sales SET sync_status = ? WHERE id = ? AND sync_status = ?`
	_, err := r.db.ExecContext(ctx, query, models.SaleError, id, models.SalePending)
	if err != nil {
		return fmt.Errorf("failed to mark sale errored: %w", err)
	}
	return nil
}

// ResetErrors flips errored sales back to pending so the next push cycle
// picks them up again. Returns the number of sales reset.
func (r *SaleRepo) ResetErrors(ctx context.Context, storeID int64) (int64, error) {
	query := `UPDATE sales SET sync_status = ? WHERE store_id = ? AND sync_status = ?`
	res, err := r.db.ExecContext(ctx, query, models.SalePending, storeID, models.SaleError)
	if err != nil {
		return 0, fmt.Errorf("failed to reset errored sales: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra, nil
}

// CountPending reports how many sales are still waiting for upload.
func (r *SaleRepo) CountPending(ctx context.Context, storeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM sales WHERE store_id = ? AND sync_status = ? AND deleted = 0`
	var n int
	if err := r.db.QueryRowContext(ctx, query, storeID, models.SalePending).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending sales: %w", err)
	}
	return n, nil
}
