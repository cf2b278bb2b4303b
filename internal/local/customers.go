package local

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// CustomerRepo stores the local customer mirror. Customers are mirrored
// globally, not per store.
type CustomerRepo struct {
	db dbx.DBTX
}

func NewCustomerRepo(db dbx.DBTX) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Upsert inserts or updates a mirrored customer keyed by its cloud
// identity, overwriting every business field of a matched row.
func (r *CustomerRepo) Upsert(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (cloud_id, name, email, phone, synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cloud_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			synced_at = excluded.synced_at
	`
	_, err := r.db.ExecContext(ctx, query, c.CloudID, c.Name, c.Email, c.Phone, c.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

// GetAll lists every mirrored customer.
func (r *CustomerRepo) GetAll(ctx context.Context) ([]models.Customer, error) {
	query := `SELECT id, cloud_id, name, email, phone, synced_at FROM customers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		var item models.Customer
		if err := rows.Scan(&item.ID, &item.CloudID, &item.Name, &item.Email, &item.Phone, &item.SyncedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count reports the number of mirrored customers.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}
