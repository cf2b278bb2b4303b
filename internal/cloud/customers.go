package cloud

import (
	"context"
	"fmt"

	"github.com/openretail/possync/internal/dbx"
	"github.com/openretail/possync/internal/models"
)

// CustomerRepo reads the authoritative customer rows. Customers belong to
// the retailer as a whole, so listing is not store-scoped.
type CustomerRepo struct {
	db dbx.DBTX
}

func NewCustomerRepo(db dbx.DBTX) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// List returns every live customer.
func (r *CustomerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	query := `SELECT id, name, email, phone FROM customers WHERE deleted = false ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []*models.Customer
	for rows.Next() {
		item := &models.Customer{}
		if err := rows.Scan(&item.CloudID, &item.Name, &item.Email, &item.Phone); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
