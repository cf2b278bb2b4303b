// Package cloud implements access to the authoritative cloud store: the
// PostgreSQL database shared by every terminal of a retailer. The cloud
// assigns serial identities at insert time and is the source of truth for
// mirrored reference data.
package cloud

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/openretail/possync/internal/cloud/migrations"
	"github.com/openretail/possync/internal/models"
)

// Store aggregates the per-entity repositories over one Postgres handle.
type Store struct {
	db *sql.DB

	Categories *CategoryRepo
	Products   *ProductRepo
	Customers  *CustomerRepo
	Sales      *SaleRepo
}

// Open connects to the cloud database at dsn.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &Store{
		db:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Customers:  NewCustomerRepo(db),
		Sales:      NewSaleRepo(db),
	}, nil
}

// RunMigrations brings the cloud schema up to date. Meant for deployments
// and integration setups that own the database, not for every terminal.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, s.db, ".")
}

func (s *Store) Conn() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// The methods below satisfy the sync engine's CloudStore interface by
// delegating to the entity repositories.

func (s *Store) ListCategories(ctx context.Context, storeID int64) ([]*models.Category, error) {
	return s.Categories.ListByStore(ctx, storeID)
}

func (s *Store) ListProducts(ctx context.Context, storeID int64) ([]*models.Product, error) {
	return s.Products.ListByStore(ctx, storeID)
}

func (s *Store) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Customers.List(ctx)
}

func (s *Store) CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) (int64, error) {
	return s.Sales.Create(ctx, sale, items)
}
