// Package local implements the embedded store a terminal uses while
// offline: mirrored reference entities (categories, products, customers)
// plus the transactional sale queue and the per-store sync bookkeeping.
package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/openretail/possync/internal/local/migrations"
)

// Store aggregates the per-entity repositories over one SQLite handle.
// Open it once and share it; database/sql serializes access internally.
type Store struct {
	db *sql.DB

	Categories *CategoryRepo
	Products   *ProductRepo
	Customers  *CustomerRepo
	Sales      *SaleRepo
	SyncState  *SyncStateRepo
}

// Open opens (creating if needed) the local database at dsn and brings its
// schema up to date.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// SQLite allows a single writer; one pooled connection keeps writes
	// from tripping over each other.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{
		db:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Customers:  NewCustomerRepo(db),
		Sales:      NewSaleRepo(db),
		SyncState:  NewSyncStateRepo(db),
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Conn() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}
