// Package syncer implements the offline-first reconciliation engine: it
// mirror-pulls reference data from the cloud, pushes queued sales up, and
// schedules both around a connectivity probe.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/models"
)

// CloudStore is the slice of the cloud boundary the engine consumes: one
// read endpoint per mirrored entity type and one transactional write for
// sales. *cloud.Store satisfies it.
type CloudStore interface {
	ListCategories(ctx context.Context, storeID int64) ([]*models.Category, error)
	ListProducts(ctx context.Context, storeID int64) ([]*models.Product, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) (int64, error)
}

// Puller mirrors reference entities from the cloud into the local store.
// Cloud rows always win: a matched local row gets every business field
// overwritten, an unmatched one is inserted. Rows that disappeared from
// the cloud result set are left alone, so local mirrors can go stale but
// never lose data the terminal might still reference.
type Puller struct {
	local *local.Store
	cloud CloudStore
	log   logging.Logger
}

func NewPuller(localStore *local.Store, cloudStore CloudStore, log logging.Logger) *Puller {
	return &Puller{local: localStore, cloud: cloudStore, log: log}
}

// PullCategories mirrors the store's categories and returns how many rows
// were processed. Re-running with unchanged cloud data is a no-op in
// terms of field values.
func (p *Puller) PullCategories(ctx context.Context, storeID int64) (int, error) {
	rows, err := p.cloud.ListCategories(ctx, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch categories: %w", err)
	}

	now := time.Now().UTC()
	for _, c := range rows {
		c.SyncedAt = now
		if err := p.local.Categories.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("failed to mirror category %d: %w", c.CloudID, err)
		}
	}

	p.log.Debug(ctx, "categories pulled", "store", storeID, "count", len(rows))
	return len(rows), nil
}

// PullProducts mirrors the store's catalog.
func (p *Puller) PullProducts(ctx context.Context, storeID int64) (int, error) {
	rows, err := p.cloud.ListProducts(ctx, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	now := time.Now().UTC()
	for _, pr := range rows {
		pr.SyncedAt = now
		if err := p.local.Products.Upsert(ctx, pr); err != nil {
			return 0, fmt.Errorf("failed to mirror product %d: %w", pr.CloudID, err)
		}
	}

	p.log.Debug(ctx, "products pulled", "store", storeID, "count", len(rows))
	return len(rows), nil
}

// PullCustomers mirrors every customer of the retailer. Customers are not
// store-scoped: any terminal may serve any registered customer.
func (p *Puller) PullCustomers(ctx context.Context) (int, error) {
	rows, err := p.cloud.ListCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	now := time.Now().UTC()
	for _, c := range rows {
		c.SyncedAt = now
		if err := p.local.Customers.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("failed to mirror customer %d: %w", c.CloudID, err)
		}
	}

	p.log.Debug(ctx, "customers pulled", "count", len(rows))
	return len(rows), nil
}
