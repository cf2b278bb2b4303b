package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/models"
)

// RetryPolicy controls how many times one sale's cloud write is attempted
// within a single push cycle. Attempts <= 1 means a single try, which
// keeps a failed sale in the terminal error state until reset explicitly.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Pusher uploads pending sales to the cloud and records the outcome per
// sale in the local store.
type Pusher struct {
	local *local.Store
	cloud CloudStore
	retry RetryPolicy
	log   logging.Logger
}

func NewPusher(localStore *local.Store, cloudStore CloudStore, policy RetryPolicy, log logging.Logger) *Pusher {
	return &Pusher{local: localStore, cloud: cloudStore, retry: policy, log: log}
}

// Push uploads the pending sales of a store, newest first. Sales are
// processed strictly one at a time: the header's cloud identity must be
// known before its items are written, and sequential writes keep the
// cloud-side ordering deterministic. One sale's failure marks that sale
// errored and moves on; it never aborts the batch.
//
// The returned count covers only sales that reached synced. Errors are
// row-scoped, human-readable strings.
func (p *Pusher) Push(ctx context.Context, storeID int64) (int, []string) {
	sales, err := p.local.Sales.GetPending(ctx, storeID)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to list pending sales: %v", err)}
	}

	pushed := 0
	var errs []string

	for _, sale := range sales {
		items, err := p.local.Sales.GetItems(ctx, sale.ID)
		if err != nil {
			p.failSale(ctx, sale.ID, err, &errs)
			continue
		}

		cloudID, err := p.upload(ctx, sale, items)
		if err != nil {
			p.failSale(ctx, sale.ID, err, &errs)
			continue
		}

		if err := p.local.Sales.MarkSynced(ctx, sale.ID, cloudID, time.Now().UTC()); err != nil {
			errs = append(errs, fmt.Sprintf("sale %s: %v", sale.ID, err))
			continue
		}

		p.log.Info(ctx, "sale uploaded", "sale", sale.ID, "cloud_id", cloudID)
		pushed++
	}

	return pushed, errs
}

// upload writes one sale (header plus items) to the cloud, re-attempting
// the whole transactional write per the retry policy.
func (p *Pusher) upload(ctx context.Context, sale *models.Sale, items []*models.SaleItem) (int64, error) {
	attempts := p.retry.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.retry.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var cloudID int64
	b := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(backoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		id, err := p.cloud.CreateSale(ctx, sale, items)
		if err != nil {
			return retry.RetryableError(err)
		}
		cloudID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cloudID, nil
}

func (p *Pusher) failSale(ctx context.Context, saleID string, cause error, errs *[]string) {
	p.log.Warn(ctx, "sale upload failed", "sale", saleID, "error", cause)
	if err := p.local.Sales.MarkError(ctx, saleID); err != nil {
		p.log.Error(ctx, "failed to flag errored sale", "sale", saleID, "error", err)
	}
	*errs = append(*errs, fmt.Sprintf("sale %s: %v", saleID, cause))
}
