package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/openretail/possync/internal/common"
	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/models"
	"github.com/openretail/possync/internal/netx"
)

// Orchestrator composes the pull and push engines behind the two sync
// operations the host calls. Both operations check connectivity first and
// always return a result; nothing propagates as a raised error.
type Orchestrator struct {
	probe     netx.Probe
	puller    *Puller
	pusher    *Pusher
	local     *local.Store
	storeName string
	log       logging.Logger
}

func NewOrchestrator(probe netx.Probe, puller *Puller, pusher *Pusher, localStore *local.Store, storeName string, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		probe:     probe,
		puller:    puller,
		pusher:    pusher,
		local:     localStore,
		storeName: storeName,
		log:       log,
	}
}

// SyncAll runs a full cycle: mirror every reference entity type, then
// upload pending sales, then record bookkeeping. Reference data is
// refreshed before sales referencing it are uploaded; that ordering is a
// policy choice, not an accident of layout. Each entity type's pull is
// isolated — one failing type is recorded and the others still run.
func (o *Orchestrator) SyncAll(ctx context.Context, storeID int64) *models.SyncResult {
	res := &models.SyncResult{}

	if !o.probe.Online(ctx) {
		o.log.Warn(ctx, "sync skipped, offline", "store", storeID)
		res.Errors = append(res.Errors, common.ErrOffline.Error())
		return res
	}

	pulls := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"categories", func(ctx context.Context) (int, error) { return o.puller.PullCategories(ctx, storeID) }},
		{"products", func(ctx context.Context) (int, error) { return o.puller.PullProducts(ctx, storeID) }},
		{"customers", func(ctx context.Context) (int, error) { return o.puller.PullCustomers(ctx) }},
	}

	for _, pull := range pulls {
		n, err := pull.fn(ctx)
		if err != nil {
			o.log.Warn(ctx, "pull failed", "entity", pull.name, "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("pull %s: %v", pull.name, err))
			continue
		}
		res.Pulled += n
	}

	pushed, errs := o.pusher.Push(ctx, storeID)
	res.Pushed = pushed
	res.Errors = append(res.Errors, errs...)

	// Bookkeeping is best effort: a failure here is logged and swallowed,
	// never surfaced in the result.
	if err := o.local.SyncState.Touch(ctx, storeID, o.storeName, time.Now().UTC()); err != nil {
		o.log.Warn(ctx, "bookkeeping update failed", "store", storeID, "error", err)
	}

	res.Success = len(res.Errors) == 0
	o.log.Info(ctx, "full sync finished", "store", storeID,
		"success", res.Success, "pulled", res.Pulled, "pushed", res.Pushed, "errors", len(res.Errors))
	return res
}

// QuickSync uploads pending sales only; mirrors are left as they are. It
// shares SyncAll's contract: a push failure lands in the result's error
// list instead of propagating to the caller.
func (o *Orchestrator) QuickSync(ctx context.Context, storeID int64) *models.SyncResult {
	res := &models.SyncResult{}

	if !o.probe.Online(ctx) {
		o.log.Warn(ctx, "quick sync skipped, offline", "store", storeID)
		res.Errors = append(res.Errors, common.ErrOffline.Error())
		return res
	}

	pushed, errs := o.pusher.Push(ctx, storeID)
	res.Pushed = pushed
	res.Errors = append(res.Errors, errs...)

	res.Success = len(res.Errors) == 0
	o.log.Info(ctx, "quick sync finished", "store", storeID,
		"success", res.Success, "pushed", res.Pushed, "errors", len(res.Errors))
	return res
}
