package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/models"
	"github.com/openretail/possync/internal/netx"
)

// StatusReporter answers point-in-time questions about the engine without
// side effects. It only reads, so it is safe to call at any moment,
// including while a sync is running.
type StatusReporter struct {
	local *local.Store
	probe netx.Probe
}

func NewStatusReporter(localStore *local.Store, probe netx.Probe) *StatusReporter {
	return &StatusReporter{local: localStore, probe: probe}
}

// Status reports the pending-sale count, the last full-sync time and the
// current connectivity for a store.
func (r *StatusReporter) Status(ctx context.Context, storeID int64) (*models.SyncStatus, error) {
	pending, err := r.local.Sales.CountPending(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending sales: %w", err)
	}

	last, err := r.local.SyncState.LastSyncAt(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time: %w", err)
	}

	return &models.SyncStatus{
		LastSyncAt:   last,
		PendingCount: pending,
		IsOnline:     r.probe.Online(ctx),
	}, nil
}

// Refresh is an explicit status refresh: it reads Status and additionally
// delivers it to sink in the same event envelope scheduler-triggered runs
// use, with kind "status" and no sync counters attached.
func (r *StatusReporter) Refresh(ctx context.Context, storeID int64, sink Sink) (*models.SyncStatus, error) {
	st, err := r.Status(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if sink != nil {
		sink.Notify(Event{
			Kind:         EventStatus,
			Success:      true,
			PendingSales: st.PendingCount,
			IsOnline:     st.IsOnline,
			LastSyncAt:   st.LastSyncAt,
			Timestamp:    time.Now().UTC(),
		})
	}

	return st, nil
}
