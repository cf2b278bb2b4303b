package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/models"
)

// DefaultSyncInterval is how often the scheduler fires a periodic quick
// sync when no interval is configured.
const DefaultSyncInterval = 5 * time.Minute

// Scheduler drives background reconciliation: one full sync right after
// Start, then quick syncs on a fixed period until Stop. Start is
// idempotent — calling it twice leaves exactly one timer running. Each
// run executes on its own goroutine, so a tick that lands while a
// previous run is still executing is skipped outright, not queued.
type Scheduler struct {
	orch     *Orchestrator
	status   *StatusReporter
	interval time.Duration
	log      logging.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	inFlight atomic.Bool
}

func NewScheduler(orch *Orchestrator, status *StatusReporter, interval time.Duration, log logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Scheduler{orch: orch, status: status, interval: interval, log: log}
}

// Start stops any previous schedule, fires an immediate full sync, then
// arms the periodic timer. Events for every triggered run go to sink.
func (s *Scheduler) Start(ctx context.Context, storeID int64, sink Sink) {
	s.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.run(runCtx, storeID, sink, done)
}

// Stop prevents future scheduled runs and waits for an in-flight one to
// finish. It never interrupts a sync already executing. Safe to call
// repeatedly, including without a prior Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) run(ctx context.Context, storeID int64, sink Sink, done chan struct{}) {
	defer close(done)

	// The ticker is armed before the initial sync and every trigger gets
	// its own goroutine; the inFlight flag is what arbitrates between a
	// tick and a still-running sync.
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	fire := func(kind EventKind) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.trigger(ctx, storeID, sink, kind)
		}()
	}

	fire(EventInitial)

	for {
		select {
		case <-ticker.C:
			fire(EventPeriodic)
		case <-ctx.Done():
			wg.Wait()
			return
		}
	}
}

// trigger runs one sync and emits its event. The sync itself runs on a
// detached context: Stop only prevents future runs, it must not abort
// store writes already in progress.
func (s *Scheduler) trigger(ctx context.Context, storeID int64, sink Sink, kind EventKind) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Warn(ctx, "previous sync still running, skipping tick", "store", storeID)
		return
	}
	defer s.inFlight.Store(false)

	syncCtx := context.WithoutCancel(ctx)

	var res *models.SyncResult
	if kind == EventInitial {
		res = s.orch.SyncAll(syncCtx, storeID)
	} else {
		res = s.orch.QuickSync(syncCtx, storeID)
	}

	ev := Event{
		Kind:      kind,
		Success:   res.Success,
		Pulled:    res.Pulled,
		Pushed:    res.Pushed,
		Errors:    res.Errors,
		Timestamp: time.Now().UTC(),
	}
	if st, err := s.status.Status(syncCtx, storeID); err == nil {
		ev.PendingSales = st.PendingCount
		ev.IsOnline = st.IsOnline
		ev.LastSyncAt = st.LastSyncAt
	} else {
		s.log.Warn(ctx, "status lookup after sync failed", "store", storeID, "error", err)
	}

	if sink != nil {
		sink.Notify(ev)
	}
}
