package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T, cloud *fakeCloud, interval time.Duration) (*Scheduler, *captureSink) {
	t.Helper()
	store := openLocal(t)
	log := newTestLogger()
	o := newOrchestrator(store, cloud, true)
	status := NewStatusReporter(store, fakeProbe(true))
	s := NewScheduler(o, status, interval, log)
	t.Cleanup(s.Stop)
	return s, &captureSink{}
}

func countKinds(events []Event) (initial, periodic int) {
	for _, e := range events {
		switch e.Kind {
		case EventInitial:
			initial++
		case EventPeriodic:
			periodic++
		}
	}
	return initial, periodic
}

func TestScheduler_InitialThenPeriodic(t *testing.T) {
	s, sink := newScheduler(t, newFakeCloud(), 60*time.Millisecond)

	s.Start(context.Background(), 1, sink)
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	events := sink.snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, EventInitial, events[0].Kind, "first run is the startup full sync")

	initial, periodic := countKinds(events)
	assert.Equal(t, 1, initial)
	assert.GreaterOrEqual(t, periodic, 1)
	for _, e := range events {
		assert.True(t, e.Success)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	s, sink := newScheduler(t, newFakeCloud(), 100*time.Millisecond)
	ctx := context.Background()

	s.Start(ctx, 1, sink)
	s.Start(ctx, 1, sink) // must replace, not double, the timer
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	_, periodic := countKinds(sink.snapshot())
	// One timer at 100ms over ~250ms fires at most 2-3 times; a leaked
	// second timer would roughly double that.
	assert.LessOrEqual(t, periodic, 3)
	assert.GreaterOrEqual(t, periodic, 1)
}

func TestScheduler_StopPreventsFutureRuns(t *testing.T) {
	s, sink := newScheduler(t, newFakeCloud(), 50*time.Millisecond)

	s.Start(context.Background(), 1, sink)
	time.Sleep(80 * time.Millisecond)
	s.Stop()

	n := len(sink.snapshot())
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, n, len(sink.snapshot()), "no events after Stop")

	// Stop again is a no-op.
	s.Stop()
}

func TestScheduler_SkipsTickWhileRunning(t *testing.T) {
	cloud := newFakeCloud()
	cloud.listDelay = 120 * time.Millisecond // slow initial full sync
	s, sink := newScheduler(t, cloud, 30*time.Millisecond)

	s.Start(context.Background(), 1, sink)
	time.Sleep(220 * time.Millisecond)
	s.Stop()

	events := sink.snapshot()
	require.NotEmpty(t, events)

	// Ticks at 30/60/90ms land while the initial sync is still inside the
	// slow list call; they must be dropped, not run concurrently and not
	// replayed afterwards. The first event to finish is therefore the
	// initial one, and only the ticks after ~120ms produce quick syncs.
	assert.Equal(t, EventInitial, events[0].Kind, "no quick sync may complete before the slow startup sync")

	initial, periodic := countKinds(events)
	assert.Equal(t, 1, initial)
	assert.GreaterOrEqual(t, periodic, 1)
	assert.LessOrEqual(t, periodic, 4, "skipped ticks must not pile up into extra runs")

	for _, e := range events[1:] {
		assert.False(t, e.Timestamp.Before(events[0].Timestamp))
	}
}
