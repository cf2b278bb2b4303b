package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openretail/possync/internal/local"
	"github.com/openretail/possync/internal/logging"
	"github.com/openretail/possync/internal/models"
)

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openLocal(t *testing.T) *local.Store {
	t.Helper()
	s, err := local.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fakeProbe reports a fixed connectivity answer.
type fakeProbe bool

func (p fakeProbe) Online(ctx context.Context) bool { return bool(p) }

// fakeCloud is an in-memory stand-in for the cloud store. It can be told
// to fail specific sale uploads a number of times and to delay list calls.
type fakeCloud struct {
	mu sync.Mutex

	categories []*models.Category
	products   []*models.Product
	customers  []*models.Customer

	listErr   error
	listDelay time.Duration

	nextSaleID int64
	failSales  map[string]int

	listCalls    int
	createCalls  int
	createdSales map[string]int64
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		nextSaleID:   40,
		failSales:    map[string]int{},
		createdSales: map[string]int64{},
	}
}

func (f *fakeCloud) ListCategories(ctx context.Context, storeID int64) ([]*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Category, len(f.categories))
	for i, c := range f.categories {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeCloud) ListProducts(ctx context.Context, storeID int64) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]*models.Product, len(f.products))
	for i, p := range f.products {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeCloud) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]*models.Customer, len(f.customers))
	for i, c := range f.customers {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeCloud) CreateSale(ctx context.Context, sale *models.Sale, items []*models.SaleItem) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if n := f.failSales[sale.ID]; n > 0 {
		f.failSales[sale.ID] = n - 1
		return 0, errors.New("cloud write failed")
	}
	f.nextSaleID++
	f.createdSales[sale.ID] = f.nextSaleID
	return f.nextSaleID, nil
}

func (f *fakeCloud) calls() (list, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls
}

// captureSink records every event it receives.
type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Notify(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *captureSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
