package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE sales (id TEXT PRIMARY KEY, total_cents INTEGER NOT NULL);
		CREATE TABLE sale_items (sale_id TEXT NOT NULL, product_id INTEGER NOT NULL);
	`)
	require.NoError(t, err)
	return db
}

func saleCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&n))
	return n
}

func TestWithTx_CommitsWholeUnit(t *testing.T) {
	db := openDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sales (id, total_cents) VALUES ('s1', 900)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO sale_items (sale_id, product_id) VALUES ('s1', 7)`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saleCount(t, db))
}

func TestWithTx_ErrorLeavesNoHeader(t *testing.T) {
	db := openDB(t)

	wantErr := errors.New("item rejected")
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sales (id, total_cents) VALUES ('s1', 900)`); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Zero(t, saleCount(t, db), "header written before the failure must roll back")
}

func TestWithTx_PanicRollsBackAndRethrows(t *testing.T) {
	db := openDB(t)

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO sales (id, total_cents) VALUES ('s1', 900)`)
			require.NoError(t, err)
			panic("mid-transaction")
		})
	})
	assert.Zero(t, saleCount(t, db))
}

func TestWithTx_BeginFailure(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called, "fn must not run when begin fails")
}
