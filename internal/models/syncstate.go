package models

import (
	"database/sql"
	"time"
)

// SyncState is the per-store bookkeeping row: a denormalized store
// snapshot plus the time of the last successful full sync.
type SyncState struct {
	StoreID    int64
	StoreName  string
	LastSyncAt sql.NullTime
	UpdatedAt  time.Time
}
