package models

import (
	"database/sql"
	"time"
)

// Product is a mirrored catalog item. CategoryID references the category
// by its cloud identity and is null for uncategorized products; the
// mirror round-trips the null rather than flattening it.
type Product struct {
	ID         int64
	CloudID    int64
	StoreID    int64
	CategoryID sql.NullInt64
	Name       string
	SKU        string
	PriceCents int64
	SyncedAt   time.Time
}
