package models

import (
	"database/sql"
	"time"
)

// SaleStatus tracks a sale through the upload lifecycle.
type SaleStatus string

const (
	// SalePending marks a sale awaiting upload. Only pending sales are
	// candidates for a push cycle.
	SalePending SaleStatus = "pending"
	// SaleSynced marks a sale that reached the cloud; it carries exactly
	// one cloud identity for the rest of its life.
	SaleSynced SaleStatus = "synced"
	// SaleError marks a sale whose upload failed. It stays out of later
	// push cycles until reset explicitly.
	SaleError SaleStatus = "error"
)

// Sale is a transaction recorded at the terminal. Its ID is assigned
// locally at creation time; CloudID stays null until a successful upload.
type Sale struct {
	ID            string
	StoreID       int64
	CustomerID    sql.NullInt64
	TotalCents    int64
	PaymentMethod string
	CreatedAt     time.Time
	SyncStatus    SaleStatus
	CloudID       sql.NullInt64
	SyncedAt      sql.NullTime
	Deleted       bool
}

// SaleItem is one line of a sale. ProductID references the product by its
// cloud identity.
type SaleItem struct {
	ID             int64
	SaleID         string
	ProductID      int64
	Quantity       int64
	UnitPriceCents int64
}
