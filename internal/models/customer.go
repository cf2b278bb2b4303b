package models

import "time"

// Customer is a mirrored customer record. Customers are not scoped to a
// store: every terminal mirrors the full set so walk-in customers resolve
// anywhere.
type Customer struct {
	ID       int64
	CloudID  int64
	Name     string
	Email    string
	Phone    string
	SyncedAt time.Time
}
