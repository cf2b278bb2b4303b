// Package models defines the typed entities crossing the local/cloud
// boundary, plus the transient result shapes returned by sync operations.
//
// Mirrored entities (Category, Product, Customer) are reference data owned
// by the cloud: the cloud assigns their identity and every pull overwrites
// their business fields locally. Sales are the transactional queue: created
// locally first and uploaded exactly once.
package models

import "time"

// Category is a mirrored product category. CloudID is the identity
// assigned by the cloud store; local rows are keyed by it during pulls.
type Category struct {
	ID       int64
	CloudID  int64
	StoreID  int64
	Name     string
	SyncedAt time.Time
}
