package models

import "time"

// SyncResult reports the outcome of one sync cycle. It is transient and
// never persisted.
type SyncResult struct {
	Success bool     `json:"success"`
	Pulled  int      `json:"pulled"`
	Pushed  int      `json:"pushed"`
	Errors  []string `json:"errors,omitempty"`
}

// SyncStatus is a point-in-time, read-only view of the engine state.
// LastSyncAt is nil for a store that has never completed a full sync.
type SyncStatus struct {
	LastSyncAt   *time.Time `json:"lastSyncAt"`
	PendingCount int        `json:"pendingCount"`
	IsOnline     bool       `json:"isOnline"`
}
