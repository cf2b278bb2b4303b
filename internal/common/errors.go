// Package common defines shared sentinel errors used across the sync
// engine. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrOffline means the connectivity probe failed at the start of a
	// sync attempt. It short-circuits the attempt before any store I/O.
	ErrOffline = errors.New("no network connectivity")
)
