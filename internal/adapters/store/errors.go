package store

import "errors"

// Sentinel kinds for store errors. ErrPersist wraps individual write
// failures so callers can distinguish "rating changed locally, not saved"
// from other faults.
var (
	ErrPersist = errors.New("persist failed")
	ErrLoad    = errors.New("load failed")
)
