package sampler

import "errors"

// Sentinel kinds for sampling errors.
var (
	ErrInsufficientRecords = errors.New("fewer than two records to sample")
)
