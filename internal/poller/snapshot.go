package poller

import (
	"context"
	"time"
)

// FetchFunc loads the current value of a remote resource. It must honour ctx
// cancellation.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is the state of a polled resource after a completed fetch.
//
// A failed fetch sets Err but keeps Value and UpdatedAt from the last
// successful one, so views can keep rendering stale data.
type Snapshot[T any] struct {
	// Value is the last successfully fetched value.
	Value T
	// HasValue is false until the first successful fetch.
	HasValue bool
	// Loading is true only before the first fetch has completed.
	Loading bool
	// Err is the error of the most recent fetch, nil on success.
	Err error
	// UpdatedAt is the completion time of the last successful fetch.
	UpdatedAt time.Time
	// Seq increases by one with every completed fetch.
	Seq uint64
}

// Stale reports whether the snapshot holds a value that the most recent
// fetch failed to refresh.
func (s Snapshot[T]) Stale() bool {
	return s.HasValue && s.Err != nil
}
