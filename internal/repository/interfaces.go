package repository

import (
	"context"
)

// ScheduleCache stores serialized amortization schedules keyed by their inputs.
type ScheduleCache interface {
	// Get returns the cached payload, or errors.ErrCacheMiss when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key
	Set(ctx context.Context, key string, payload []byte) error

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}
