package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed keys to prevent duplicate processing.
// The gift engine uses it for two things: a run-level lock so two
// overlapping invocations cannot consume the same unprocessed orders,
// and per-target keys so a retried run skips destinations that already
// received their gift.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release removes a key before its TTL expires. Used to free the
	// run lock when a run finishes.
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
