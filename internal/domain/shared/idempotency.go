package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which inbound documents were already imported
type IdempotencyStore interface {
	// MarkProcessed records key with a TTL.
	// Returns true if the key was newly recorded, false if it was already present
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if key was recorded and has not expired
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets key so the same document can be submitted again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for duplicate document detection
type IdempotencyConfig struct {
	// TTL is how long a document fingerprint is remembered
	TTL time.Duration

	// Enabled turns duplicate detection on or off
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
