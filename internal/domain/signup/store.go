package signup

import (
	"context"
	"time"
)

// Store holds pending signups keyed by an opaque token for a bounded TTL.
// Entries disappear on expiry; Get after expiry returns ErrNotFound.
type Store interface {
	Put(ctx context.Context, token string, pending *PendingSignup, ttl time.Duration) error
	Get(ctx context.Context, token string) (*PendingSignup, error)
	Delete(ctx context.Context, token string) error
}
