package interfaces

import (
	"context"
	"time"
)

// SubmissionGuard rejects a second submission of the same key while the
// first is still in flight.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
