package shared

//go:generate mockgen -source=idempotency.go -destination=../../testutil/mock/shared/idempotency_mock.go -package=sharedmock

import (
	"context"
	"time"
)

// IdempotencyRecord binds a client-supplied key to the booking it created.
type IdempotencyRecord struct {
	UserID      int64
	Key         string
	Endpoint    string
	RequestHash string
	BookingID   int64
	ExpiresAt   time.Time
}

type IdempotencyRepository interface {
	// Find returns the unexpired record for the key, or a not-found repository error.
	Find(ctx context.Context, userID int64, key string, now time.Time) (*IdempotencyRecord, error)
	// Save stores the record, taking over an expired row with the same key.
	// A live row with the same key yields a duplicate-key repository error.
	Save(ctx context.Context, rec IdempotencyRecord, now time.Time) error
}
