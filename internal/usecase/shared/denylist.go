package shared

//go:generate mockgen -source=denylist.go -destination=../../testutil/mock/shared/denylist_mock.go -package=sharedmock

import (
	"context"
	"time"
)

// TokenDenylist remembers revoked token ids until the token would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
