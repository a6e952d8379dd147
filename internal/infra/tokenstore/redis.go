package tokenstore

import (
	"context"
	"time"

	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bodyshop:revoked:"

type RedisDenylist struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedisDenylist(client *redis.Client, clk clock.Clock) *RedisDenylist {
	return &RedisDenylist{client: client, clock: clk}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.clock.Now())
	if ttl <= 0 {
		// already expired, validation rejects it on its own
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to revoke token", err, infra.KindDBFailure)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to check token revocation", err, infra.KindDBFailure)
	}
	return n > 0, nil
}
