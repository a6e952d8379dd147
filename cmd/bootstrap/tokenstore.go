package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"bodyshop/internal/infra/tokenstore"
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/config"
	"bodyshop/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var TokenStoreModule = fx.Module("tokenstore",
	fx.Provide(
		NewTokenDenylist,
	),
)

// NewTokenDenylist uses Redis when an address is configured so revocations
// survive restarts and are shared between instances.
func NewTokenDenylist(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (shared.TokenDenylist, error) {
	if cfg.Redis.Address == "" {
		logger.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
		return tokenstore.NewMemoryDenylist(clk), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return tokenstore.NewRedisDenylist(client, clk), nil
}
