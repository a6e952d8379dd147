package components

import (
	"bodyshop/internal/handler"
	"bodyshop/internal/handler/api"
	"bodyshop/internal/handler/middleware"
	"bodyshop/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewServiceHandler,
		api.NewVehicleHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		func(cfg config.Config) *middleware.RateLimiter { return middleware.NewRateLimiter(cfg.RateLimit) },
	),
	fx.Invoke(handler.NewRouter),
)
