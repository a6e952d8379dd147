package bootstrap

import (
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

// SettingsModule derives narrower settings from config.Config. It is separate
// from ConfigModule so tests can supply their own config.
var SettingsModule = fx.Module("settings",
	fx.Provide(
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		clock.NewRealClock,
	),
)
