package bootstrap

import (
	"bodyshop/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	SettingsModule,
	LoggerModule,
	DBModule,
	JWTModule,
	TokenStoreModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
