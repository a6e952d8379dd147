package components

import (
	"bodyshop/internal/infra/audit"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/readstore"
	"bodyshop/internal/infra/repository"
	"bodyshop/internal/infra/uow"
	"bodyshop/internal/usecase/queries"
	"bodyshop/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	writeModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewTxBeginner,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewServiceReadStore,
			fx.As(new(queries.ServiceReadStore)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var writeModule = fx.Module("persistence/write",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Audit trail, written outside the caller's transaction
		fx.Annotate(
			repository.NewAuditRepository,
			fx.As(new(shared.AuditRepository)),
		),
		fx.Annotate(
			audit.NewRecorder,
			fx.As(new(shared.AuditRecorder)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
