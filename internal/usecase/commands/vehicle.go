package commands

//go:generate mockgen -source=vehicle.go -destination=../../testutil/mock/commands/vehicle_mock.go -package=commandsmock

import (
	"context"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/usecase/shared"
)

type VehicleCommands interface {
	Create(ctx context.Context, actor user.Actor, attrs vehicle.Attributes) (int64, error)
	Delete(ctx context.Context, actor user.Actor, id int64) error
}

type vehicleCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVehicleCommands(uow shared.UnitOfWork, clk clock.Clock) VehicleCommands {
	return &vehicleCommandsImpl{uow: uow, clock: clk}
}

func (uc *vehicleCommandsImpl) Create(ctx context.Context, actor user.Actor, attrs vehicle.Attributes) (int64, error) {
	v, err := vehicle.NewVehicle(actor.ID, attrs, uc.clock.Now())
	if err != nil {
		return 0, err
	}
	return uc.uow.Repos().Vehicles().Create(ctx, v)
}

func (uc *vehicleCommandsImpl) Delete(ctx context.Context, actor user.Actor, id int64) error {
	err := uc.uow.Repos().Vehicles().Delete(ctx, id, actor.ID)
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Wrapf(vehicle.ErrVehicleNotFound, "vehicle %d", id)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Wrapf(vehicle.ErrVehicleHasBooking, "vehicle %d", id)
	default:
		return err
	}
}
