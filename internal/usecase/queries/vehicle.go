package queries

//go:generate mockgen -source=vehicle.go -destination=../../testutil/mock/queries/vehicle_mock.go -package=queriesmock

import (
	"context"

	"bodyshop/internal/domain/user"
)

type VehicleReadStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*VehicleView, error)
}

type VehicleQueries interface {
	ListMine(ctx context.Context, actor user.Actor) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) ListMine(ctx context.Context, actor user.Actor) ([]*VehicleView, error) {
	return q.store.ListByUser(ctx, actor.ID)
}
