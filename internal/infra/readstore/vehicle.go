package readstore

import (
	"context"

	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

func (r *VehicleReadStore) ListByUser(ctx context.Context, userID int64) ([]*queries.VehicleView, error) {
	query, args, err := psqlbuilder.Select(repository.VehicleColumns...).
		From("vehicles").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build vehicle list select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.VehicleView, error) {
		var vr converter.VehicleRow
		if err := row.Scan(vr.ScanTargets()...); err != nil {
			return nil, err
		}
		v := converter.VehicleFromRow(vr)
		return &queries.VehicleView{
			ID:           v.ID(),
			UserID:       v.UserID(),
			Make:         v.Make(),
			Model:        v.Model(),
			Year:         v.Year(),
			LicensePlate: v.LicensePlate(),
			Color:        v.Color(),
			CreatedAt:    v.CreatedAt(),
		}, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan vehicles", err)
	}
	return views, nil
}
