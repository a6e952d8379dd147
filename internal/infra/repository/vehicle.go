package repository

import (
	"context"

	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
)

var VehicleColumns = []string{"id", "user_id", "make", "model", "year", "license_plate", "color", "created_at"}

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(dbtx db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: dbtx}
}

// FindOwned matches on both id and owner, so a vehicle of another user is reported as not found.
func (r *VehicleRepository) FindOwned(ctx context.Context, id, userID int64) (*vehicle.Vehicle, error) {
	query, args, err := psqlbuilder.Select(VehicleColumns...).
		From("vehicles").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build vehicle select", err, infra.KindDBFailure)
	}

	var row converter.VehicleRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find vehicle", err)
	}
	return converter.VehicleFromRow(row), nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) (int64, error) {
	var year pgtype.Int4
	if v.Year() != nil {
		year = pgtype.Int4{Int32: int32(*v.Year()), Valid: true}
	}
	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("user_id", "make", "model", "year", "license_plate", "color", "created_at").
		Values(v.UserID(), v.Make(), v.Model(), year, pgconv.TextFromPtr(v.LicensePlate()), pgconv.TextFromPtr(v.Color()), v.CreatedAt()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build vehicle insert", err, infra.KindDBFailure)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create vehicle", err)
	}
	return id, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id, userID int64) error {
	query, args, err := psqlbuilder.Delete("vehicles").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build vehicle delete", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}
