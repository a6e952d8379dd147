package converter

import (
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleRow struct {
	ID           int64
	UserID       int64
	Make         string
	Model        string
	Year         pgtype.Int4
	LicensePlate pgtype.Text
	Color        pgtype.Text
	CreatedAt    pgtype.Timestamptz
}

func (r *VehicleRow) ScanTargets() []any {
	return []any{&r.ID, &r.UserID, &r.Make, &r.Model, &r.Year, &r.LicensePlate, &r.Color, &r.CreatedAt}
}

func VehicleFromRow(row VehicleRow) *vehicle.Vehicle {
	var year *int
	if row.Year.Valid {
		y := int(row.Year.Int32)
		year = &y
	}
	return vehicle.ReconstructVehicle(
		row.ID,
		row.UserID,
		row.Make,
		row.Model,
		year,
		pgconv.StringPtrFromPgtype(row.LicensePlate),
		pgconv.StringPtrFromPgtype(row.Color),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
