package converter

import (
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceRow struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int32
	PriceCents      int64
	CategoryID      pgtype.Int8
	IsActive        bool
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (r *ServiceRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.Name, &r.Description, &r.DurationMinutes, &r.PriceCents,
		&r.CategoryID, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	}
}

func ServiceFromRow(row ServiceRow) *service.Service {
	return service.ReconstructService(
		row.ID,
		row.Name,
		row.Description,
		int(row.DurationMinutes),
		money.FromCents(row.PriceCents),
		pgconv.Int8PtrFromPgtype(row.CategoryID),
		row.IsActive,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
