package repository

import (
	"context"

	"bodyshop/internal/domain/service"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	psqlbuilder.Cents("price"),
	"category_id",
	"is_active",
	"created_at",
	"updated_at",
}

type ServiceRepository struct {
	db db.DBTX
}

func NewServiceRepository(dbtx db.DBTX) *ServiceRepository {
	return &ServiceRepository{db: dbtx}
}

// FindByIDs returns the services that exist, in no particular order. Callers
// compare against the requested ids to detect missing ones.
func (r *ServiceRepository) FindByIDs(ctx context.Context, ids []int64) ([]*service.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find services", err)
	}
	services, err := pgx.CollectRows(rows, scanService)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan services", err)
	}
	return services, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id int64) (*service.Service, error) {
	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service select", err, infra.KindDBFailure)
	}

	var row converter.ServiceRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return converter.ServiceFromRow(row), nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *service.Service) (int64, error) {
	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "description", "duration_minutes", "price", "category_id", "is_active").
		Values(s.Name(), s.Description(), s.DurationMinutes(), psqlbuilder.FromCents(s.Price().Cents()), pgconv.Int8FromPtr(s.CategoryID()), s.IsActive()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build service insert", err, infra.KindDBFailure)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create service", err)
	}
	return id, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id int64, s *service.Service) error {
	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name()).
		Set("description", s.Description()).
		Set("duration_minutes", s.DurationMinutes()).
		Set("price", psqlbuilder.FromCents(s.Price().Cents())).
		Set("category_id", pgconv.Int8FromPtr(s.CategoryID())).
		Set("is_active", s.IsActive()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build service update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanService(row pgx.CollectableRow) (*service.Service, error) {
	var sr converter.ServiceRow
	if err := row.Scan(sr.ScanTargets()...); err != nil {
		return nil, err
	}
	return converter.ServiceFromRow(sr), nil
}
