package readstore

import (
	"context"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var serviceViewColumns = []string{
	"s.id", "s.name", "s.description", "s.duration_minutes", psqlbuilder.Cents("s.price"),
	"s.category_id", "c.name", "s.is_active",
}

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

func serviceBase() sq.SelectBuilder {
	return psqlbuilder.Select(serviceViewColumns...).
		From("services s").
		LeftJoin("service_categories c ON c.id = s.category_id")
}

func (r *ServiceReadStore) ListActive(ctx context.Context) ([]*queries.ServiceView, error) {
	query, args, err := serviceBase().
		Where(sq.Eq{"s.is_active": true}).
		OrderBy("c.name NULLS LAST", "s.name").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service list select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ServiceView, error) {
		return scanServiceView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan services", err)
	}
	return views, nil
}

func (r *ServiceReadStore) FindByID(ctx context.Context, id int64) (*queries.ServiceView, error) {
	query, args, err := serviceBase().Where(sq.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service select", err, infra.KindDBFailure)
	}

	view, err := scanServiceView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get service view", err)
	}
	return view, nil
}

func scanServiceView(row pgx.Row) (*queries.ServiceView, error) {
	var (
		v            queries.ServiceView
		duration     int32
		priceCents   int64
		categoryID   pgtype.Int8
		categoryName pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Description, &duration, &priceCents, &categoryID, &categoryName, &v.IsActive); err != nil {
		return nil, err
	}
	v.DurationMinutes = int(duration)
	v.Price = money.FromCents(priceCents)
	v.CategoryID = pgconv.Int8PtrFromPgtype(categoryID)
	v.CategoryName = pgconv.StringPtrFromPgtype(categoryName)
	return &v, nil
}
