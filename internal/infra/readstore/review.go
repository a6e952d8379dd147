package readstore

import (
	"context"

	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (r *ReviewReadStore) ListApproved(ctx context.Context, page pagination.Params) ([]*queries.ReviewView, int, error) {
	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("reviews").
		Where(sq.Eq{"is_approved": true}).
		ToSql()
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to build review count", err, infra.KindDBFailure)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reviews", err)
	}
	if total == 0 {
		return []*queries.ReviewView{}, 0, nil
	}

	query, args, err := psqlbuilder.Select("r.id", "r.user_id", "u.name", "r.booking_id", "r.rating", "r.comment", "r.is_approved", "r.created_at").
		From("reviews r").
		Join("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.is_approved": true}).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to build review list select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list reviews", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReviewView, error) {
		var (
			v         queries.ReviewView
			rating    int16
			createdAt pgtype.Timestamptz
		)
		if err := row.Scan(&v.ID, &v.UserID, &v.UserName, &v.BookingID, &rating, &v.Comment, &v.IsApproved, &createdAt); err != nil {
			return nil, err
		}
		v.Rating = int(rating)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		return &v, nil
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to scan reviews", err)
	}
	return views, int(total), nil
}
