package repository

import (
	"context"

	"bodyshop/internal/domain/review"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/psqlbuilder"

	sq "github.com/Masterminds/squirrel"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) (int64, error) {
	query, args, err := psqlbuilder.Insert("reviews").
		Columns("user_id", "booking_id", "rating", "comment", "is_approved", "created_at").
		Values(rev.UserID(), rev.BookingID(), rev.Rating().Value(), rev.Comment().String(), rev.IsApproved(), rev.CreatedAt()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build review insert", err, infra.KindDBFailure)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*review.Review, error) {
	query, args, err := psqlbuilder.Select("id", "user_id", "booking_id", "rating", "comment", "is_approved", "created_at").
		From("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review select", err, infra.KindDBFailure)
	}

	var row converter.ReviewRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	rev, err := converter.ReviewFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert review row", err, infra.KindDBFailure)
	}
	return rev, nil
}

func (r *ReviewRepository) Approve(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE reviews SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to approve review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
