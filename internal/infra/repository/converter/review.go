package converter

import (
	"bodyshop/internal/domain/review"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewRow struct {
	ID         int64
	UserID     int64
	BookingID  int64
	Rating     int16
	Comment    string
	IsApproved bool
	CreatedAt  pgtype.Timestamptz
}

func (r *ReviewRow) ScanTargets() []any {
	return []any{&r.ID, &r.UserID, &r.BookingID, &r.Rating, &r.Comment, &r.IsApproved, &r.CreatedAt}
}

// ReviewFromRow trusts stored values; CHECK constraints keep the rating in range.
func ReviewFromRow(row ReviewRow) (*review.Review, error) {
	rating, err := review.NewRating(int(row.Rating))
	if err != nil {
		return nil, err
	}
	comment, err := review.NewComment(row.Comment)
	if err != nil {
		return nil, err
	}
	return review.ReconstructReview(row.ID, row.UserID, row.BookingID, rating, comment, row.IsApproved, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}
