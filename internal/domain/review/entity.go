package review

import (
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
)

var (
	ErrInvalidRating       = errs.Mark(errs.New("rating must be between 1 and 5"), errs.ErrValidation)
	ErrCommentTooLong      = errs.Mark(errs.New("comment exceeds maximum length"), errs.ErrValidation)
	ErrBookingNotEligible  = errs.Mark(errs.New("only completed bookings can be reviewed"), errs.ErrValidation)
	ErrBookingNotOwned     = errs.Mark(errs.New("only the booking owner can review it"), errs.ErrPermissionDenied)
	ErrReviewAlreadyExists = errs.Mark(errs.New("review already exists for this booking"), errs.ErrConflict)
	ErrReviewNotFound      = errs.Mark(errs.New("review not found"), errs.ErrNotFound)
	ErrDeleteNotAllowed    = errs.Mark(errs.New("only the author or an admin can delete a review"), errs.ErrPermissionDenied)
	ErrApproveNotAllowed   = errs.Mark(errs.New("only staff can approve reviews"), errs.ErrPermissionDenied)
)

type Review struct {
	id         int64
	userID     int64
	bookingID  int64
	rating     Rating
	comment    Comment
	isApproved bool
	createdAt  time.Time
}

// NewReview checks that author owns the completed booking being reviewed.
// New reviews wait for staff approval before being listed publicly.
func NewReview(author user.Actor, b *booking.Booking, ratingValue int, commentText string, now time.Time) (*Review, error) {
	if b.UserID() != author.ID {
		return nil, ErrBookingNotOwned
	}
	if b.Status() != booking.StatusCompleted {
		return nil, errs.Wrapf(ErrBookingNotEligible, "booking %d is %s", b.ID(), b.Status())
	}

	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}
	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Review{
		userID:    author.ID,
		bookingID: b.ID(),
		rating:    rating,
		comment:   comment,
		createdAt: now,
	}, nil
}

func ReconstructReview(id, userID, bookingID int64, rating Rating, comment Comment, isApproved bool, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		userID:     userID,
		bookingID:  bookingID,
		rating:     rating,
		comment:    comment,
		isApproved: isApproved,
		createdAt:  createdAt,
	}
}

func (r *Review) Approve(actor user.Actor) error {
	if !actor.IsStaff() {
		return ErrApproveNotAllowed
	}
	r.isApproved = true
	return nil
}

func (r *Review) CanBeDeletedBy(actor user.Actor) bool {
	return actor.IsAdmin() || r.userID == actor.ID
}

func (r *Review) ID() int64            { return r.id }
func (r *Review) UserID() int64        { return r.userID }
func (r *Review) BookingID() int64     { return r.bookingID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() Comment     { return r.comment }
func (r *Review) IsApproved() bool     { return r.isApproved }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
