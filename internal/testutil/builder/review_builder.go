//go:build unit || e2e

package builder

import (
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/review"
	"bodyshop/internal/domain/user"
)

type ReviewBuilder struct {
	Author  user.Actor
	Booking *BookingBuilder
	Rating  int
	Comment string
	Now     time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	bb := NewBookingBuilder().WithStatus(booking.StatusCompleted)
	return &ReviewBuilder{
		Author:  user.NewActor(bb.UserID, user.RoleClient),
		Booking: bb,
		Rating:  5,
		Comment: "Excellent service!",
		Now:     time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithBookingStatus(s booking.Status) *ReviewBuilder {
	r.Booking.WithStatus(s)
	return r
}

func (r *ReviewBuilder) WithAuthor(a user.Actor) *ReviewBuilder {
	r.Author = a
	return r
}

func (r *ReviewBuilder) BuildDomain() (*review.Review, error) {
	b, err := r.Booking.BuildDomain()
	if err != nil {
		return nil, err
	}
	return review.NewReview(r.Author, b, r.Rating, r.Comment, r.Now)
}

func (r *ReviewBuilder) MustBuildDomain() *review.Review {
	rev, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return rev
}
