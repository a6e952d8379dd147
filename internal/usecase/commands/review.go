package commands

//go:generate mockgen -source=review.go -destination=../../testutil/mock/commands/review_mock.go -package=commandsmock

import (
	"context"

	"bodyshop/internal/domain/booking"
	domreview "bodyshop/internal/domain/review"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/usecase/shared"
)

type CreateReviewRequest struct {
	BookingID int64
	Rating    int
	Comment   string
}

type ReviewCommands interface {
	Create(ctx context.Context, actor user.Actor, req CreateReviewRequest) (int64, error)
	Approve(ctx context.Context, actor user.Actor, reviewID int64) error
	Delete(ctx context.Context, actor user.Actor, reviewID int64) error
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	audit shared.AuditRecorder
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, audit shared.AuditRecorder, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, audit: audit, clock: clk}
}

func (uc *reviewUseCaseImpl) Create(ctx context.Context, actor user.Actor, req CreateReviewRequest) (int64, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, req.BookingID)
		if err != nil {
			return notFoundAs(err, booking.ErrBookingNotFound, "booking %d", req.BookingID)
		}

		rev, err := domreview.NewReview(actor, b, req.Rating, req.Comment, uc.clock.Now())
		if err != nil {
			return err
		}

		id, err := tx.Reviews().Create(ctx, rev)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Wrapf(domreview.ErrReviewAlreadyExists, "booking %d", req.BookingID)
			}
			return err
		}
		createdID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return createdID, nil
}

func (uc *reviewUseCaseImpl) Approve(ctx context.Context, actor user.Actor, reviewID int64) error {
	repo := uc.uow.Repos().Reviews()
	rev, err := repo.FindByID(ctx, reviewID)
	if err != nil {
		return notFoundAs(err, domreview.ErrReviewNotFound, "review %d", reviewID)
	}
	if err := rev.Approve(actor); err != nil {
		return err
	}
	if err := repo.Approve(ctx, reviewID); err != nil {
		return notFoundAs(err, domreview.ErrReviewNotFound, "review %d", reviewID)
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditReviewApproved,
		EntityType: shared.EntityReview,
		EntityID:   &reviewID,
	})
	return nil
}

func (uc *reviewUseCaseImpl) Delete(ctx context.Context, actor user.Actor, reviewID int64) error {
	repo := uc.uow.Repos().Reviews()
	rev, err := repo.FindByID(ctx, reviewID)
	if err != nil {
		return notFoundAs(err, domreview.ErrReviewNotFound, "review %d", reviewID)
	}
	if !rev.CanBeDeletedBy(actor) {
		return domreview.ErrDeleteNotAllowed
	}
	if err := repo.Delete(ctx, reviewID); err != nil {
		return notFoundAs(err, domreview.ErrReviewNotFound, "review %d", reviewID)
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditReviewDeleted,
		EntityType: shared.EntityReview,
		EntityID:   &reviewID,
		Details:    map[string]any{"booking_id": rev.BookingID(), "author_id": rev.UserID()},
	})
	return nil
}
