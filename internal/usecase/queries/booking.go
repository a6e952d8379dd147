package queries

//go:generate mockgen -source=booking.go -destination=../../testutil/mock/queries/booking_mock.go -package=queriesmock

import (
	"context"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/config"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/timeofday"
)

var (
	ErrInvalidDuration  = errs.Mark(errs.New("duration must be between 1 and 1440 minutes"), errs.ErrValidation)
	ErrInvalidDateRange = errs.Mark(errs.New("date_from must not be after date_to"), errs.ErrValidation)
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, page pagination.Params) ([]*BookingListItem, int, error)
	ListAll(ctx context.Context, filter BookingFilter) ([]*BookingListItem, error)
	ActiveIntervals(ctx context.Context, date time.Time) ([]booking.Interval, error)
}

type BookingQueries interface {
	AvailableSlots(ctx context.Context, date string, durationMinutes *int) (*AvailableSlotsView, error)
	GetByID(ctx context.Context, actor user.Actor, id int64) (*BookingView, error)
	ListMine(ctx context.Context, actor user.Actor, page pagination.Params) (pagination.Page[*BookingListItem], error)
	ListAll(ctx context.Context, actor user.Actor, filter BookingFilter, page pagination.Params) (pagination.Page[*BookingListItem], error)
	ExportXLSX(ctx context.Context, actor user.Actor, filter BookingFilter) ([]byte, error)
}

type bookingQueriesImpl struct {
	store           BookingReadStore
	filter          booking.SlotFilter
	defaultDuration int
}

func NewBookingQueries(store BookingReadStore, cfg config.BookingConfig) (BookingQueries, error) {
	mode, err := booking.ParseMode(cfg.SlotMode)
	if err != nil {
		return nil, err
	}
	return &bookingQueriesImpl{
		store:           store,
		filter:          booking.NewSlotFilter(mode),
		defaultDuration: cfg.DefaultDurationMin,
	}, nil
}

func (q *bookingQueriesImpl) AvailableSlots(ctx context.Context, date string, durationMinutes *int) (*AvailableSlotsView, error) {
	day, err := booking.ParseDate(date)
	if err != nil {
		return nil, err
	}

	duration := q.defaultDuration
	if durationMinutes != nil {
		if *durationMinutes <= 0 || *durationMinutes > timeofday.MinutesPerDay {
			return nil, ErrInvalidDuration
		}
		duration = *durationMinutes
	}

	booked, err := q.store.ActiveIntervals(ctx, day)
	if err != nil {
		return nil, err
	}

	slots, err := q.filter.Available(booked, duration)
	if err != nil {
		return nil, err
	}
	return &AvailableSlotsView{Date: booking.FormatDate(day), Slots: slots}, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id int64) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(booking.ErrBookingNotFound, "booking %d", id)
		}
		return nil, err
	}

	if !actor.IsStaff() && view.UserID != actor.ID {
		// same answer as a missing booking so ids of other users stay hidden
		return nil, errs.Wrapf(booking.ErrBookingNotFound, "booking %d", id)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor user.Actor, page pagination.Params) (pagination.Page[*BookingListItem], error) {
	filter := BookingFilter{UserID: &actor.ID}
	items, total, err := q.store.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[*BookingListItem]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor user.Actor, filter BookingFilter, page pagination.Params) (pagination.Page[*BookingListItem], error) {
	if err := checkStaffFilter(actor, filter); err != nil {
		return pagination.Page[*BookingListItem]{}, err
	}
	items, total, err := q.store.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[*BookingListItem]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}

func checkStaffFilter(actor user.Actor, filter BookingFilter) error {
	if !actor.IsStaff() {
		return booking.ErrStaffOnly
	}
	if filter.Status != nil {
		if _, err := booking.ParseStatus(*filter.Status); err != nil {
			return err
		}
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return ErrInvalidDateRange
	}
	return nil
}
