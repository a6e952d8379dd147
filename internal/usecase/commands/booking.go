package commands

//go:generate mockgen -source=booking.go -destination=../../testutil/mock/commands/booking_mock.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/clock"
	"bodyshop/internal/pkg/config"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/ptr"
	"bodyshop/internal/usecase/shared"
)

const createBookingEndpoint = "POST /api/bookings"

var (
	ErrIdempotencyKeyReused = errs.Mark(errs.New("idempotency key was already used for a different request"), errs.ErrConflict)
	ErrIdempotencyKeyInUse  = errs.Mark(errs.New("a request with this idempotency key is already being processed"), errs.ErrConflict)
)

type CreateBookingRequest struct {
	VehicleID  int64
	Date       string
	StartTime  string
	ServiceIDs []int64
	Notes      *string
	// IdempotencyKey makes retries of the same request return the first booking.
	IdempotencyKey *string
}

type CreateBookingResult struct {
	BookingID  int64
	EndTime    string
	TotalPrice money.Money
	// Replayed is set when the result comes from an earlier request with the same key.
	Replayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, actor user.Actor, req CreateBookingRequest) (*CreateBookingResult, error)
	Cancel(ctx context.Context, actor user.Actor, bookingID int64) error
	UpdateStatus(ctx context.Context, actor user.Actor, bookingID int64, status string) error
	UpdateServices(ctx context.Context, actor user.Actor, bookingID int64, serviceIDs []int64) error
}

type bookingCommandsImpl struct {
	uow              shared.UnitOfWork
	audit            shared.AuditRecorder
	clock            clock.Clock
	enforceNoOverlap bool
	idempotencyTTL   time.Duration
}

func NewBookingCommands(uow shared.UnitOfWork, audit shared.AuditRecorder, clk clock.Clock, cfg config.BookingConfig) BookingCommands {
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &bookingCommandsImpl{
		uow:              uow,
		audit:            audit,
		clock:            clk,
		enforceNoOverlap: cfg.EnforceNoOverlap,
		idempotencyTTL:   ttl,
	}
}

// within picks the isolation level: overlap checks only hold under serializable.
func (uc *bookingCommandsImpl) within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if uc.enforceNoOverlap {
		return uc.uow.WithinSerializable(ctx, fn)
	}
	return uc.uow.Within(ctx, fn)
}

func (uc *bookingCommandsImpl) Create(ctx context.Context, actor user.Actor, req CreateBookingRequest) (*CreateBookingResult, error) {
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	serviceIDs := uniqueIDs(req.ServiceIDs)
	now := uc.clock.Now()

	var key, hash string
	if req.IdempotencyKey != nil {
		key = *req.IdempotencyKey
		hash = requestHash(req, serviceIDs)
	}

	var (
		created  *booking.Booking
		replayed bool
	)
	err = uc.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if key != "" {
			prev, err := uc.replay(ctx, tx, actor, key, hash, now)
			if err != nil {
				return err
			}
			if prev != nil {
				created, replayed = prev, true
				return nil
			}
		}

		b, err := uc.insert(ctx, tx, actor, req, date, serviceIDs, now)
		if err != nil {
			return err
		}

		if key != "" {
			err := tx.Idempotency().Save(ctx, shared.IdempotencyRecord{
				UserID:      actor.ID,
				Key:         key,
				Endpoint:    createBookingEndpoint,
				RequestHash: hash,
				BookingID:   b.ID(),
				ExpiresAt:   now.Add(uc.idempotencyTTL),
			}, now)
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrIdempotencyKeyInUse
			}
			if err != nil {
				return err
			}
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateBookingResult{
		BookingID:  created.ID(),
		EndTime:    created.EndTimeString(),
		TotalPrice: created.TotalPrice(),
		Replayed:   replayed,
	}
	if replayed {
		return result, nil
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditBookingCreated,
		EntityType: shared.EntityBooking,
		EntityID:   ptr.Ptr(created.ID()),
		Details: map[string]any{
			"date":        booking.FormatDate(created.Date()),
			"start_time":  created.StartTimeString(),
			"end_time":    created.EndTimeString(),
			"service_ids": serviceIDs,
			"total_price": created.TotalPrice().String(),
		},
	})

	return result, nil
}

// replay returns the booking an earlier request with the same key created,
// or nil when the key is unused or expired.
func (uc *bookingCommandsImpl) replay(ctx context.Context, tx shared.Tx, actor user.Actor, key, hash string, now time.Time) (*booking.Booking, error) {
	rec, err := tx.Idempotency().Find(ctx, actor.ID, key, now)
	if infra.IsKind(err, infra.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.Endpoint != createBookingEndpoint || rec.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}

	b, err := tx.Bookings().FindByID(ctx, rec.BookingID)
	if err != nil {
		return nil, notFoundAs(err, booking.ErrBookingNotFound, "booking %d", rec.BookingID)
	}
	return b, nil
}

func (uc *bookingCommandsImpl) insert(ctx context.Context, tx shared.Tx, actor user.Actor, req CreateBookingRequest, date time.Time, serviceIDs []int64, now time.Time) (*booking.Booking, error) {
	if _, err := tx.Vehicles().FindOwned(ctx, req.VehicleID, actor.ID); err != nil {
		return nil, notFoundAs(err, vehicle.ErrVehicleNotOwned, "vehicle %d", req.VehicleID)
	}

	specs, err := resolveServices(ctx, tx.Services(), serviceIDs)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(booking.NewBookingParams{
		UserID:    actor.ID,
		VehicleID: req.VehicleID,
		Date:      date,
		StartTime: req.StartTime,
		Services:  specs,
		Notes:     req.Notes,
	}, now)
	if err != nil {
		return nil, err
	}

	if uc.enforceNoOverlap {
		booked, err := tx.Bookings().ListActiveByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		iv := b.Interval()
		if booking.Conflicts(booked, iv.Start, iv.End) {
			return nil, errs.Wrapf(booking.ErrSlotUnavailable, "%s %s-%s", req.Date, b.StartTimeString(), b.EndTimeString())
		}
	}

	id, err := tx.Bookings().Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.SetID(id)

	if err := tx.Bookings().CreateLineItems(ctx, id, b.LineItems()); err != nil {
		return nil, err
	}
	return b, nil
}

// requestHash fingerprints the booking-defining fields. Service order and
// duplicates do not change it.
func requestHash(req CreateBookingRequest, serviceIDs []int64) string {
	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	ids := slices.Clone(serviceIDs)
	slices.Sort(ids)

	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%s|%s|%v|%s", req.VehicleID, req.Date, req.StartTime, ids, notes))
	return hex.EncodeToString(sum[:])
}

func (uc *bookingCommandsImpl) Cancel(ctx context.Context, actor user.Actor, bookingID int64) error {
	var from booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, booking.ErrBookingNotFound, "booking %d", bookingID)
		}
		from = b.Status()
		if err := b.Cancel(actor, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().UpdateStatus(ctx, b)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditBookingCancelled,
		EntityType: shared.EntityBooking,
		EntityID:   &bookingID,
		Details:    map[string]any{"from": from.String()},
	})
	return nil
}

func (uc *bookingCommandsImpl) UpdateStatus(ctx context.Context, actor user.Actor, bookingID int64, status string) error {
	if !actor.IsStaff() {
		return booking.ErrStaffOnly
	}
	next, err := booking.ParseStatus(status)
	if err != nil {
		return err
	}

	var from booking.Status
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, booking.ErrBookingNotFound, "booking %d", bookingID)
		}
		from = b.Status()
		if err := b.ChangeStatus(actor, next, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().UpdateStatus(ctx, b)
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditBookingStatusChanged,
		EntityType: shared.EntityBooking,
		EntityID:   &bookingID,
		Details:    map[string]any{"from": from.String(), "to": next.String()},
	})
	return nil
}

// UpdateServices re-reads the live service rows, so price or duration edits
// made since creation flow into the recomputed totals.
func (uc *bookingCommandsImpl) UpdateServices(ctx context.Context, actor user.Actor, bookingID int64, serviceIDs []int64) error {
	serviceIDs = uniqueIDs(serviceIDs)

	var updated *booking.Booking
	err := uc.within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, booking.ErrBookingNotFound, "booking %d", bookingID)
		}
		if !b.CanBeViewedBy(actor) {
			return errs.Wrapf(booking.ErrBookingNotFound, "booking %d", bookingID)
		}

		specs, err := resolveServices(ctx, tx.Services(), serviceIDs)
		if err != nil {
			return err
		}

		if err := b.ReplaceServices(actor, specs, uc.clock.Now()); err != nil {
			return err
		}

		if uc.enforceNoOverlap {
			booked, err := tx.Bookings().ListActiveByDate(ctx, b.Date())
			if err != nil {
				return err
			}
			iv := b.Interval()
			if booking.Conflicts(withoutBooking(booked, b.ID()), iv.Start, iv.End) {
				return errs.Wrapf(booking.ErrSlotUnavailable, "%s %s-%s", booking.FormatDate(b.Date()), b.StartTimeString(), b.EndTimeString())
			}
		}

		if err := tx.Bookings().ReplaceLineItems(ctx, bookingID, b.LineItems()); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateTotals(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, shared.AuditEntry{
		UserID:     &actor.ID,
		Action:     shared.AuditBookingServicesChanged,
		EntityType: shared.EntityBooking,
		EntityID:   &bookingID,
		Details: map[string]any{
			"service_ids": serviceIDs,
			"end_time":    updated.EndTimeString(),
			"total_price": updated.TotalPrice().String(),
		},
	})
	return nil
}

// withoutBooking drops the booking's own interval from the day's list.
func withoutBooking(booked []booking.Interval, id int64) []booking.Interval {
	out := make([]booking.Interval, 0, len(booked))
	for _, iv := range booked {
		if iv.BookingID == id {
			continue
		}
		out = append(out, iv)
	}
	return out
}
