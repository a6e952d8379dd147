package booking

import (
	"strings"
	"time"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/timeofday"
)

var (
	ErrNoServices        = errs.Mark(errs.New("at least one service is required"), errs.ErrValidation)
	ErrEndsAfterMidnight = errs.Mark(errs.New("booking would end after midnight"), errs.ErrValidation)
	ErrNotesTooLong      = errs.Mark(errs.New("notes exceed maximum length"), errs.ErrValidation)
	ErrInvalidTransition = errs.Mark(errs.New("status transition not allowed"), errs.ErrValidation)
	ErrBookingNotFound   = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrNotOwner          = errs.Mark(errs.New("booking belongs to another user"), errs.ErrPermissionDenied)
	ErrCancelNotAllowed  = errs.Mark(errs.New("only pending bookings can be cancelled by the client"), errs.ErrPermissionDenied)
	ErrStaffOnly         = errs.Mark(errs.New("only staff can change booking status"), errs.ErrPermissionDenied)
	ErrServicesLocked    = errs.Mark(errs.New("services can only be changed while the booking is pending"), errs.ErrPermissionDenied)
	ErrSlotUnavailable   = errs.Mark(errs.New("requested time slot is no longer available"), errs.ErrConflict)
	ErrBookingIsTerminal = errs.Mark(errs.New("booking is already closed"), errs.ErrValidation)
)

const MaxNotesLength = 1000

type LineItem struct {
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Quantity        int
	Price           money.Money
}

func (li LineItem) Subtotal() money.Money {
	return li.Price.Times(li.Quantity)
}

type Booking struct {
	id         int64
	userID     int64
	vehicleID  int64
	date       time.Time
	startTime  int
	endTime    int
	status     Status
	totalPrice money.Money
	notes      *string
	lineItems  []LineItem
	createdAt  time.Time
	updatedAt  time.Time
}

type NewBookingParams struct {
	UserID    int64
	VehicleID int64
	Date      time.Time
	StartTime string
	Services  []ServiceSpec
	Notes     *string
}

// NewBooking derives end time and total price from the selected services.
// The result is pending and carries one line item per service.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if len(p.Services) == 0 {
		return nil, ErrNoServices
	}
	start, err := timeofday.ToMinutes(p.StartTime)
	if err != nil {
		return nil, err
	}
	notes, err := normalizeNotes(p.Notes)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		userID:    p.UserID,
		vehicleID: p.VehicleID,
		date:      p.Date,
		startTime: start,
		status:    StatusPending,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}
	if err := b.applyServices(p.Services); err != nil {
		return nil, err
	}
	return b, nil
}

func ReconstructBooking(
	id, userID, vehicleID int64,
	date time.Time,
	startTime, endTime int,
	status Status,
	totalPrice money.Money,
	notes *string,
	lineItems []LineItem,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		userID:     userID,
		vehicleID:  vehicleID,
		date:       date,
		startTime:  startTime,
		endTime:    endTime,
		status:     status,
		totalPrice: totalPrice,
		notes:      notes,
		lineItems:  lineItems,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) applyServices(services []ServiceSpec) error {
	if len(services) == 0 {
		return ErrNoServices
	}
	duration, err := TotalDuration(services)
	if err != nil {
		return err
	}
	end := b.startTime + duration
	if end >= timeofday.MinutesPerDay {
		return errs.Wrapf(ErrEndsAfterMidnight, "start %s plus %d minutes", timeofday.MustToTimeString(b.startTime), duration)
	}

	items := make([]LineItem, 0, len(services))
	for _, s := range services {
		items = append(items, LineItem{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			DurationMinutes: s.DurationMinutes,
			Quantity:        s.quantity(),
			Price:           s.Price,
		})
	}

	b.endTime = end
	b.totalPrice = TotalPrice(services)
	b.lineItems = items
	return nil
}

func normalizeNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil, nil
	}
	if len([]rune(n)) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	return &n, nil
}

// CanBeViewedBy allows the owner and shop staff.
func (b *Booking) CanBeViewedBy(actor user.Actor) bool {
	return actor.IsStaff() || b.userID == actor.ID
}

// Cancel applies the cancellation rules: a client may cancel only their own
// pending booking, staff may cancel anything not yet closed.
func (b *Booking) Cancel(actor user.Actor, now time.Time) error {
	if !actor.IsStaff() {
		if b.userID != actor.ID {
			return ErrNotOwner
		}
		if b.status != StatusPending {
			return errs.Wrapf(ErrCancelNotAllowed, "booking %d is %s", b.id, b.status)
		}
	}
	return b.transition(StatusCancelled, now)
}

// ChangeStatus is the staff workflow through the state machine.
func (b *Booking) ChangeStatus(actor user.Actor, next Status, now time.Time) error {
	if !actor.IsStaff() {
		return ErrStaffOnly
	}
	if !next.IsValid() {
		return errs.Wrapf(ErrInvalidStatus, "%q", next)
	}
	return b.transition(next, now)
}

func (b *Booking) transition(next Status, now time.Time) error {
	if b.status.IsTerminal() {
		return errs.Wrapf(ErrBookingIsTerminal, "booking %d is %s", b.id, b.status)
	}
	if !b.status.CanTransitionTo(next) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// ReplaceServices swaps the line items and recomputes end time and total.
// The owner may do so while pending, staff while the booking is open.
func (b *Booking) ReplaceServices(actor user.Actor, services []ServiceSpec, now time.Time) error {
	if b.status.IsTerminal() {
		return errs.Wrapf(ErrBookingIsTerminal, "booking %d is %s", b.id, b.status)
	}
	if !actor.IsStaff() {
		if b.userID != actor.ID {
			return ErrNotOwner
		}
		if b.status != StatusPending {
			return ErrServicesLocked
		}
	}
	if err := b.applyServices(services); err != nil {
		return err
	}
	b.updatedAt = now
	return nil
}

// Interval is the booked span used by availability checks.
func (b *Booking) Interval() Interval {
	return Interval{BookingID: b.id, Start: b.startTime, End: b.endTime, Status: b.status}
}

func (b *Booking) Duration() int { return b.endTime - b.startTime }

func (b *Booking) StartTimeString() string { return timeofday.MustToTimeString(b.startTime) }
func (b *Booking) EndTimeString() string   { return timeofday.MustToTimeString(b.endTime) }

func (b *Booking) SetID(id int64) { b.id = id }

func (b *Booking) ID() int64               { return b.id }
func (b *Booking) UserID() int64           { return b.userID }
func (b *Booking) VehicleID() int64        { return b.vehicleID }
func (b *Booking) Date() time.Time         { return b.date }
func (b *Booking) StartTime() int          { return b.startTime }
func (b *Booking) EndTime() int            { return b.endTime }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) TotalPrice() money.Money { return b.totalPrice }
func (b *Booking) Notes() *string          { return b.notes }
func (b *Booking) LineItems() []LineItem   { return b.lineItems }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
