//go:build unit

package booking_test

import (
	"testing"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	day       = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	owner     = user.NewActor(10, user.RoleClient)
	stranger  = user.NewActor(11, user.RoleClient)
	staff     = user.NewActor(2, user.RoleStaff)
	serviceA  = booking.ServiceSpec{ID: 1, Name: "Polish", DurationMinutes: 30, Price: money.FromCents(5000)}
	serviceB  = booking.ServiceSpec{ID: 2, Name: "Dent repair", DurationMinutes: 45, Price: money.FromCents(12550)}
	serviceXL = booking.ServiceSpec{ID: 3, Name: "Respray", DurationMinutes: 8 * 60, Price: money.FromCents(90000)}
)

func newPending(t *testing.T, start string, services ...booking.ServiceSpec) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(booking.NewBookingParams{
		UserID:    owner.ID,
		VehicleID: 5,
		Date:      day,
		StartTime: start,
		Services:  services,
	}, now)
	require.NoError(t, err)
	b.SetID(99)
	return b
}

func withStatus(b *booking.Booking, s booking.Status) *booking.Booking {
	return booking.ReconstructBooking(b.ID(), b.UserID(), b.VehicleID(), b.Date(), b.StartTime(), b.EndTime(),
		s, b.TotalPrice(), b.Notes(), b.LineItems(), b.CreatedAt(), b.UpdatedAt())
}

func TestNewBooking(t *testing.T) {
	t.Run("derives end time and total", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA, serviceB)

		assert.Equal(t, "09:00", b.StartTimeString())
		assert.Equal(t, "10:15", b.EndTimeString())
		assert.Equal(t, int64(17550), b.TotalPrice().Cents())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, 75, b.Duration())

		want := []booking.LineItem{
			{ServiceID: 1, ServiceName: "Polish", DurationMinutes: 30, Quantity: 1, Price: money.FromCents(5000)},
			{ServiceID: 2, ServiceName: "Dent repair", DurationMinutes: 45, Quantity: 1, Price: money.FromCents(12550)},
		}
		if diff := cmp.Diff(want, b.LineItems(), cmp.AllowUnexported(money.Money{})); diff != "" {
			t.Errorf("line items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blank notes dropped", func(t *testing.T) {
		b, err := booking.NewBooking(booking.NewBookingParams{
			UserID: 1, VehicleID: 1, Date: day, StartTime: "10:00",
			Services: []booking.ServiceSpec{serviceA}, Notes: ptr.Ptr("   "),
		}, now)
		require.NoError(t, err)
		assert.Nil(t, b.Notes())
	})

	tests := []struct {
		name     string
		start    string
		services []booking.ServiceSpec
		errIs    error
	}{
		{name: "no services", start: "09:00", errIs: booking.ErrNoServices},
		{name: "bad time", start: "9am", services: []booking.ServiceSpec{serviceA}, errIs: errs.ErrValidation},
		{name: "past midnight", start: "17:00", services: []booking.ServiceSpec{serviceXL}, errIs: booking.ErrEndsAfterMidnight},
		{name: "zero duration", start: "09:00", services: []booking.ServiceSpec{{ID: 9}}, errIs: booking.ErrInvalidServiceDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := booking.NewBooking(booking.NewBookingParams{
				UserID: 1, VehicleID: 1, Date: day, StartTime: tt.start, Services: tt.services,
			}, now)
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.errIs))
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		status booking.Status
		actor  user.Actor
		errIs  error
	}{
		{name: "owner cancels pending", status: booking.StatusPending, actor: owner},
		{name: "owner cannot cancel confirmed", status: booking.StatusConfirmed, actor: owner, errIs: errs.ErrPermissionDenied},
		{name: "stranger cannot cancel", status: booking.StatusPending, actor: stranger, errIs: booking.ErrNotOwner},
		{name: "staff cancels confirmed", status: booking.StatusConfirmed, actor: staff},
		{name: "staff cancels in progress", status: booking.StatusInProgress, actor: staff},
		{name: "admin cannot cancel completed", status: booking.StatusCompleted, actor: user.NewActor(1, user.RoleAdmin), errIs: errs.ErrValidation},
		{name: "staff cannot cancel twice", status: booking.StatusCancelled, actor: staff, errIs: booking.ErrBookingIsTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := withStatus(newPending(t, "09:00", serviceA), tt.status)
			later := now.Add(time.Hour)

			err := b.Cancel(tt.actor, later)
			if tt.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, booking.StatusCancelled, b.Status())
				assert.Equal(t, later, b.UpdatedAt())
				return
			}
			assert.True(t, errs.Is(err, tt.errIs))
			assert.Equal(t, tt.status, b.Status())
		})
	}
}

func TestBooking_ChangeStatus(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		for _, next := range []booking.Status{booking.StatusConfirmed, booking.StatusInProgress, booking.StatusCompleted} {
			require.NoError(t, b.ChangeStatus(staff, next, now))
			assert.Equal(t, next, b.Status())
		}
	})

	t.Run("client rejected", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		err := b.ChangeStatus(owner, booking.StatusConfirmed, now)
		assert.ErrorIs(t, err, booking.ErrStaffOnly)
		assert.True(t, errs.Is(err, errs.ErrPermissionDenied))
	})

	t.Run("skipping a step is invalid", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		err := b.ChangeStatus(staff, booking.StatusCompleted, now)
		assert.True(t, errs.Is(err, booking.ErrInvalidTransition))
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("unknown status", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		err := b.ChangeStatus(staff, booking.Status("archived"), now)
		assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
	})
}

func TestBooking_ReplaceServices(t *testing.T) {
	t.Run("owner while pending recomputes", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		require.NoError(t, b.ReplaceServices(owner, []booking.ServiceSpec{serviceA, serviceB}, now))
		assert.Equal(t, "10:15", b.EndTimeString())
		assert.Equal(t, int64(17550), b.TotalPrice().Cents())
		assert.Len(t, b.LineItems(), 2)
	})

	t.Run("owner after confirmation is locked", func(t *testing.T) {
		b := withStatus(newPending(t, "09:00", serviceA), booking.StatusConfirmed)
		err := b.ReplaceServices(owner, []booking.ServiceSpec{serviceB}, now)
		assert.ErrorIs(t, err, booking.ErrServicesLocked)
	})

	t.Run("staff after confirmation allowed", func(t *testing.T) {
		b := withStatus(newPending(t, "09:00", serviceA), booking.StatusConfirmed)
		require.NoError(t, b.ReplaceServices(staff, []booking.ServiceSpec{serviceB}, now))
		assert.Equal(t, "09:45", b.EndTimeString())
	})

	t.Run("empty list rejected and booking unchanged", func(t *testing.T) {
		b := newPending(t, "09:00", serviceA)
		assert.ErrorIs(t, b.ReplaceServices(owner, nil, now), booking.ErrNoServices)
		assert.Equal(t, "09:30", b.EndTimeString())
	})
}

func TestBooking_CanBeViewedBy(t *testing.T) {
	b := newPending(t, "09:00", serviceA)
	assert.True(t, b.CanBeViewedBy(owner))
	assert.True(t, b.CanBeViewedBy(staff))
	assert.False(t, b.CanBeViewedBy(stranger))
}
