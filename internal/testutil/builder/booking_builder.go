//go:build unit || e2e

package builder

import (
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
)

type BookingBuilder struct {
	ID        int64
	UserID    int64
	VehicleID int64
	Date      time.Time
	StartTime string
	Services  []booking.ServiceSpec
	Notes     *string
	Status    booking.Status
	Now       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:        100,
		UserID:    10,
		VehicleID: 20,
		Date:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		Services: []booking.ServiceSpec{
			{ID: 1, Name: "Polish", DurationMinutes: 30, Price: money.FromCents(5000)},
			{ID: 2, Name: "Dent repair", DurationMinutes: 45, Price: money.FromCents(12550)},
		},
		Status: booking.StatusPending,
		Now:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithUserID(id int64) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithStartTime(s string) *BookingBuilder {
	b.StartTime = s
	return b
}

func (b *BookingBuilder) WithServices(services ...booking.ServiceSpec) *BookingBuilder {
	b.Services = services
	return b
}

// BuildDomain creates the booking through NewBooking and then forces the
// configured status and id, as if it had been loaded from storage.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	created, err := booking.NewBooking(booking.NewBookingParams{
		UserID:    b.UserID,
		VehicleID: b.VehicleID,
		Date:      b.Date,
		StartTime: b.StartTime,
		Services:  b.Services,
		Notes:     b.Notes,
	}, b.Now)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		b.ID, created.UserID(), created.VehicleID(), created.Date(),
		created.StartTime(), created.EndTime(), b.Status, created.TotalPrice(),
		created.Notes(), created.LineItems(), b.Now, b.Now,
	), nil
}

func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}
