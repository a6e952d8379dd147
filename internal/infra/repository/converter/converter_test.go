//go:build unit

package converter_test

import (
	"testing"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFromRow(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	row := converter.BookingRow{
		ID:              7,
		UserID:          3,
		VehicleID:       4,
		BookingDate:     pgconv.DateToPgtype(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		StartTime:       pgconv.MinutesToPgtypeTime(9 * 60),
		EndTime:         pgconv.MinutesToPgtypeTime(10*60 + 15),
		Status:          "confirmed",
		TotalPriceCents: 17550,
		Notes:           pgtype.Text{String: "left door", Valid: true},
		CreatedAt:       pgtype.Timestamptz{Time: created, Valid: true},
		UpdatedAt:       pgtype.Timestamptz{Time: created, Valid: true},
	}
	items := []converter.LineItemRow{
		{ServiceID: 1, ServiceName: "Polish", DurationMinutes: 30, Quantity: 1, PriceCents: 5000},
		{ServiceID: 2, ServiceName: "Dent repair", DurationMinutes: 45, Quantity: 1, PriceCents: 12550},
	}

	b, err := converter.BookingFromRow(row, items)
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.ID())
	assert.Equal(t, booking.StatusConfirmed, b.Status())
	assert.Equal(t, "09:00", b.StartTimeString())
	assert.Equal(t, "10:15", b.EndTimeString())
	assert.Equal(t, "2024-05-10", booking.FormatDate(b.Date()))
	assert.Equal(t, int64(17550), b.TotalPrice().Cents())
	assert.Equal(t, "left door", *b.Notes())
	require.Len(t, b.LineItems(), 2)
	assert.Equal(t, int64(12550), b.LineItems()[1].Price.Cents())
}

func TestBookingFromRow_UnknownStatus(t *testing.T) {
	_, err := converter.BookingFromRow(converter.BookingRow{Status: "lost"}, nil)
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestVehicleFromRow_NullableColumns(t *testing.T) {
	v := converter.VehicleFromRow(converter.VehicleRow{ID: 1, UserID: 2, Make: "Mazda", Model: "3"})
	assert.Nil(t, v.Year())
	assert.Nil(t, v.LicensePlate())

	v = converter.VehicleFromRow(converter.VehicleRow{ID: 1, UserID: 2, Make: "Mazda", Model: "3", Year: pgtype.Int4{Int32: 2020, Valid: true}})
	require.NotNil(t, v.Year())
	assert.Equal(t, 2020, *v.Year())
}

func TestUserFromRow_RejectsUnknownRole(t *testing.T) {
	_, err := converter.UserFromRow(converter.UserRow{Email: "a@b.co", Name: "A", Role: "viewer"})
	assert.Error(t, err)
}
