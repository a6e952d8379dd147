package converter

import (
	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRow struct {
	ID              int64
	UserID          int64
	VehicleID       int64
	BookingDate     pgtype.Date
	StartTime       pgtype.Time
	EndTime         pgtype.Time
	Status          string
	TotalPriceCents int64
	Notes           pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (r *BookingRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.UserID, &r.VehicleID, &r.BookingDate, &r.StartTime, &r.EndTime,
		&r.Status, &r.TotalPriceCents, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	}
}

type LineItemRow struct {
	ServiceID       int64
	ServiceName     string
	DurationMinutes int32
	Quantity        int32
	PriceCents      int64
}

func (r *LineItemRow) ScanTargets() []any {
	return []any{&r.ServiceID, &r.ServiceName, &r.DurationMinutes, &r.Quantity, &r.PriceCents}
}

func LineItemFromRow(row LineItemRow) booking.LineItem {
	return booking.LineItem{
		ServiceID:       row.ServiceID,
		ServiceName:     row.ServiceName,
		DurationMinutes: int(row.DurationMinutes),
		Quantity:        int(row.Quantity),
		Price:           money.FromCents(row.PriceCents),
	}
}

func BookingFromRow(row BookingRow, items []LineItemRow) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	lineItems := make([]booking.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, LineItemFromRow(it))
	}
	return booking.ReconstructBooking(
		row.ID,
		row.UserID,
		row.VehicleID,
		pgconv.DateFromPgtype(row.BookingDate),
		pgconv.MinutesFromPgtypeTime(row.StartTime),
		pgconv.MinutesFromPgtypeTime(row.EndTime),
		status,
		money.FromCents(row.TotalPriceCents),
		pgconv.StringPtrFromPgtype(row.Notes),
		lineItems,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

type IntervalRow struct {
	ID        int64
	StartTime pgtype.Time
	EndTime   pgtype.Time
	Status    string
}

func IntervalFromRow(row IntervalRow) booking.Interval {
	return booking.Interval{
		BookingID: row.ID,
		Start:     pgconv.MinutesFromPgtypeTime(row.StartTime),
		End:       pgconv.MinutesFromPgtypeTime(row.EndTime),
		Status:    booking.Status(row.Status),
	}
}
