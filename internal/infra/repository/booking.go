package repository

import (
	"context"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository/converter"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.vehicle_id",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.status",
	psqlbuilder.Cents("b.total_price"),
	"b.notes",
	"b.created_at",
	"b.updated_at",
}

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns("user_id", "vehicle_id", "booking_date", "start_time", "end_time", "status", "total_price", "notes", "created_at", "updated_at").
		Values(
			b.UserID(),
			b.VehicleID(),
			pgconv.DateToPgtype(b.Date()),
			pgconv.MinutesToPgtypeTime(b.StartTime()),
			pgconv.MinutesToPgtypeTime(b.EndTime()),
			b.Status().String(),
			psqlbuilder.FromCents(b.TotalPrice().Cents()),
			pgconv.TextFromPtr(b.Notes()),
			b.CreatedAt(),
			b.UpdatedAt(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build booking insert", err, infra.KindDBFailure)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) CreateLineItems(ctx context.Context, bookingID int64, items []booking.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	query, args, err := buildLineItemInsert(bookingID, items)
	if err != nil {
		return infra.WrapRepoErr("failed to build line item insert", err, infra.KindDBFailure)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create booking line items", err)
	}
	return nil
}

func buildLineItemInsert(bookingID int64, items []booking.LineItem) (string, []any, error) {
	ins := psqlbuilder.Insert("booking_services").Columns("booking_id", "service_id", "quantity", "price")
	for _, it := range items {
		ins = ins.Values(bookingID, it.ServiceID, it.Quantity, psqlbuilder.FromCents(it.Price.Cents()))
	}
	return ins.ToSql()
}

// ReplaceLineItems deletes and re-inserts; callers run it inside a transaction.
func (r *BookingRepository) ReplaceLineItems(ctx context.Context, bookingID int64, items []booking.LineItem) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM booking_services WHERE booking_id = $1`, bookingID); err != nil {
		return infra.WrapRepoErr("failed to clear booking line items", err)
	}
	return r.CreateLineItems(ctx, bookingID, items)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", b.Status().String()).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build status update", err, infra.KindDBFailure)
	}
	return r.execOne(ctx, "failed to update booking status", query, args)
}

func (r *BookingRepository) UpdateTotals(ctx context.Context, b *booking.Booking) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("end_time", pgconv.MinutesToPgtypeTime(b.EndTime())).
		Set("total_price", psqlbuilder.FromCents(b.TotalPrice().Cents())).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build totals update", err, infra.KindDBFailure)
	}
	return r.execOne(ctx, "failed to update booking totals", query, args)
}

func (r *BookingRepository) execOne(ctx context.Context, msg, query string, args []any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr(msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.find(ctx, id, false)
}

// FindByIDForUpdate locks the booking row until the surrounding transaction ends.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.find(ctx, id, true)
}

func (r *BookingRepository) find(ctx context.Context, id int64, lock bool) (*booking.Booking, error) {
	sel := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(sq.Eq{"b.id": id})
	if lock {
		sel = sel.Suffix("FOR UPDATE")
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err, infra.KindDBFailure)
	}

	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	items, err := LoadLineItems(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	b, err := converter.BookingFromRow(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]booking.Interval, error) {
	return ListActiveIntervals(ctx, r.db, date)
}

// LoadLineItems returns the services attached to a booking in service id order.
func LoadLineItems(ctx context.Context, dbtx db.DBTX, bookingID int64) ([]converter.LineItemRow, error) {
	query, args, err := psqlbuilder.Select("bs.service_id", "s.name", "s.duration_minutes", "bs.quantity", psqlbuilder.Cents("bs.price")).
		From("booking_services bs").
		Join("services s ON s.id = bs.service_id").
		Where(sq.Eq{"bs.booking_id": bookingID}).
		OrderBy("bs.service_id").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build line item select", err, infra.KindDBFailure)
	}

	rows, err := dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking line items", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.LineItemRow, error) {
		var it converter.LineItemRow
		err := row.Scan(it.ScanTargets()...)
		return it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking line items", err)
	}
	return items, nil
}

// ListActiveIntervals returns the non-cancelled bookings of a date ordered by start time.
func ListActiveIntervals(ctx context.Context, dbtx db.DBTX, date time.Time) ([]booking.Interval, error) {
	query, args, err := psqlbuilder.Select("id", "start_time", "end_time", "status").
		From("bookings").
		Where(sq.Eq{"booking_date": pgconv.DateToPgtype(date)}).
		Where(sq.NotEq{"status": booking.StatusCancelled.String()}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build interval select", err, infra.KindDBFailure)
	}

	rows, err := dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by date", err)
	}
	intervals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (booking.Interval, error) {
		var ir converter.IntervalRow
		if err := row.Scan(&ir.ID, &ir.StartTime, &ir.EndTime, &ir.Status); err != nil {
			return booking.Interval{}, err
		}
		return converter.IntervalFromRow(ir), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking intervals", err)
	}
	return intervals, nil
}
