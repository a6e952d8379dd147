package readstore

import (
	"context"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/infra"
	"bodyshop/internal/infra/db"
	"bodyshop/internal/infra/repository"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/pkg/pgconv"
	"bodyshop/internal/pkg/psqlbuilder"
	"bodyshop/internal/pkg/timeofday"
	"bodyshop/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookingListColumns = []string{
	"b.id", "b.user_id", "u.name", "u.email", "b.vehicle_id", "v.make", "v.model", "v.license_plate",
	"b.booking_date", "b.start_time", "b.end_time", "b.status", psqlbuilder.Cents("b.total_price"), "b.created_at",
}

type bookingListRow struct {
	ID              int64
	UserID          int64
	UserName        string
	UserEmail       string
	VehicleID       int64
	VehicleMake     string
	VehicleModel    string
	LicensePlate    pgtype.Text
	BookingDate     pgtype.Date
	StartTime       pgtype.Time
	EndTime         pgtype.Time
	Status          string
	TotalPriceCents int64
	CreatedAt       pgtype.Timestamptz
}

func (r *bookingListRow) scanTargets() []any {
	return []any{
		&r.ID, &r.UserID, &r.UserName, &r.UserEmail, &r.VehicleID, &r.VehicleMake, &r.VehicleModel, &r.LicensePlate,
		&r.BookingDate, &r.StartTime, &r.EndTime, &r.Status, &r.TotalPriceCents, &r.CreatedAt,
	}
}

func (r *bookingListRow) toListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		UserEmail:    r.UserEmail,
		VehicleID:    r.VehicleID,
		VehicleMake:  r.VehicleMake,
		VehicleModel: r.VehicleModel,
		LicensePlate: pgconv.StringPtrFromPgtype(r.LicensePlate),
		Date:         booking.FormatDate(pgconv.DateFromPgtype(r.BookingDate)),
		StartTime:    timeofday.MustToTimeString(pgconv.MinutesFromPgtypeTime(r.StartTime)),
		EndTime:      timeofday.MustToTimeString(pgconv.MinutesFromPgtypeTime(r.EndTime)),
		Status:       r.Status,
		TotalPrice:   money.FromCents(r.TotalPriceCents),
		CreatedAt:    pgconv.TimeFromPgtype(r.CreatedAt),
	}
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func bookingBase(columns ...string) sq.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("vehicles v ON v.id = b.vehicle_id")
}

func applyBookingFilter(sel sq.SelectBuilder, f queries.BookingFilter) sq.SelectBuilder {
	if f.UserID != nil {
		sel = sel.Where(sq.Eq{"b.user_id": *f.UserID})
	}
	if f.Status != nil {
		sel = sel.Where(sq.Eq{"b.status": *f.Status})
	}
	if f.DateFrom != nil {
		sel = sel.Where(sq.GtOrEq{"b.booking_date": pgconv.DateToPgtype(*f.DateFrom)})
	}
	if f.DateTo != nil {
		sel = sel.Where(sq.LtOrEq{"b.booking_date": pgconv.DateToPgtype(*f.DateTo)})
	}
	return sel
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	columns := append(append([]string{}, bookingListColumns...), "b.notes", "b.updated_at")
	query, args, err := bookingBase(columns...).Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view select", err, infra.KindDBFailure)
	}

	var (
		row       bookingListRow
		notes     pgtype.Text
		updatedAt pgtype.Timestamptz
	)
	targets := append(row.scanTargets(), &notes, &updatedAt)
	if err := r.db.QueryRow(ctx, query, args...).Scan(targets...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}

	items, err := repository.LoadLineItems(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	li := row.toListItem()
	view := &queries.BookingView{
		ID:           li.ID,
		UserID:       li.UserID,
		UserName:     li.UserName,
		UserEmail:    li.UserEmail,
		VehicleID:    li.VehicleID,
		VehicleMake:  li.VehicleMake,
		VehicleModel: li.VehicleModel,
		LicensePlate: li.LicensePlate,
		Date:         li.Date,
		StartTime:    li.StartTime,
		EndTime:      li.EndTime,
		Status:       li.Status,
		TotalPrice:   li.TotalPrice,
		Notes:        pgconv.StringPtrFromPgtype(notes),
		Services:     make([]queries.BookingServiceView, 0, len(items)),
		CreatedAt:    li.CreatedAt,
		UpdatedAt:    pgconv.TimeFromPgtype(updatedAt),
	}
	for _, it := range items {
		view.Services = append(view.Services, queries.BookingServiceView{
			ServiceID:       it.ServiceID,
			ServiceName:     it.ServiceName,
			DurationMinutes: int(it.DurationMinutes),
			Quantity:        int(it.Quantity),
			Price:           money.FromCents(it.PriceCents),
		})
	}
	return view, nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, page pagination.Params) ([]*queries.BookingListItem, int, error) {
	countQuery, countArgs, err := applyBookingFilter(psqlbuilder.Select("COUNT(*)").From("bookings b"), filter).ToSql()
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to build booking count", err, infra.KindDBFailure)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	if total == 0 {
		return []*queries.BookingListItem{}, 0, nil
	}

	sel := applyBookingFilter(bookingBase(bookingListColumns...), filter).
		OrderBy("b.booking_date DESC", "b.start_time DESC", "b.id DESC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset())
	items, err := r.collect(ctx, sel)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

// ListAll returns every matching booking in calendar order, used for exports.
func (r *BookingReadStore) ListAll(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	sel := applyBookingFilter(bookingBase(bookingListColumns...), filter).
		OrderBy("b.booking_date", "b.start_time", "b.id")
	return r.collect(ctx, sel)
}

func (r *BookingReadStore) collect(ctx context.Context, sel sq.SelectBuilder) ([]*queries.BookingListItem, error) {
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list select", err, infra.KindDBFailure)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingListItem, error) {
		var br bookingListRow
		if err := row.Scan(br.scanTargets()...); err != nil {
			return nil, err
		}
		return br.toListItem(), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}
	return items, nil
}

func (r *BookingReadStore) ActiveIntervals(ctx context.Context, date time.Time) ([]booking.Interval, error) {
	return repository.ListActiveIntervals(ctx, r.db, date)
}
