package queries

import (
	"context"

	"bodyshop/internal/domain/user"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/ptr"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeader = []any{
	"ID", "Date", "Start", "End", "Status", "Client", "Email", "Vehicle", "Plate", "Total",
}

func (q *bookingQueriesImpl) ExportXLSX(ctx context.Context, actor user.Actor, filter BookingFilter) ([]byte, error) {
	if err := checkStaffFilter(actor, filter); err != nil {
		return nil, err
	}

	items, err := q.store.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildBookingWorkbook(items)
}

func buildBookingWorkbook(items []*BookingListItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, errs.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, errs.Wrap(err, "write header")
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errs.Wrap(err, "cell name")
		}
		row := []any{
			it.ID,
			it.Date,
			it.StartTime,
			it.EndTime,
			it.Status,
			it.UserName,
			it.UserEmail,
			it.VehicleMake + " " + it.VehicleModel,
			ptr.Deref(it.LicensePlate),
			it.TotalPrice.Float64(),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, errs.Wrapf(err, "write row %d", i+2)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errs.Wrap(err, "encode workbook")
	}
	return buf.Bytes(), nil
}
