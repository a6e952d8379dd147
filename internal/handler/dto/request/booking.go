package request

import (
	"bodyshop/internal/domain/booking"
	"bodyshop/internal/pkg/ptr"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/queries"
)

// ServiceIDs is not marked required: an empty list reaches the booking flow,
// which reports it as a validation error after the vehicle check.
type CreateBookingRequest struct {
	VehicleID     int64   `json:"vehicle_id" binding:"required,gt=0"`
	ServiceIDs    []int64 `json:"service_ids" binding:"dive,gt=0"`
	ScheduledDate string  `json:"scheduled_date" binding:"required"`
	ScheduledTime string  `json:"scheduled_time" binding:"required"`
	Notes         *string `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		VehicleID:  r.VehicleID,
		Date:       r.ScheduledDate,
		StartTime:  r.ScheduledTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled"`
}

type UpdateServicesRequest struct {
	ServiceIDs []int64 `json:"service_ids" binding:"required,min=1,dive,gt=0"`
}

// BookingFilterQuery binds the admin list filters from the query string.
type BookingFilterQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	UserID   int64  `form:"user_id" binding:"omitempty,gt=0"`
	Page     string `form:"page"`
	Limit    string `form:"limit"`
}

func (q BookingFilterQuery) ToFilter() (queries.BookingFilter, error) {
	var f queries.BookingFilter
	if q.Status != "" {
		f.Status = ptr.Ptr(q.Status)
	}
	if q.UserID > 0 {
		f.UserID = ptr.Ptr(q.UserID)
	}
	if q.DateFrom != "" {
		d, err := booking.ParseDate(q.DateFrom)
		if err != nil {
			return f, err
		}
		f.DateFrom = &d
	}
	if q.DateTo != "" {
		d, err := booking.ParseDate(q.DateTo)
		if err != nil {
			return f, err
		}
		f.DateTo = &d
	}
	return f, nil
}
