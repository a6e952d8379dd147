package response

import (
	"time"

	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/usecase/queries"
)

type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

func FromAvailableSlots(v *queries.AvailableSlotsView) AvailableSlotsResponse {
	slots := v.Slots
	if slots == nil {
		slots = []string{}
	}
	return AvailableSlotsResponse{Date: v.Date, AvailableSlots: slots}
}

type CreateBookingResponse struct {
	Message    string `json:"message"`
	BookingID  int64  `json:"booking_id"`
	EndTime    string `json:"end_time"`
	TotalPrice string `json:"total_price"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type BookingServiceResponse struct {
	ServiceID       int64  `json:"service_id"`
	ServiceName     string `json:"service_name"`
	DurationMinutes int    `json:"duration_minutes"`
	Quantity        int    `json:"quantity"`
	Price           string `json:"price"`
}

type BookingResponse struct {
	ID           int64                    `json:"id"`
	UserID       int64                    `json:"user_id"`
	UserName     string                   `json:"user_name"`
	UserEmail    string                   `json:"user_email"`
	VehicleID    int64                    `json:"vehicle_id"`
	VehicleMake  string                   `json:"vehicle_make"`
	VehicleModel string                   `json:"vehicle_model"`
	LicensePlate *string                  `json:"license_plate,omitempty"`
	Date         string                   `json:"booking_date"`
	StartTime    string                   `json:"start_time"`
	EndTime      string                   `json:"end_time"`
	Status       string                   `json:"status"`
	TotalPrice   string                   `json:"total_price"`
	Notes        *string                  `json:"notes,omitempty"`
	Services     []BookingServiceResponse `json:"services"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	res, err := copyInto[BookingResponse](v)
	if err != nil {
		return nil, err
	}
	if res.Services == nil {
		res.Services = []BookingServiceResponse{}
	}
	return res, nil
}

type BookingListResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	VehicleID    int64     `json:"vehicle_id"`
	VehicleMake  string    `json:"vehicle_make"`
	VehicleModel string    `json:"vehicle_model"`
	LicensePlate *string   `json:"license_plate,omitempty"`
	Date         string    `json:"booking_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Status       string    `json:"status"`
	TotalPrice   string    `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBookingPage(p pagination.Page[*queries.BookingListItem]) (pagination.Page[BookingListResponse], error) {
	items, err := copyList[*queries.BookingListItem, BookingListResponse](p.Items)
	if err != nil {
		return pagination.Page[BookingListResponse]{}, err
	}
	return pagination.Page[BookingListResponse]{Items: items, Page: p.Page, Limit: p.Limit, Total: p.Total}, nil
}
