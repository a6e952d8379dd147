package response

import (
	"time"

	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/usecase/queries"
)

type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           string  `json:"price"`
	CategoryID      *int64  `json:"category_id,omitempty"`
	CategoryName    *string `json:"category_name,omitempty"`
	IsActive        bool    `json:"is_active"`
}

func FromServiceView(v *queries.ServiceView) (*ServiceResponse, error) {
	return copyInto[ServiceResponse](v)
}

func FromServiceList(items []*queries.ServiceView) ([]ServiceResponse, error) {
	return copyList[*queries.ServiceView, ServiceResponse](items)
}

type VehicleResponse struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         *int      `json:"year,omitempty"`
	LicensePlate *string   `json:"license_plate,omitempty"`
	Color        *string   `json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromVehicleList(items []*queries.VehicleView) ([]VehicleResponse, error) {
	return copyList[*queries.VehicleView, VehicleResponse](items)
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	BookingID int64     `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func FromReviewPage(p pagination.Page[*queries.ReviewView]) (pagination.Page[ReviewResponse], error) {
	items, err := copyList[*queries.ReviewView, ReviewResponse](p.Items)
	if err != nil {
		return pagination.Page[ReviewResponse]{}, err
	}
	return pagination.Page[ReviewResponse]{Items: items, Page: p.Page, Limit: p.Limit, Total: p.Total}, nil
}
