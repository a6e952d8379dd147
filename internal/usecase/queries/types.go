package queries

import (
	"time"

	"bodyshop/internal/domain/money"
)

// Read models (DTO for read side)

type BookingView struct {
	ID           int64
	UserID       int64
	UserName     string
	UserEmail    string
	VehicleID    int64
	VehicleMake  string
	VehicleModel string
	LicensePlate *string
	Date         string
	StartTime    string
	EndTime      string
	Status       string
	TotalPrice   money.Money
	Notes        *string
	Services     []BookingServiceView
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BookingServiceView struct {
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Quantity        int
	Price           money.Money
}

type BookingListItem struct {
	ID           int64
	UserID       int64
	UserName     string
	UserEmail    string
	VehicleID    int64
	VehicleMake  string
	VehicleModel string
	LicensePlate *string
	Date         string
	StartTime    string
	EndTime      string
	Status       string
	TotalPrice   money.Money
	CreatedAt    time.Time
}

// BookingFilter narrows booking lists. Zero values mean "no filter".
type BookingFilter struct {
	UserID   *int64
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

type AvailableSlotsView struct {
	Date  string
	Slots []string
}

type ServiceView struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	Price           money.Money
	CategoryID      *int64
	CategoryName    *string
	IsActive        bool
}

type VehicleView struct {
	ID           int64
	UserID       int64
	Make         string
	Model        string
	Year         *int
	LicensePlate *string
	Color        *string
	CreatedAt    time.Time
}

type ReviewView struct {
	ID         int64
	UserID     int64
	UserName   string
	BookingID  int64
	Rating     int
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
}

type UserView struct {
	ID        int64
	Email     string
	Name      string
	Phone     *string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
