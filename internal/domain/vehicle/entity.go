package vehicle

import (
	"strings"
	"time"

	"bodyshop/internal/pkg/errs"
)

var (
	ErrMissingMake       = errs.Mark(errs.New("vehicle make is required"), errs.ErrValidation)
	ErrMissingModel      = errs.Mark(errs.New("vehicle model is required"), errs.ErrValidation)
	ErrInvalidYear       = errs.Mark(errs.New("vehicle year is out of range"), errs.ErrValidation)
	ErrInvalidPlate      = errs.Mark(errs.New("license plate is invalid"), errs.ErrValidation)
	ErrVehicleNotFound   = errs.Mark(errs.New("vehicle not found"), errs.ErrNotFound)
	ErrVehicleNotOwned   = errs.Mark(errs.New("vehicle does not belong to user"), errs.ErrPermissionDenied)
	ErrVehicleHasBooking = errs.Mark(errs.New("vehicle is referenced by bookings"), errs.ErrConflict)
)

const (
	MinYear        = 1900
	MaxPlateLength = 20
)

type Vehicle struct {
	id           int64
	userID       int64
	make         string
	model        string
	year         *int
	licensePlate *string
	color        *string
	createdAt    time.Time
}

type Attributes struct {
	Make         string
	Model        string
	Year         *int
	LicensePlate *string
	Color        *string
}

// NewVehicle validates attrs against now so the year may be at most one model year ahead.
func NewVehicle(userID int64, attrs Attributes, now time.Time) (*Vehicle, error) {
	mk := strings.TrimSpace(attrs.Make)
	if mk == "" {
		return nil, ErrMissingMake
	}
	mdl := strings.TrimSpace(attrs.Model)
	if mdl == "" {
		return nil, ErrMissingModel
	}
	if attrs.Year != nil && (*attrs.Year < MinYear || *attrs.Year > now.Year()+1) {
		return nil, ErrInvalidYear
	}
	var plate *string
	if attrs.LicensePlate != nil {
		p := strings.ToUpper(strings.TrimSpace(*attrs.LicensePlate))
		if len(p) > MaxPlateLength {
			return nil, ErrInvalidPlate
		}
		if p != "" {
			plate = &p
		}
	}

	return &Vehicle{
		userID:       userID,
		make:         mk,
		model:        mdl,
		year:         attrs.Year,
		licensePlate: plate,
		color:        attrs.Color,
		createdAt:    now,
	}, nil
}

func ReconstructVehicle(id, userID int64, make, model string, year *int, licensePlate, color *string, createdAt time.Time) *Vehicle {
	return &Vehicle{
		id:           id,
		userID:       userID,
		make:         make,
		model:        model,
		year:         year,
		licensePlate: licensePlate,
		color:        color,
		createdAt:    createdAt,
	}
}

func (v *Vehicle) IsOwnedBy(userID int64) bool { return v.userID == userID }

func (v *Vehicle) ID() int64             { return v.id }
func (v *Vehicle) UserID() int64         { return v.userID }
func (v *Vehicle) Make() string          { return v.make }
func (v *Vehicle) Model() string         { return v.model }
func (v *Vehicle) Year() *int            { return v.year }
func (v *Vehicle) LicensePlate() *string { return v.licensePlate }
func (v *Vehicle) Color() *string        { return v.color }
func (v *Vehicle) CreatedAt() time.Time  { return v.createdAt }
