package request

import (
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/usecase/commands"
)

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	Description     string `json:"description" binding:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Price           string `json:"price" binding:"required"`
	CategoryID      *int64 `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

func (r CreateServiceRequest) ToCommand() (commands.CreateServiceRequest, error) {
	price, err := money.Parse(r.Price)
	if err != nil {
		return commands.CreateServiceRequest{}, err
	}
	return commands.CreateServiceRequest{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           price,
		CategoryID:      r.CategoryID,
		IsActive:        r.IsActive,
	}, nil
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,gt=0"`
	Price           *string `json:"price,omitempty"`
	CategoryID      *int64  `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r UpdateServiceRequest) ToCommand() (commands.UpdateServiceRequest, error) {
	cmd := commands.UpdateServiceRequest{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		CategoryID:      r.CategoryID,
		IsActive:        r.IsActive,
	}
	if r.Price != nil {
		price, err := money.Parse(*r.Price)
		if err != nil {
			return commands.UpdateServiceRequest{}, err
		}
		cmd.Price = &price
	}
	return cmd, nil
}

type CreateVehicleRequest struct {
	Make         string  `json:"make" binding:"required,max=50"`
	Model        string  `json:"model" binding:"required,max=50"`
	Year         *int    `json:"year,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
	Color        *string `json:"color,omitempty" binding:"omitempty,max=30"`
}

func (r CreateVehicleRequest) ToAttributes() vehicle.Attributes {
	return vehicle.Attributes{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		Color:        r.Color,
	}
}
