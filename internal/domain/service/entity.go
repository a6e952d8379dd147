// Package service models the repair operations a client can book.
package service

import (
	"strings"
	"time"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/pkg/errs"
)

var (
	ErrEmptyName        = errs.Mark(errs.New("service name cannot be empty"), errs.ErrValidation)
	ErrInvalidDuration  = errs.Mark(errs.New("service duration must be positive"), errs.ErrValidation)
	ErrNegativePrice    = errs.Mark(errs.New("service price cannot be negative"), errs.ErrValidation)
	ErrNameTooLong      = errs.Mark(errs.New("service name exceeds maximum length"), errs.ErrValidation)
	ErrServiceNotFound  = errs.Mark(errs.New("service not found"), errs.ErrNotFound)
	ErrServiceNotActive = errs.Mark(errs.New("service is not active"), errs.ErrValidation)
)

const MaxNameLength = 200

type Service struct {
	id              int64
	name            string
	description     string
	durationMinutes int
	price           money.Money
	categoryID      *int64
	isActive        bool
	createdAt       time.Time
	updatedAt       time.Time
}

type Attributes struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           money.Money
	CategoryID      *int64
	IsActive        bool
}

func (a Attributes) validate() (Attributes, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	if a.Name == "" {
		return a, ErrEmptyName
	}
	if len([]rune(a.Name)) > MaxNameLength {
		return a, ErrNameTooLong
	}
	if a.DurationMinutes <= 0 {
		return a, ErrInvalidDuration
	}
	if a.Price.IsNegative() {
		return a, ErrNegativePrice
	}
	return a, nil
}

func NewService(attrs Attributes) (*Service, error) {
	attrs, err := attrs.validate()
	if err != nil {
		return nil, err
	}
	s := &Service{}
	s.apply(attrs)
	return s, nil
}

// Update replaces every editable attribute at once.
func (s *Service) Update(attrs Attributes) error {
	attrs, err := attrs.validate()
	if err != nil {
		return err
	}
	s.apply(attrs)
	return nil
}

func (s *Service) apply(a Attributes) {
	s.name = a.Name
	s.description = a.Description
	s.durationMinutes = a.DurationMinutes
	s.price = a.Price
	s.categoryID = a.CategoryID
	s.isActive = a.IsActive
}

func ReconstructService(
	id int64,
	name, description string,
	durationMinutes int,
	price money.Money,
	categoryID *int64,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:              id,
		name:            name,
		description:     description,
		durationMinutes: durationMinutes,
		price:           price,
		categoryID:      categoryID,
		isActive:        isActive,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (s *Service) ID() int64            { return s.id }
func (s *Service) Name() string         { return s.name }
func (s *Service) Description() string  { return s.description }
func (s *Service) DurationMinutes() int { return s.durationMinutes }
func (s *Service) Price() money.Money   { return s.price }
func (s *Service) CategoryID() *int64   { return s.categoryID }
func (s *Service) IsActive() bool       { return s.isActive }
func (s *Service) CreatedAt() time.Time { return s.createdAt }
func (s *Service) UpdatedAt() time.Time { return s.updatedAt }
