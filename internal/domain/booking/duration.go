package booking

import (
	"bodyshop/internal/domain/money"
	"bodyshop/internal/pkg/errs"
)

var ErrInvalidServiceDuration = errs.Mark(errs.New("service duration must be a positive number of minutes"), errs.ErrValidation)

// ServiceSpec is the part of a service a booking needs: its length and its price.
type ServiceSpec struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           money.Money
	Quantity        int
}

func (s ServiceSpec) quantity() int {
	if s.Quantity <= 0 {
		return 1
	}
	return s.Quantity
}

// TotalDuration sums the durations in order. An empty list yields zero.
func TotalDuration(services []ServiceSpec) (int, error) {
	total := 0
	for _, s := range services {
		if s.DurationMinutes <= 0 {
			return 0, errs.Wrapf(ErrInvalidServiceDuration, "service %d has %d minutes", s.ID, s.DurationMinutes)
		}
		total += s.DurationMinutes
	}
	return total, nil
}

func TotalPrice(services []ServiceSpec) money.Money {
	total := money.FromCents(0)
	for _, s := range services {
		total = total.Add(s.Price.Times(s.quantity()))
	}
	return total
}
