package commands

import (
	"context"
	"slices"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/usecase/shared"
)

// notFoundAs replaces a repository NOT_FOUND with the domain sentinel.
func notFoundAs(err, sentinel error, format string, args ...any) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(sentinel, format, args...)
	}
	return err
}

// uniqueIDs keeps the first occurrence of every id, in request order.
func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// resolveServices loads the requested services in request order. The first
// unknown id is reported as not found; inactive services cannot be booked.
func resolveServices(ctx context.Context, repo shared.ServiceRepository, ids []int64) ([]booking.ServiceSpec, error) {
	if len(ids) == 0 {
		return nil, booking.ErrNoServices
	}

	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*service.Service, len(found))
	for _, s := range found {
		byID[s.ID()] = s
	}

	specs := make([]booking.ServiceSpec, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, errs.Wrapf(service.ErrServiceNotFound, "service %d", id)
		}
		if !s.IsActive() {
			return nil, errs.Wrapf(service.ErrServiceNotActive, "service %d", id)
		}
		specs = append(specs, booking.ServiceSpec{
			ID:              s.ID(),
			Name:            s.Name(),
			DurationMinutes: s.DurationMinutes(),
			Price:           s.Price(),
			Quantity:        1,
		})
	}
	return specs, nil
}
