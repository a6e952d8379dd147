package queries

//go:generate mockgen -source=service.go -destination=../../testutil/mock/queries/service_mock.go -package=queriesmock

import (
	"context"

	"bodyshop/internal/domain/service"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
)

type ServiceReadStore interface {
	ListActive(ctx context.Context) ([]*ServiceView, error)
	FindByID(ctx context.Context, id int64) (*ServiceView, error)
}

type ServiceQueries interface {
	ListActive(ctx context.Context) ([]*ServiceView, error)
	GetByID(ctx context.Context, id int64) (*ServiceView, error)
}

type serviceQueriesImpl struct {
	store ServiceReadStore
}

func NewServiceQueries(store ServiceReadStore) ServiceQueries {
	return &serviceQueriesImpl{store: store}
}

func (q *serviceQueriesImpl) ListActive(ctx context.Context) ([]*ServiceView, error) {
	return q.store.ListActive(ctx)
}

func (q *serviceQueriesImpl) GetByID(ctx context.Context, id int64) (*ServiceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(service.ErrServiceNotFound, "service %d", id)
		}
		return nil, err
	}
	return view, nil
}
