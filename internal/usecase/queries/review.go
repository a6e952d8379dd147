package queries

//go:generate mockgen -source=review.go -destination=../../testutil/mock/queries/review_mock.go -package=queriesmock

import (
	"context"

	"bodyshop/internal/pkg/pagination"
)

type ReviewReadStore interface {
	ListApproved(ctx context.Context, page pagination.Params) ([]*ReviewView, int, error)
}

type ReviewQueries interface {
	ListApproved(ctx context.Context, page pagination.Params) (pagination.Page[*ReviewView], error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) ListApproved(ctx context.Context, page pagination.Params) (pagination.Page[*ReviewView], error) {
	items, total, err := q.store.ListApproved(ctx, page)
	if err != nil {
		return pagination.Page[*ReviewView]{}, err
	}
	return pagination.NewPage(items, page, total), nil
}
