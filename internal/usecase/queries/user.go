package queries

//go:generate mockgen -source=user.go -destination=../../testutil/mock/queries/user_mock.go -package=queriesmock

import (
	"context"

	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
)

var (
	ErrUserNotFound = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrUserInactive = errs.Mark(errs.New("user inactive"), errs.ErrUnauthenticated)
)

type UserReadStore interface {
	FindByID(ctx context.Context, id int64) (*UserView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID int64) (*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID int64) (*UserView, error) {
	user, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}
