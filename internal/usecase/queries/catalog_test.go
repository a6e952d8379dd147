//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"bodyshop/internal/domain/service"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/pagination"
	"bodyshop/internal/usecase/queries"
	queriesmock "bodyshop/internal/testutil/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServiceQueries_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockServiceReadStore(ctrl)
	q := queries.NewServiceQueries(store)

	store.EXPECT().FindByID(gomock.Any(), int64(3)).
		Return(nil, infra.WrapRepoErr("service not found", errors.New("no rows"), infra.KindNotFound))

	_, err := q.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestVehicleQueries_ListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockVehicleReadStore(ctrl)
	q := queries.NewVehicleQueries(store)

	want := []*queries.VehicleView{{ID: 1, UserID: client.ID, Make: "Mazda", Model: "3"}}
	store.EXPECT().ListByUser(gomock.Any(), client.ID).Return(want, nil)

	got, err := q.ListMine(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReviewQueries_ListApproved(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockReviewReadStore(ctrl)
	q := queries.NewReviewQueries(store)
	page := pagination.Params{Page: 1, Limit: 20}

	store.EXPECT().ListApproved(gomock.Any(), page).Return([]*queries.ReviewView{{ID: 1, Rating: 5}}, 1, nil)

	got, err := q.ListApproved(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Len(t, got.Items, 1)
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	tests := []struct {
		name    string
		view    *queries.UserView
		err     error
		wantErr error
	}{
		{name: "active user", view: &queries.UserView{ID: 1, IsActive: true}},
		{name: "inactive user", view: &queries.UserView{ID: 1, IsActive: false}, wantErr: queries.ErrUserInactive},
		{
			name:    "missing user",
			err:     infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound),
			wantErr: queries.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockUserReadStore(ctrl)
			store.EXPECT().FindByID(gomock.Any(), int64(1)).Return(tt.view, tt.err)

			got, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.view, got)
		})
	}
}
