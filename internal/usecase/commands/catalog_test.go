//go:build unit

package commands_test

import (
	"context"
	"testing"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/review"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/vehicle"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/errs"
	"bodyshop/internal/pkg/ptr"
	"bodyshop/internal/testutil/builder"
	"bodyshop/internal/usecase/commands"
	"bodyshop/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServiceCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("only admins create services", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewServiceCommands(h.uow, h.audit)

		_, err := uc.Create(ctx, staff, commands.CreateServiceRequest{Name: "Wax", DurationMinutes: 30, Price: money.FromCents(2000)})
		assert.True(t, errs.Is(err, commands.ErrAdminOnly))
	})

	t.Run("create defaults to active", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewServiceCommands(h.uow, h.audit)
		h.services.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *service.Service) (int64, error) {
				assert.True(t, s.IsActive())
				assert.Equal(t, 30, s.DurationMinutes())
				return 12, nil
			})
		h.audit.EXPECT().Record(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, e shared.AuditEntry) {
				assert.Equal(t, shared.AuditServiceCreated, e.Action)
				assert.Equal(t, "20.00", e.Details["price"])
			})

		id, err := uc.Create(ctx, admin, commands.CreateServiceRequest{Name: "Wax", DurationMinutes: 30, Price: money.FromCents(2000)})
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)
	})

	t.Run("zero duration is rejected", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewServiceCommands(h.uow, h.audit)

		_, err := uc.Create(ctx, admin, commands.CreateServiceRequest{Name: "Wax", Price: money.FromCents(2000)})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewServiceCommands(h.uow, h.audit)
		existing := activeService(4, "Detailing", 90, 15000)
		h.services.EXPECT().FindByID(gomock.Any(), int64(4)).Return(existing, nil)
		h.services.EXPECT().Update(gomock.Any(), int64(4), existing).Return(nil)
		h.audit.EXPECT().Record(gomock.Any(), gomock.Any())

		err := uc.Update(ctx, admin, 4, commands.UpdateServiceRequest{Price: ptr.Ptr(money.FromCents(17500)), IsActive: ptr.Ptr(false)})
		require.NoError(t, err)
		assert.Equal(t, "Detailing", existing.Name())
		assert.Equal(t, 90, existing.DurationMinutes())
		assert.Equal(t, "175.00", existing.Price().String())
		assert.False(t, existing.IsActive())
	})

	t.Run("update of missing service", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewServiceCommands(h.uow, h.audit)
		h.services.EXPECT().FindByID(gomock.Any(), int64(4)).Return(nil, notFound())

		err := uc.Update(ctx, admin, 4, commands.UpdateServiceRequest{Name: ptr.Ptr("x")})
		assert.True(t, errs.Is(err, service.ErrServiceNotFound))
	})
}

func TestVehicleCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("create belongs to the caller", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewVehicleCommands(h.uow, h.clock)
		h.vehicles.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *vehicle.Vehicle) (int64, error) {
				assert.Equal(t, client.ID, v.UserID())
				return 20, nil
			})

		id, err := uc.Create(ctx, client, vehicle.Attributes{Make: "Toyota", Model: "Corolla"})
		require.NoError(t, err)
		assert.Equal(t, int64(20), id)
	})

	t.Run("missing make", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewVehicleCommands(h.uow, h.clock)

		_, err := uc.Create(ctx, client, vehicle.Attributes{Model: "Corolla"})
		assert.True(t, errs.Is(err, vehicle.ErrMissingMake))
	})

	deleteCases := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "deleted"},
		{name: "not owned or missing", repoErr: notFound(), wantErr: vehicle.ErrVehicleNotFound},
		{name: "referenced by bookings", repoErr: infra.WrapRepoErr("delete vehicle", nil, infra.KindForeignKeyViolated), wantErr: vehicle.ErrVehicleHasBooking},
	}
	for _, tc := range deleteCases {
		t.Run("delete "+tc.name, func(t *testing.T) {
			h := newHarness(t)
			uc := commands.NewVehicleCommands(h.uow, h.clock)
			h.vehicles.EXPECT().Delete(gomock.Any(), int64(20), client.ID).Return(tc.repoErr)

			err := uc.Delete(ctx, client, 20)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestReviewCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("owner reviews a completed booking", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
		b := builder.NewBookingBuilder().WithUserID(client.ID).WithStatus(booking.StatusCompleted).MustBuildDomain()
		h.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
		h.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *review.Review) (int64, error) {
				assert.False(t, r.IsApproved())
				assert.Equal(t, 4, r.Rating().Value())
				return 7, nil
			})

		id, err := uc.Create(ctx, client, commands.CreateReviewRequest{BookingID: b.ID(), Rating: 4, Comment: "Good"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("pending booking cannot be reviewed", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
		b := builder.NewBookingBuilder().WithUserID(client.ID).MustBuildDomain()
		h.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)

		_, err := uc.Create(ctx, client, commands.CreateReviewRequest{BookingID: b.ID(), Rating: 4})
		assert.True(t, errs.Is(err, review.ErrBookingNotEligible))
	})

	t.Run("second review for a booking conflicts", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
		b := builder.NewBookingBuilder().WithUserID(client.ID).WithStatus(booking.StatusCompleted).MustBuildDomain()
		h.bookings.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
		h.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(int64(0), infra.WrapRepoErr("insert review", nil, infra.KindDuplicateKey))

		_, err := uc.Create(ctx, client, commands.CreateReviewRequest{BookingID: b.ID(), Rating: 5})
		assert.True(t, errs.Is(err, review.ErrReviewAlreadyExists))
	})

	t.Run("staff approves", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
		rev := builder.NewReviewBuilder().WithAuthor(client).MustBuildDomain()
		h.reviews.EXPECT().FindByID(gomock.Any(), int64(7)).Return(rev, nil)
		h.reviews.EXPECT().Approve(gomock.Any(), int64(7)).Return(nil)
		h.audit.EXPECT().Record(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, e shared.AuditEntry) {
				assert.Equal(t, shared.AuditReviewApproved, e.Action)
			})

		require.NoError(t, uc.Approve(ctx, staff, 7))
	})

	t.Run("client cannot approve", func(t *testing.T) {
		h := newHarness(t)
		uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
		rev := builder.NewReviewBuilder().WithAuthor(client).MustBuildDomain()
		h.reviews.EXPECT().FindByID(gomock.Any(), int64(7)).Return(rev, nil)

		err := uc.Approve(ctx, client, 7)
		assert.True(t, errs.Is(err, review.ErrApproveNotAllowed))
	})

	t.Run("author and admin may delete, others may not", func(t *testing.T) {
		for _, tc := range []struct {
			name    string
			allowed bool
			run     func(uc commands.ReviewCommands) error
		}{
			{name: "author", allowed: true, run: func(uc commands.ReviewCommands) error { return uc.Delete(ctx, client, 7) }},
			{name: "admin", allowed: true, run: func(uc commands.ReviewCommands) error { return uc.Delete(ctx, admin, 7) }},
			{name: "staff", run: func(uc commands.ReviewCommands) error { return uc.Delete(ctx, staff, 7) }},
			{name: "other client", run: func(uc commands.ReviewCommands) error { return uc.Delete(ctx, other, 7) }},
		} {
			t.Run(tc.name, func(t *testing.T) {
				h := newHarness(t)
				uc := commands.NewReviewCommands(h.uow, h.audit, h.clock)
				rev := builder.NewReviewBuilder().WithAuthor(client).MustBuildDomain()
				h.reviews.EXPECT().FindByID(gomock.Any(), int64(7)).Return(rev, nil)
				if tc.allowed {
					h.reviews.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)
					h.audit.EXPECT().Record(gomock.Any(), gomock.Any())
				}

				err := tc.run(uc)
				if tc.allowed {
					assert.NoError(t, err)
					return
				}
				assert.True(t, errs.Is(err, review.ErrDeleteNotAllowed))
			})
		}
	})
}
