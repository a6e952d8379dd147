//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"bodyshop/internal/domain/money"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/infra"
	"bodyshop/internal/pkg/clock"
	sharedmock "bodyshop/internal/testutil/mock/shared"
	"bodyshop/internal/usecase/shared"

	"go.uber.org/mock/gomock"
)

var (
	now    = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	client = user.NewActor(10, user.RoleClient)
	other  = user.NewActor(11, user.RoleClient)
	staff  = user.NewActor(2, user.RoleStaff)
	admin  = user.NewActor(1, user.RoleAdmin)
)

// harness wires a mocked unit of work whose transactions run the callback
// against the same mocked repositories.
type harness struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	bookings *sharedmock.MockBookingRepository
	services *sharedmock.MockServiceRepository
	vehicles *sharedmock.MockVehicleRepository
	users    *sharedmock.MockUserRepository
	reviews  *sharedmock.MockReviewRepository
	idem     *sharedmock.MockIdempotencyRepository
	audit    *sharedmock.MockAuditRecorder
	denylist *sharedmock.MockTokenDenylist
	clock    *clock.FixedClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		bookings: sharedmock.NewMockBookingRepository(ctrl),
		services: sharedmock.NewMockServiceRepository(ctrl),
		vehicles: sharedmock.NewMockVehicleRepository(ctrl),
		users:    sharedmock.NewMockUserRepository(ctrl),
		reviews:  sharedmock.NewMockReviewRepository(ctrl),
		idem:     sharedmock.NewMockIdempotencyRepository(ctrl),
		audit:    sharedmock.NewMockAuditRecorder(ctrl),
		denylist: sharedmock.NewMockTokenDenylist(ctrl),
		clock:    clock.NewFixedClock(now),
	}

	run := func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
		return fn(ctx, h.tx)
	}
	h.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	h.uow.EXPECT().WithinSerializable(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	h.uow.EXPECT().Repos().Return(h.tx).AnyTimes()

	h.tx.EXPECT().Bookings().Return(h.bookings).AnyTimes()
	h.tx.EXPECT().Services().Return(h.services).AnyTimes()
	h.tx.EXPECT().Vehicles().Return(h.vehicles).AnyTimes()
	h.tx.EXPECT().Users().Return(h.users).AnyTimes()
	h.tx.EXPECT().Reviews().Return(h.reviews).AnyTimes()
	h.tx.EXPECT().Idempotency().Return(h.idem).AnyTimes()
	return h
}

func activeService(id int64, name string, minutes int, cents int64) *service.Service {
	return service.ReconstructService(id, name, "", minutes, money.FromCents(cents), nil, true, now, now)
}

func notFound() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}
