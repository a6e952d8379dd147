package shared

//go:generate mockgen -source=uow.go -destination=../../testutil/mock/shared/uow_mock.go -package=sharedmock

import (
	"context"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/domain/review"
	"bodyshop/internal/domain/service"
	"bodyshop/internal/domain/user"
	"bodyshop/internal/domain/vehicle"
)

type UnitOfWork interface {
	// Within: ReadCommitted transaction for multi-statement writes
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction, retried on serialization failure or deadlock
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Repos: repositories bound to the pool for single statements outside a transaction
	Repos() Tx
}

type Tx interface {
	Bookings() BookingRepository
	Services() ServiceRepository
	Vehicles() VehicleRepository
	Users() UserRepository
	Reviews() ReviewRepository
	Audit() AuditRepository
	Idempotency() IdempotencyRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	CreateLineItems(ctx context.Context, bookingID int64, items []booking.LineItem) error
	ReplaceLineItems(ctx context.Context, bookingID int64, items []booking.LineItem) error
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	UpdateTotals(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]booking.Interval, error)
}

type ServiceRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]*service.Service, error)
	FindByID(ctx context.Context, id int64) (*service.Service, error)
	Create(ctx context.Context, s *service.Service) (int64, error)
	Update(ctx context.Context, id int64, s *service.Service) error
}

type VehicleRepository interface {
	FindOwned(ctx context.Context, id, userID int64) (*vehicle.Vehicle, error)
	Create(ctx context.Context, v *vehicle.Vehicle) (int64, error)
	Delete(ctx context.Context, id, userID int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) (int64, error)
	FindByID(ctx context.Context, id int64) (*review.Review, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}
