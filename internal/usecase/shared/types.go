package shared

//go:generate mockgen -source=types.go -destination=../../testutil/mock/shared/types_mock.go -package=sharedmock

import "context"

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	UserID     *int64
	Action     string
	EntityType string
	EntityID   *int64
	Details    map[string]any
	IPAddress  *string
}

const (
	AuditBookingCreated         = "booking.created"
	AuditBookingCancelled       = "booking.cancelled"
	AuditBookingStatusChanged   = "booking.status_changed"
	AuditBookingServicesChanged = "booking.services_changed"
	AuditServiceCreated         = "service.created"
	AuditServiceUpdated         = "service.updated"
	AuditReviewApproved         = "review.approved"
	AuditReviewDeleted          = "review.deleted"
	AuditUserRegistered         = "user.registered"

	EntityBooking = "booking"
	EntityService = "service"
	EntityReview  = "review"
	EntityUser    = "user"
)

// AuditRecorder persists audit entries. Implementations never fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}
