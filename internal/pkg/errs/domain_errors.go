package errs

import "errors"

// Error taxonomy shared by every layer. Handlers translate these to HTTP
// statuses; lower layers Mark their own sentinels with one of them.
var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = errors.New("unauthenticated")
)
