package domain

import "errors"

// Error categories. Every error returned by the core wraps exactly one of
// these, which is what the transport layer switches on.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("too many requests")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var (
	ErrInvalidRatingValue = newKindError(ErrValidation, "rating must be an integer between 1 and 5")

	ErrInvalidToken       = newKindError(ErrUnauthenticated, "invalid token")
	ErrExpiredToken       = newKindError(ErrUnauthenticated, "token expired")
	ErrInvalidCredentials = newKindError(ErrUnauthenticated, "invalid credentials")

	ErrUserNotFound   = newKindError(ErrNotFound, "user not found")
	ErrStoreNotFound  = newKindError(ErrNotFound, "store not found")
	ErrRatingNotFound = newKindError(ErrNotFound, "no rating found for this store")

	ErrEmailInUse      = newKindError(ErrConflict, "email already in use")
	ErrDuplicateRating = newKindError(ErrConflict, "rating already exists for this user and store")

	ErrTooManyLoginAttempts = newKindError(ErrRateLimited, "too many failed login attempts, try again later")
)

// KindError is a specific, human-readable error that belongs to one of the
// category errors above.
type KindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) *KindError {
	return &KindError{kind: kind, msg: msg}
}

func (e *KindError) Error() string { return e.msg }

func (e *KindError) Unwrap() error { return e.kind }

// NewValidationError returns an ErrValidation with a caller-facing message.
func NewValidationError(msg string) error {
	return newKindError(ErrValidation, msg)
}
