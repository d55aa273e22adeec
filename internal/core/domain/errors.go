package domain

import "errors"

// Closed error taxonomy. Every error leaving a service wraps exactly one of
// these so the HTTP layer can map it deterministically.
var (
	ErrStorage              = errors.New("database error")
	ErrSerialization        = errors.New("data serialization error")
	ErrTokenGeneration      = errors.New("failed to generate token")
	ErrTokenDecode          = errors.New("failed to decode and validate token")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrPasswordHash         = errors.New("failed to hash password")
	ErrPasswordVerify       = errors.New("password verification error")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("no claims found")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrInvalidID            = errors.New("invalid UUID")
	ErrNotFound             = errors.New("not found")
	ErrDuplicate            = errors.New("resource already exists")
	ErrInvalidOrder         = errors.New("invalid order")
)

// NotFoundError names the missing resource. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound is shorthand for &NotFoundError{Resource: resource}.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
