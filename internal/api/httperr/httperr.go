// Package httperr defines errors raised by the HTTP layer itself, before or
// around service calls. They carry their final status and envelope fields.
package httperr

import (
	"fmt"
	"net/http"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// Error kinds rendered in the "error" field of the envelope.
const (
	KindMissingToken     = "missing_token"
	KindInvalidToken     = "invalid_token"
	KindValidation       = "validation_error"
	KindRateLimited      = "rate_limit_exceeded"
	KindForbidden        = "insufficient_permissions"
	KindUnauthorized     = "unauthorized"
	KindNotFound         = "not_found"
	KindMethodNotAllowed = "method_not_allowed"
)

// Error is a fully resolved API error.
type Error struct {
	Status  int
	Kind    string
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return e.Kind + ": " + e.Message
}

func MissingToken() *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindMissingToken, Message: "Authorization token is missing"}
}

func InvalidToken() *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindInvalidToken, Message: "Authorization token is invalid or expired"}
}

// Validation reports malformed input; details lists the offending fields.
func Validation(details string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindValidation, Message: "Validation failed", Details: details}
}

func RateLimited() *Error {
	return &Error{Status: http.StatusTooManyRequests, Kind: KindRateLimited, Message: "Too many requests"}
}

// Forbidden names the role the caller lacks.
func Forbidden(required domain.Role) *Error {
	return &Error{Status: http.StatusForbidden, Kind: KindForbidden, Message: "Necessary role: " + string(required)}
}
