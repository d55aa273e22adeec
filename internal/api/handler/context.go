package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/domain"
)

// AuthenticatedFunc is a handler that receives the caller's identity explicitly.
type AuthenticatedFunc func(c echo.Context, id auth.Identity) error

// Authenticated adapts fn to an echo.HandlerFunc. It fails with
// domain.ErrUnauthorized when the auth middleware did not attach an identity.
func Authenticated(fn AuthenticatedFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := c.Get(auth.ContextKey).(auth.Identity)
		if !ok || id.UserID == "" {
			return domain.ErrUnauthorized
		}
		return fn(c, id)
	}
}
