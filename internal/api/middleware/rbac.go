package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/domain"
)

// RequireRole lets the request through only when the authenticated identity
// has exactly the given role. It must run after Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get(auth.ContextKey).(auth.Identity)
			if !ok || !id.HasRole(role) {
				return httperr.Forbidden(role)
			}
			return next(c)
		}
	}
}
