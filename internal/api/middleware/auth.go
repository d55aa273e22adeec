package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/pkg/token"
)

// TokenValidator decodes and verifies an access token.
type TokenValidator interface {
	Validate(raw string) (*token.Claims, error)
}

// Auth validates the bearer token and stores the caller's auth.Identity in
// the request context. A missing or non-Bearer Authorization header is
// reported as missing_token; a token that fails validation as invalid_token.
func Auth(tokens TokenValidator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
			claims, err := tokens.Validate(raw)
			if err != nil {
				return nil, err
			}
			return auth.Identity{UserID: claims.Subject, Role: claims.Role}, nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			var tokenErr *echojwt.TokenError
			if errors.As(err, &tokenErr) {
				return httperr.InvalidToken()
			}
			return httperr.MissingToken()
		},
	})
}
