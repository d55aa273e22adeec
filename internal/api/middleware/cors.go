package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// Headers carrying tokens on auth responses; browsers only expose them to
// scripts when listed in Access-Control-Expose-Headers.
const (
	HeaderAccessToken  = "X-Access-Token"
	HeaderRefreshToken = "X-Refresh-Token"
)

// CORS applies the rs/cors policy. "*" in allowedOrigins allows any origin.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			echo.HeaderAuthorization, echo.HeaderContentType, HeaderRefreshToken,
		},
		ExposedHeaders: []string{HeaderAccessToken, HeaderRefreshToken, echo.HeaderXRequestID},
		MaxAge:         3600,
	})
	return echo.WrapMiddleware(c.Handler)
}
