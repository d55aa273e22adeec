package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/core/domain"
)

const uuidFormatHint = "The UUID must be in the following format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// domainError binds a sentinel to its status and kind.
type domainError struct {
	target  error
	status  int
	kind    string
	message string
}

// Order matters only for errors wrapping several sentinels; the first match wins.
var domainErrors = []domainError{
	{domain.ErrInvalidID, http.StatusBadRequest, "invalid_uuid", "Invalid UUID"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{domain.ErrDuplicate, http.StatusConflict, "duplicate_key", "Resource already exists"},
	{domain.ErrInvalidOrder, http.StatusBadRequest, "invalid_order", "Order total exceeds the maximum price"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"},
	{domain.ErrAuthenticationFailed, http.StatusUnauthorized, "auth_failed", "Authentication failed"},
	{domain.ErrInvalidRefreshToken, http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token"},
	{domain.ErrTokenDecode, http.StatusUnauthorized, "failed_decode", "Failed to decode token"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication required"},
	{domain.ErrForbidden, http.StatusForbidden, "insufficient_permissions", "Insufficient permissions"},
	{domain.ErrTokenGeneration, http.StatusInternalServerError, "failed_generate", ""},
	{domain.ErrPasswordHash, http.StatusInternalServerError, "hash_error", ""},
	{domain.ErrPasswordVerify, http.StatusInternalServerError, "hash_error", ""},
	{domain.ErrSerialization, http.StatusInternalServerError, "serialization_error", ""},
	{domain.ErrStorage, http.StatusInternalServerError, "database_error", ""},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps HTTP-layer and domain errors to their status codes and error kinds.
//   - Logs server-side failures without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error", "message", "details"?}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("kind", body.Error).
				Msg("request failed")
			body.Message = "Internal server error"
			body.Details = ""
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error) (int, errorResponse) {
	var ae *httperr.Error
	if errors.As(err, &ae) {
		return ae.Status, errorResponse{Error: ae.Kind, Message: ae.Message, Details: ae.Details}
	}

	for _, de := range domainErrors {
		if !errors.Is(err, de.target) {
			continue
		}
		resp := errorResponse{Error: de.kind, Message: de.message}
		switch de.target {
		case domain.ErrInvalidID:
			resp.Details = uuidFormatHint
		case domain.ErrNotFound:
			resp.Message = notFoundMessage(err)
		}
		return de.status, resp
	}

	// Echo's own errors (router 404/405, body too large, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: echoKind(he.Code), Message: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
}

func notFoundMessage(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return "Resource not found"
}

func echoKind(code int) string {
	switch code {
	case http.StatusNotFound:
		return httperr.KindNotFound
	case http.StatusMethodNotAllowed:
		return httperr.KindMethodNotAllowed
	case http.StatusUnauthorized:
		return httperr.KindUnauthorized
	case http.StatusTooManyRequests:
		return httperr.KindRateLimited
	case http.StatusBadRequest:
		return httperr.KindValidation
	default:
		return strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_")
	}
}
