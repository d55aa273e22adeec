package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
		details string
	}{
		{"http layer error", httperr.MissingToken(), http.StatusUnauthorized, "missing_token", "Authorization token is missing", ""},
		{"forbidden names role", httperr.Forbidden(domain.RoleAdmin), http.StatusForbidden, "insufficient_permissions", "Necessary role: Admin", ""},
		{"invalid id", fmt.Errorf("get product: %w", domain.ErrInvalidID), http.StatusBadRequest, "invalid_uuid", "Invalid UUID", uuidFormatHint},
		{"named not found", domain.NotFound("Order"), http.StatusNotFound, "not_found", "Order not found", ""},
		{"bare not found", domain.ErrNotFound, http.StatusNotFound, "not_found", "Resource not found", ""},
		{"order total overflow", fmt.Errorf("%w: total price exceeds 4294967295", domain.ErrInvalidOrder), http.StatusBadRequest, "invalid_order", "Order total exceeds the maximum price", ""},
		{"duplicate", domain.ErrDuplicate, http.StatusConflict, "duplicate_key", "Resource already exists", ""},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", ""},
		{"refresh", fmt.Errorf("%w: expired", domain.ErrInvalidRefreshToken), http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token", ""},
		{"storage", fmt.Errorf("insert: %w", domain.ErrStorage), http.StatusInternalServerError, "database_error", "", ""},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "not_found", "Not Found", ""},
		{"echo method", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed", ""},
		{"body too large", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "request_entity_too_large", "Request Entity Too Large", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := resolveError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.details, body.Details)
		})
	}
}

func TestHTTPErrorHandler_HidesInternalErrors(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.New(&logs))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(fmt.Errorf("find: connection refused: %w", domain.ErrStorage), c)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "database_error", body["error"])
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(domain.NotFound("Product"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
