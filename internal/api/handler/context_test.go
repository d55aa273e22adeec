package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/domain"
)

func TestAuthenticated_PassesIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(auth.ContextKey, auth.Identity{UserID: "u1", Role: domain.RoleUser})

	var got auth.Identity
	err := Authenticated(func(c echo.Context, id auth.Identity) error {
		got = id
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.UserID != "u1" || got.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestAuthenticated_WithoutIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := Authenticated(func(echo.Context, auth.Identity) error {
		t.Fatalf("should not reach handler")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
