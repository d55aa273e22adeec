package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/pkg/token"
)

func newTokens() *token.Service {
	return token.New(token.Config{Secret: "secret", AccessTTL: time.Minute})
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, Auth(newTokens())(next)(c)
}

func kindOf(err error) string {
	var ae *httperr.Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signed, err := newTokens().GenerateAccess("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec, err := runAuth(t, "Bearer "+signed, func(c echo.Context) error {
		called = true
		id, ok := c.Get(auth.ContextKey).(auth.Identity)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.UserID != "user-1" || id.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := token.New(token.Config{Secret: "secret", AccessTTL: time.Minute},
		token.WithClock(func() time.Time { return time.Now().Add(-time.Hour) }))
	old, err := expired.GenerateAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	forged, err := token.New(token.Config{Secret: "other"}).GenerateAccess("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		kind   string
	}{
		{"missing header", "", httperr.KindMissingToken},
		{"basic scheme", "Basic dXNlcjpwYXNz", httperr.KindMissingToken},
		{"garbage token", "Bearer not.a.jwt", httperr.KindInvalidToken},
		{"expired token", "Bearer " + old, httperr.KindInvalidToken},
		{"wrong secret", "Bearer " + forged, httperr.KindInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runAuth(t, tc.header, func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})
			if got := kindOf(err); got != tc.kind {
				t.Fatalf("expected %s, got %q (%v)", tc.kind, got, err)
			}
		})
	}
}
