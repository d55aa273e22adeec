package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshop/shop-api/internal/api/handler"
	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/core/service"
	"github.com/bikeshop/shop-api/internal/infrastructure/db/memory"
	"github.com/bikeshop/shop-api/internal/pkg/token"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "adminpass123"
)

type testServer struct {
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	users := memory.NewUserRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	cache := memory.NewCache()
	tokens := token.New(token.Config{Secret: "router-test-secret"})

	authService := service.NewAuthService(users, tokens, ports.NopSink{}, log)
	require.NoError(t, authService.EnsureAdmin(context.Background(), "Admin", adminEmail, adminPassword))

	e := NewRouter(Deps{
		Log:      log,
		Tokens:   tokens,
		Auth:     authService,
		Users:    service.NewUserService(users, ports.NopSink{}, log),
		Products: service.NewProductService(products, cache, ports.NopSink{}, log),
		Orders:   service.NewOrderService(orders, products, ports.NopSink{}, log),
		Checks:   map[string]handler.Pinger{"cache": cache},
	})
	return &testServer{e: e}
}

func (s *testServer) do(t *testing.T, method, target, body, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, name, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"password123"}`, name, email)
	rec := s.do(t, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return rec.Header().Get("X-Access-Token")
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, adminEmail, adminPassword)
	rec := s.do(t, http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return rec.Header().Get("X-Access-Token")
}

func (s *testServer) createProduct(t *testing.T, admin, name string, price uint32, discount uint8) domain.Product {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"price":%d,"description":"A fine product","images":[],"discount":%d,"category":1}`, name, price, discount)
	rec := s.do(t, http.MethodPost, "/api/product/create", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRouter_RegisterLoginDelete(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"John Doe","email":"john@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	access := rec.Header().Get("X-Access-Token")
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, rec.Header().Get("X-Refresh-Token"))

	body := decodeBody(t, rec)
	assert.Equal(t, "John Doe", body["name"])
	assert.Equal(t, "john@example.com", body["email"])
	assert.Equal(t, "User", body["role"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	rec = s.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"John Again","email":"john@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"wrongpassword"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/user/me", "", access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "john@example.com", decodeBody(t, rec)["email"])

	rec = s.do(t, http.MethodDelete, "/api/user/delete", "", access)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeBody(t, rec)["message"])

	rec = s.do(t, http.MethodDelete, "/api/user/delete", "", access)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody(t, rec)["error"])
}

func TestRouter_RefreshToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Jane Roe","email":"jane@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	refresh := rec.Header().Get("X-Refresh-Token")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh_token", nil)
	req.Header.Set("X-Refresh-Token", refresh)
	out := httptest.NewRecorder()
	s.e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code, out.Body.String())
	access := out.Header().Get("X-Access-Token")
	require.NotEmpty(t, access)

	rec = s.do(t, http.MethodGet, "/api/user/me", "", access)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/refresh_token", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_refresh_token", decodeBody(t, rec)["error"])
}

func TestRouter_TokenErrors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/user/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_token", decodeBody(t, rec)["error"])

	rec = s.do(t, http.MethodGet, "/api/user/me", "", "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decodeBody(t, rec)["error"])
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	user := s.register(t, "John Doe", "john@example.com")

	rec := s.do(t, http.MethodPost, "/api/product/create",
		`{"name":"Helmet","price":100,"description":"Safe","images":[],"discount":5,"category":0}`, user)
	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "insufficient_permissions", body["error"])
	assert.Equal(t, "Necessary role: Admin", body["message"])

	for _, target := range []string{"/api/user/admin/users", "/api/order/admin/orders"} {
		rec = s.do(t, http.MethodGet, target, "", user)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}

	rec = s.do(t, http.MethodGet, "/api/user/admin/users", "", s.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestRouter_MostAdvantageousProduct(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	rec := s.do(t, http.MethodGet, "/api/product/most_advantageous", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	cheap := s.createProduct(t, admin, "City bike", 500, 10)
	best := s.createProduct(t, admin, "Road bike", 1500, 30)

	rec = s.do(t, http.MethodGet, "/api/product/most_advantageous", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, best.ID, got.ID)
	assert.Equal(t, uint8(30), got.Discount)

	// the update must invalidate the cached answer
	rec = s.do(t, http.MethodPut, "/api/product/update", fmt.Sprintf(`{"id":%q,"discount":50}`, cheap.ID), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/product/most_advantageous", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, cheap.ID, got.ID)

	rec = s.do(t, http.MethodDelete, "/api/product/delete/"+cheap.ID, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/most_advantageous", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, best.ID, got.ID)
}

func TestRouter_ProductLookups(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	p := s.createProduct(t, admin, "Helmet", 80, 0)

	rec := s.do(t, http.MethodGet, "/api/product/"+p.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/not-a-uuid", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "invalid_uuid", body["error"])
	assert.Equal(t, uuidFormatHint, body["details"])

	rec = s.do(t, http.MethodGet, "/api/product/6f1c2a54-1b7e-4d25-9a61-0d7c1c3b5e11", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeBody(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/product/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = s.do(t, http.MethodPost, "/api/product/create", `{"name":"X","price":1}`, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeBody(t, rec)["error"])
}

func TestRouter_OrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	bike := s.createProduct(t, admin, "Road bike", 1000, 20)
	helmet := s.createProduct(t, admin, "Helmet", 100, 0)

	alice := s.register(t, "Alice Smith", "alice@example.com")
	bob := s.register(t, "Bob Jones", "bob@example.com")

	rec := s.do(t, http.MethodPost, "/api/order/create",
		fmt.Sprintf(`{"products_id":[%q,%q]}`, bike.ID, helmet.ID), alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, uint32(900), order.TotalPrice)

	rec = s.do(t, http.MethodPost, "/api/order/create",
		`{"products_id":["6f1c2a54-1b7e-4d25-9a61-0d7c1c3b5e11"]}`, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/order/"+order.ID, "", alice)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/order/"+order.ID, "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/order/"+order.ID, "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/user/my_orders", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	rec = s.do(t, http.MethodGet, "/api/user/my_orders", "", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/order/admin/update",
		fmt.Sprintf(`{"id":%q,"products_id":[%q]}`, order.ID, helmet.ID), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/order/"+order.ID, "", alice)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, uint32(100), order.TotalPrice)

	rec = s.do(t, http.MethodDelete, "/api/order/admin/delete/"+order.ID, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/order/admin/delete/"+order.ID, "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	for _, target := range []string{"/api/nope", "/api/order/nope/x", "/api/user/nope", "/api/order/admin/nope"} {
		rec = s.do(t, http.MethodGet, target, "", "")
		require.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "not_found", decodeBody(t, rec)["error"], target)
	}
}
