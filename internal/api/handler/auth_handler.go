package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/metrics"
	"github.com/bikeshop/shop-api/internal/api/middleware"
	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  UserInfo
// @Header       201   {string}  X-Access-Token   "Access token"
// @Header       201   {string}  X-Refresh-Token  "Refresh token"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	setTokenHeaders(c, res)
	return c.JSON(http.StatusCreated, toUserInfo(res.User))
}

// Login authenticates a user and returns fresh tokens in response headers.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  UserInfo
// @Header       200   {string}  X-Access-Token   "Access token"
// @Header       200   {string}  X-Refresh-Token  "Refresh token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	setTokenHeaders(c, res)
	return c.JSON(http.StatusOK, toUserInfo(res.User))
}

// RefreshToken exchanges a refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Param        X-Refresh-Token  header  string          false  "Refresh token"
// @Param        body             body    refreshRequest  false  "Refresh token, when the header is absent"
// @Success      200   {object}  messageResponse
// @Header       200   {string}  X-Access-Token  "New access token"
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh_token [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	refresh := strings.TrimSpace(c.Request().Header.Get(middleware.HeaderRefreshToken))
	if refresh == "" {
		var req refreshRequest
		if c.Request().ContentLength != 0 {
			if err := c.Bind(&req); err != nil {
				return domain.ErrInvalidRefreshToken
			}
		}
		refresh = req.RefreshToken
	}

	access, err := h.authService.Refresh(c.Request().Context(), refresh)
	if err != nil {
		return err
	}

	c.Response().Header().Set(middleware.HeaderAccessToken, access)
	return c.JSON(http.StatusOK, messageResponse{Message: "Token refreshed successfully"})
}

func setTokenHeaders(c echo.Context, res *ports.AuthResult) {
	h := c.Response().Header()
	h.Set(middleware.HeaderAccessToken, res.AccessToken)
	h.Set(middleware.HeaderRefreshToken, res.RefreshToken)
}
