package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

// UserHandler serves the caller's own account and the admin user listing.
type UserHandler struct {
	users  ports.UserService
	orders ports.OrderService
}

func NewUserHandler(users ports.UserService, orders ports.OrderService) *UserHandler {
	return &UserHandler{users: users, orders: orders}
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  UserInfo
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context, id auth.Identity) error {
	user, err := h.users.Me(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(user))
}

// Update changes the authenticated user's name, email or password.
//
// @Summary      Update current user
// @Tags         user
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /user/update [put]
func (h *UserHandler) Update(c echo.Context, id auth.Identity) error {
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.users.Update(c.Request().Context(), id.UserID, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// Delete removes the authenticated user's account.
//
// @Summary      Delete current user
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /user/delete [delete]
func (h *UserHandler) Delete(c echo.Context, id auth.Identity) error {
	if err := h.users.Delete(c.Request().Context(), id.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// MyOrders lists the authenticated user's orders.
//
// @Summary      Current user's orders
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /user/my_orders [get]
func (h *UserHandler) MyOrders(c echo.Context, id auth.Identity) error {
	orders, err := h.orders.ListByCustomer(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(orders))
}

// List returns every account. Admin only.
//
// @Summary      List users
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   UserInfo
// @Failure      403  {object}  map[string]string
// @Router       /user/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfos(users))
}
