package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/api/metrics"
	"github.com/bikeshop/shop-api/internal/auth"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create places an order for the authenticated user. The total is computed
// from current product prices and discounts.
//
// @Summary      Create order
// @Tags         order
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Products to order"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /order/create [post]
func (h *OrderHandler) Create(c echo.Context, id auth.Identity) error {
	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), id.UserID, req.ProductIDs)
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// Get returns an order owned by the caller; Admins can read any order.
//
// @Summary      Get order
// @Tags         order
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order UUID"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /order/{id} [get]
func (h *OrderHandler) Get(c echo.Context, id auth.Identity) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"), id.UserID, id.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List returns every order. Admin only.
//
// @Summary      List orders
// @Tags         order
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      403  {object}  map[string]string
// @Router       /order/admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(orders))
}

// Update replaces an order's products or total. Admin only.
//
// @Summary      Update order
// @Tags         order
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      updateOrderRequest  true  "Order id and fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /order/admin/update [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.id() == "" {
		return httperr.Validation("id is required")
	}

	err := h.service.Update(c.Request().Context(), req.id(), ports.UpdateOrderInput{
		ProductIDs: req.ProductIDs,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order updated successfully"})
}

// Delete removes an order. Admin only.
//
// @Summary      Delete order
// @Tags         order
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order UUID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /order/admin/delete/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}
