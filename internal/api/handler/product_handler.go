package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bikeshop/shop-api/internal/api/httperr"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns the catalog.
//
// @Summary      List products
// @Tags         product
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /product/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(products))
}

// MostAdvantageous returns the product with the highest discount.
//
// @Summary      Most advantageous product
// @Tags         product
// @Produce      json
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /product/most_advantageous [get]
func (h *ProductHandler) MostAdvantageous(c echo.Context) error {
	product, err := h.service.MostAdvantageous(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Get returns a single product.
//
// @Summary      Get product
// @Tags         product
// @Produce      json
// @Param        id   path      string  true  "Product UUID"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog. Admin only.
//
// @Summary      Create product
// @Tags         product
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /product/create [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update changes the given fields of a product. Admin only.
//
// @Summary      Update product
// @Tags         product
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProductRequest  true  "Product id and fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /product/update [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.id() == "" {
		return httperr.Validation("id is required")
	}

	if err := h.service.Update(c.Request().Context(), req.id(), req.toPatch()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product updated successfully"})
}

// Delete removes a product. Admin only.
//
// @Summary      Delete product
// @Tags         product
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product UUID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /product/delete/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
