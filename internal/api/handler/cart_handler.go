package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teakmarket/marketplace-api/internal/api/metrics"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// CartHandler serves the caller's own cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// List handles GET /v1/cart.
//
// @Summary      Show cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) List(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	view, err := h.service.ListLines(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// Add handles POST /v1/cart/lines. Quantity defaults to 1.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartLineRequest  true  "Cart line"
// @Success      201   {object}  cartItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/lines [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	var req addCartLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	item, err := h.service.AddLine(c.Request().Context(), userID, req.ProductID, qty)
	if err != nil {
		return err
	}
	metrics.CartLinesAddedTotal.Inc()
	return c.JSON(http.StatusCreated, toCartItemResponse(*item))
}

// Remove handles DELETE /v1/cart/lines/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Security     BearerAuth
// @Param        id   path  int  true  "Cart line ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/cart/lines/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}
	lineID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.RemoveLine(c.Request().Context(), userID, lineID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
