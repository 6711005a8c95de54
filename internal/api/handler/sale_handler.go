package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teakmarket/marketplace-api/internal/api/metrics"
	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// SaleHandler serves the vendor side of the ledger.
type SaleHandler struct {
	sales   ports.SaleService
	vendors ports.VendorService
}

func NewSaleHandler(sales ports.SaleService, vendors ports.VendorService) *SaleHandler {
	return &SaleHandler{sales: sales, vendors: vendors}
}

// List handles GET /v1/sales.
//
// @Summary      Vendor sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   saleResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	sales, err := h.sales.ListVendorSales(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponses(sales))
}

// Get handles GET /v1/sales/:id. Visible to its vendor and its customer.
//
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {object}  saleResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sale, err := h.sales.GetSale(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// Ship handles POST /v1/sales/:id/ship.
//
// @Summary      Mark a sale as shipped
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {object}  saleResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/sales/{id}/ship [post]
func (h *SaleHandler) Ship(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sale, err := h.sales.AdvanceToShipped(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	metrics.SalesShippedTotal.Inc()
	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// Revenue handles GET /v1/vendor/revenue.
//
// @Summary      Vendor revenue
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  revenueResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/vendor/revenue [get]
func (h *SaleHandler) Revenue(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	rev, err := h.vendors.GetVendorRevenue(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueResponse{
		VendorID:   rev.VendorID,
		VendorName: rev.VendorName,
		Revenue:    domain.FormatMoney(rev.Revenue),
	})
}
