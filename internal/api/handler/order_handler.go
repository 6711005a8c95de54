package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teakmarket/marketplace-api/internal/api/metrics"
	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// OrderHandler places orders and lists the caller's purchases.
type OrderHandler struct {
	orders ports.OrderService
	sales  ports.SaleService
}

func NewOrderHandler(orders ports.OrderService, sales ports.SaleService) *OrderHandler {
	return &OrderHandler{orders: orders, sales: sales}
}

// Place handles POST /v1/orders: settles the caller's whole cart.
//
// @Summary      Place an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	start := time.Now()
	receipt, err := h.orders.PlaceOrder(c.Request().Context(), userID)
	if err != nil {
		kind := string(domain.KindOf(err))
		metrics.SettlementDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		metrics.SettlementErrorsTotal.WithLabelValues(kind).Inc()
		return err
	}
	metrics.SettlementDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	recordSettlement(receipt)

	return c.JSON(http.StatusCreated, toOrderResponse(receipt))
}

// List handles GET /v1/orders.
//
// @Summary      Order history
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  saleResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, _, err := principal(c)
	if err != nil {
		return err
	}

	sales, err := h.sales.ListCustomerOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponses(sales))
}

func recordSettlement(r *ports.SettlementReceipt) {
	metrics.OrdersPlacedTotal.Inc()
	metrics.SalesSettledTotal.Add(float64(len(r.Sales)))
	metrics.StaleLinesDrainedTotal.Add(float64(r.StaleLinesDrained))
	for _, a := range r.VendorAggregates {
		metrics.RevenueCreditedTotal.Add(a.Total.InexactFloat64())
	}
}
