package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// VendorAggregate summarises what one order bought from one vendor.
// ProductNames follow cart line order.
type VendorAggregate struct {
	VendorID     int64
	VendorName   string
	Total        decimal.Decimal
	ProductNames []string
}

// SettlementReceipt is the result of a successful PlaceOrder.
// VendorAggregates are ordered by the vendor's first appearance in the cart.
type SettlementReceipt struct {
	VendorAggregates  []VendorAggregate
	Sales             []*domain.Sale
	Total             decimal.Decimal
	StaleLinesDrained int
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID int64) (*SettlementReceipt, error)
}
