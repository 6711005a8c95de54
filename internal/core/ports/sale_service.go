package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// VendorRevenue is the answer to a revenue query.
type VendorRevenue struct {
	VendorID   int64
	VendorName string
	Revenue    decimal.Decimal
}

// SaleService covers the ledger side: shipment and lookups.
type SaleService interface {
	AdvanceToShipped(ctx context.Context, vendorID, saleID int64) (*domain.Sale, error)
	GetSale(ctx context.Context, userID, saleID int64) (*domain.Sale, error)
	ListVendorSales(ctx context.Context, vendorID int64) ([]*domain.Sale, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]*domain.Sale, error)
}

type VendorService interface {
	GetVendorRevenue(ctx context.Context, vendorID int64) (*VendorRevenue, error)
}
