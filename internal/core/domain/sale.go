package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the shipment state of a sale.
type SaleStatus string

const (
	SaleProcessing SaleStatus = "Processing"
	SaleShipped    SaleStatus = "Shipped"
)

// CanTransitionTo reports whether a sale may move from s to next.
// Processing -> Shipped is the only transition.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	return s == SaleProcessing && next == SaleShipped
}

// Sale is an immutable record of one settled cart line; only Status and
// ShippedAt change after creation. Names are snapshots taken at order time.
type Sale struct {
	ID           int64
	VendorID     int64
	VendorName   string
	CustomerID   int64
	CustomerName string
	ProductID    int64
	ProductName  string
	Quantity     int
	TotalPrice   decimal.Decimal
	Status       SaleStatus
	CreatedAt    time.Time
	ShippedAt    *time.Time
}
