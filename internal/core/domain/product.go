package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry owned by a single vendor. VendorName is a copy of
// the vendor's display name taken at creation time and is never refreshed.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	VendorID    int64
	VendorName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries the mutable product fields. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil
}
