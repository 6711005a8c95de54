package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a cart line joined with the current state of its product.
type CartItem struct {
	LineID      int64
	ProductID   int64
	Quantity    int
	AddedAt     time.Time
	Name        string
	Price       decimal.Decimal
	Description string
	VendorID    int64
	VendorName  string
	LineTotal   decimal.Decimal
}

// CartView is the resolved content of a cart. Stale lines are not included.
type CartView struct {
	Items []CartItem
	Total decimal.Decimal
}

type CartService interface {
	AddLine(ctx context.Context, userID, productID int64, quantity int) (*CartItem, error)
	RemoveLine(ctx context.Context, userID, lineID int64) error
	ListLines(ctx context.Context, userID int64) (*CartView, error)
}
