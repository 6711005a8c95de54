package ports

import (
	"context"
	"time"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// SaleFilter scopes a sale listing. Zero fields are ignored.
type SaleFilter struct {
	VendorID   int64
	CustomerID int64
}

// SaleRepository defines persistence operations for the sale ledger.
type SaleRepository interface {
	// CreateMany assigns IDs to the sales and inserts them.
	CreateMany(ctx context.Context, sales []*domain.Sale) error
	FindByID(ctx context.Context, id int64) (*domain.Sale, error)
	// List returns matching sales, newest first.
	List(ctx context.Context, filter SaleFilter) ([]*domain.Sale, error)
	// MarkShipped moves a Processing sale to Shipped. It returns
	// domain.ErrSaleNotFound when id is unknown and domain.ErrAlreadyShipped
	// when the sale is not Processing.
	MarkShipped(ctx context.Context, id int64, at time.Time) (*domain.Sale, error)
}
