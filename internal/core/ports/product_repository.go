package ports

import (
	"context"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// List returns products ordered by ID. vendorID 0 means all vendors.
	List(ctx context.Context, vendorID int64) ([]*domain.Product, error)
	// Update applies patch only when the product is owned by vendorID and
	// returns the updated product. Returns domain.ErrProductNotFound when no
	// product matches id and vendorID.
	Update(ctx context.Context, id, vendorID int64, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes the product only when owned by vendorID.
	Delete(ctx context.Context, id, vendorID int64) error
}
