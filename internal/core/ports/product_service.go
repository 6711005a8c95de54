package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// CreateProductInput carries the fields of a new catalog entry.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// ProductService defines catalog use cases. Mutations take the caller's user ID.
type ProductService interface {
	Create(ctx context.Context, vendorID int64, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, vendorID, productID int64, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, vendorID, productID int64) error
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	List(ctx context.Context, vendorID int64) ([]*domain.Product, error)
}
