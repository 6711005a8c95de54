package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, log: log}
}

// Create lists a new product under vendorID. The vendor's current display name
// is copied onto the product.
func (s *ProductService) Create(ctx context.Context, vendorID int64, input ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !domain.ValidPrice(input.Price) {
		return nil, domain.ErrInvalidPrice
	}

	vendor, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsVendor() {
		return nil, domain.ErrNotVendor
	}

	now := time.Now().UTC()
	created, err := s.products.Create(ctx, &domain.Product{
		Name:        name,
		Price:       input.Price,
		Description: input.Description,
		VendorID:    vendor.ID,
		VendorName:  vendor.VendorName,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("vendor_id", vendorID).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Int64("product_id", created.ID).Int64("vendor_id", vendorID).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, vendorID, productID int64, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.ErrInvalidName
		}
		patch.Name = &trimmed
	}
	if patch.Price != nil && !domain.ValidPrice(*patch.Price) {
		return nil, domain.ErrInvalidPrice
	}

	if err := s.checkOwner(ctx, vendorID, productID); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.products.FindByID(ctx, productID)
	}

	updated, err := s.products.Update(ctx, productID, vendorID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("product_id", productID).Msg("product updated")
	return updated, nil
}

// Delete removes a product. Cart lines pointing at it become stale and are
// drained by the next settlement.
func (s *ProductService) Delete(ctx context.Context, vendorID, productID int64) error {
	if err := s.checkOwner(ctx, vendorID, productID); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID, vendorID); err != nil {
		return err
	}

	s.log.Info().Int64("product_id", productID).Msg("product deleted")
	return nil
}

func (s *ProductService) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context, vendorID int64) ([]*domain.Product, error) {
	return s.products.List(ctx, vendorID)
}

// checkOwner distinguishes a missing product from someone else's product.
// The repository write is additionally filtered by owner.
func (s *ProductService) checkOwner(ctx context.Context, vendorID, productID int64) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.VendorID != vendorID {
		return domain.ErrNotOwner
	}
	return nil
}
