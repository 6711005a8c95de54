package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

type SaleService struct {
	sales ports.SaleRepository
	log   zerolog.Logger
}

func NewSaleService(sales ports.SaleRepository, log zerolog.Logger) *SaleService {
	return &SaleService{sales: sales, log: log}
}

// AdvanceToShipped moves a sale from Processing to Shipped. Only the selling
// vendor may ship; a second call fails with domain.ErrAlreadyShipped.
func (s *SaleService) AdvanceToShipped(ctx context.Context, vendorID, saleID int64) (*domain.Sale, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.VendorID != vendorID {
		return nil, domain.ErrNotOwner
	}
	if !sale.Status.CanTransitionTo(domain.SaleShipped) {
		return nil, domain.ErrAlreadyShipped
	}

	// The repository re-checks the status so two concurrent calls cannot both succeed.
	shipped, err := s.sales.MarkShipped(ctx, saleID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("sale_id", saleID).Int64("vendor_id", vendorID).Msg("sale shipped")
	return shipped, nil
}

// GetSale returns a sale visible to userID, either as its vendor or its customer.
func (s *SaleService) GetSale(ctx context.Context, userID, saleID int64) (*domain.Sale, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.VendorID != userID && sale.CustomerID != userID {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

func (s *SaleService) ListVendorSales(ctx context.Context, vendorID int64) ([]*domain.Sale, error) {
	return s.sales.List(ctx, ports.SaleFilter{VendorID: vendorID})
}

func (s *SaleService) ListCustomerOrders(ctx context.Context, customerID int64) ([]*domain.Sale, error) {
	return s.sales.List(ctx, ports.SaleFilter{CustomerID: customerID})
}

// VendorService answers revenue queries.
type VendorService struct {
	users ports.UserRepository
}

func NewVendorService(users ports.UserRepository) *VendorService {
	return &VendorService{users: users}
}

func (s *VendorService) GetVendorRevenue(ctx context.Context, vendorID int64) (*ports.VendorRevenue, error) {
	u, err := s.users.FindByID(ctx, vendorID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}
	if !u.IsVendor() {
		return nil, domain.ErrVendorNotFound
	}
	return &ports.VendorRevenue{
		VendorID:   u.ID,
		VendorName: u.VendorName,
		Revenue:    u.VendorRevenue,
	}, nil
}
