package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts and vendor revenue.
type UserRepository interface {
	// Create assigns the user a new ID. Returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreditRevenue atomically adds amount to a vendor's accumulated revenue.
	// Returns domain.ErrVendorNotFound when id is not a vendor.
	CreditRevenue(ctx context.Context, vendorID int64, amount decimal.Decimal) error
}
