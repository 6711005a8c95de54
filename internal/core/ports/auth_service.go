package ports

import (
	"context"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Username   string
	Password   string
	Role       string
	VendorName string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}
