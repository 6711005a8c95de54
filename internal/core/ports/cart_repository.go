package ports

import (
	"context"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// CartRepository defines persistence operations for cart lines.
type CartRepository interface {
	Add(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	// ListByUser returns the user's lines in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]*domain.CartLine, error)
	// Remove deletes a line only when it belongs to userID.
	// Returns domain.ErrCartLineNotFound otherwise.
	Remove(ctx context.Context, userID, lineID int64) error
	// RemoveMany deletes exactly the given lines of userID. When fewer lines
	// than requested are deleted it returns domain.ErrCartChanged.
	RemoveMany(ctx context.Context, userID int64, lineIDs []int64) error
}
