package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, users: users, log: log}
}

// AddLine appends a new line to the user's cart. Existing lines for the same
// product are left as they are.
func (s *CartService) AddLine(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
	if !domain.ValidQuantity(quantity) {
		return nil, domain.ErrInvalidQty
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	line, err := s.carts.Add(ctx, &domain.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int64("user_id", userID).Int64("line_id", line.ID).Int64("product_id", productID).Msg("cart line added")
	item := toCartItem(line, product)
	return &item, nil
}

func (s *CartService) RemoveLine(ctx context.Context, userID, lineID int64) error {
	if err := s.carts.Remove(ctx, userID, lineID); err != nil {
		return err
	}
	s.log.Debug().Int64("user_id", userID).Int64("line_id", lineID).Msg("cart line removed")
	return nil
}

// ListLines resolves every line against the catalog. Lines whose product no
// longer exists are skipped.
func (s *CartService) ListLines(ctx context.Context, userID int64) (*ports.CartView, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ports.CartView{Items: make([]ports.CartItem, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		item := toCartItem(line, product)
		view.Items = append(view.Items, item)
		view.Total = view.Total.Add(item.LineTotal)
	}
	return view, nil
}

func toCartItem(line *domain.CartLine, p *domain.Product) ports.CartItem {
	return ports.CartItem{
		LineID:      line.ID,
		ProductID:   p.ID,
		Quantity:    line.Quantity,
		AddedAt:     line.CreatedAt,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		LineTotal:   domain.LineTotal(p.Price, line.Quantity),
	}
}
