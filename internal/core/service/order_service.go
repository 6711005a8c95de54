package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// OrderService settles carts into sales.
type OrderService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	carts    ports.CartRepository
	sales    ports.SaleRepository
	tx       ports.Transactor
	locker   ports.SettlementLocker
	log      zerolog.Logger
}

// OrderDeps groups the collaborators of OrderService.
type OrderDeps struct {
	Users      ports.UserRepository
	Products   ports.ProductRepository
	Carts      ports.CartRepository
	Sales      ports.SaleRepository
	Transactor ports.Transactor
	Locker     ports.SettlementLocker
}

func NewOrderService(deps OrderDeps, log zerolog.Logger) *OrderService {
	return &OrderService{
		users:    deps.Users,
		products: deps.Products,
		carts:    deps.Carts,
		sales:    deps.Sales,
		tx:       deps.Transactor,
		locker:   deps.Locker,
		log:      log,
	}
}

// PlaceOrder converts the user's cart into sales, credits vendor revenue and
// drains the cart, all in one transaction. Lines whose product has been
// deleted are not settled but are drained together with the settled ones.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64) (*ports.SettlementReceipt, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		// The lock must be released even if the request context is already done.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := unlock(releaseCtx); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to release settlement lock")
		}
	}()

	var receipt *ports.SettlementReceipt
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		receipt, txErr = s.settle(txCtx, userID)
		return txErr
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.log.Error().Err(err).Int64("user_id", userID).Msg("settlement rolled back")
		}
		return nil, err
	}

	s.log.Info().
		Int64("user_id", userID).
		Int("sales", len(receipt.Sales)).
		Int("vendors", len(receipt.VendorAggregates)).
		Int("stale_lines", receipt.StaleLinesDrained).
		Str("total", domain.FormatMoney(receipt.Total)).
		Msg("order placed")

	return receipt, nil
}

// settle runs inside the transaction. It holds no state across calls so the
// transactor may retry it.
func (s *OrderService) settle(ctx context.Context, userID int64) (*ports.SettlementReceipt, error) {
	customer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	now := time.Now().UTC()
	agg := newVendorAggregator()
	sales := make([]*domain.Sale, 0, len(lines))
	drain := make([]int64, 0, len(lines))
	stale := 0

	for _, line := range lines {
		drain = append(drain, line.ID)

		product, err := s.products.FindByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			stale++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", line.ProductID, err)
		}

		lineTotal := domain.LineTotal(product.Price, line.Quantity)
		sales = append(sales, &domain.Sale{
			VendorID:     product.VendorID,
			VendorName:   product.VendorName,
			CustomerID:   customer.ID,
			CustomerName: customer.Username,
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     line.Quantity,
			TotalPrice:   lineTotal,
			Status:       domain.SaleProcessing,
			CreatedAt:    now,
		})
		agg.add(product.VendorID, product.VendorName, product.Name, lineTotal)
	}

	if len(sales) > 0 {
		if err := s.sales.CreateMany(ctx, sales); err != nil {
			return nil, fmt.Errorf("record sales: %w", err)
		}
	}

	for _, va := range agg.list {
		if err := s.users.CreditRevenue(ctx, va.VendorID, va.Total); err != nil {
			return nil, fmt.Errorf("credit vendor %d: %w", va.VendorID, err)
		}
	}

	if err := s.carts.RemoveMany(ctx, userID, drain); err != nil {
		return nil, fmt.Errorf("drain cart: %w", err)
	}

	return &ports.SettlementReceipt{
		VendorAggregates:  agg.list,
		Sales:             sales,
		Total:             agg.total,
		StaleLinesDrained: stale,
	}, nil
}

// vendorAggregator merges line totals per vendor, keeping vendors in order
// of first appearance.
type vendorAggregator struct {
	index map[int64]int
	list  []ports.VendorAggregate
	total decimal.Decimal
}

func newVendorAggregator() *vendorAggregator {
	return &vendorAggregator{index: make(map[int64]int), total: decimal.Zero}
}

func (a *vendorAggregator) add(vendorID int64, vendorName, productName string, amount decimal.Decimal) {
	a.total = a.total.Add(amount)
	i, ok := a.index[vendorID]
	if !ok {
		a.index[vendorID] = len(a.list)
		a.list = append(a.list, ports.VendorAggregate{
			VendorID:     vendorID,
			VendorName:   vendorName,
			Total:        amount,
			ProductNames: []string{productName},
		})
		return
	}
	a.list[i].Total = a.list[i].Total.Add(amount)
	a.list[i].ProductNames = append(a.list[i].ProductNames, productName)
}
