package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

// testDB connects to MARKETPLACE_TEST_MONGO_URI and returns a throwaway
// database that is dropped when the test ends. Tests skip when it is unset.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MARKETPLACE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MARKETPLACE_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	name := fmt.Sprintf("marketplace_test_%d", time.Now().UnixNano())
	client, db, err := Connect(ctx, Config{URI: uri, Database: name})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return db
}

func TestCartRepository_RemoveMany_DetectsConcurrentRemoval(t *testing.T) {
	db := testDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	a, err := repo.Add(ctx, &domain.CartLine{UserID: 1, ProductID: 10, Quantity: 1, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := repo.Add(ctx, &domain.CartLine{UserID: 1, ProductID: 11, Quantity: 2, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Remove(ctx, 2, a.ID); !errors.Is(err, domain.ErrCartLineNotFound) {
		t.Fatalf("foreign remove: expected ErrCartLineNotFound, got %v", err)
	}
	if err := repo.Remove(ctx, 1, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := repo.RemoveMany(ctx, 1, []int64{a.ID, b.ID}); !errors.Is(err, domain.ErrCartChanged) {
		t.Fatalf("expected ErrCartChanged, got %v", err)
	}

	c, err := repo.Add(ctx, &domain.CartLine{UserID: 1, ProductID: 12, Quantity: 1, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	if len(ids) != 1 || ids[0] != c.ID {
		t.Fatalf("unexpected cart after partial drain: %v", ids)
	}
	if err := repo.RemoveMany(ctx, 1, ids); err != nil {
		t.Fatalf("exact drain: %v", err)
	}
}

func TestSaleRepository_MarkShipped(t *testing.T) {
	db := testDB(t)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	sales := []*domain.Sale{{
		VendorID: 2, VendorName: "V", CustomerID: 3, CustomerName: "alice",
		ProductID: 9, ProductName: "Tea", Quantity: 1,
		TotalPrice: decimal.RequireFromString("4.20"), Status: domain.SaleProcessing, CreatedAt: time.Now(),
	}}
	if err := repo.CreateMany(ctx, sales); err != nil {
		t.Fatalf("create: %v", err)
	}
	id := sales[0].ID

	shipped, err := repo.MarkShipped(ctx, id, time.Now())
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if shipped.Status != domain.SaleShipped || shipped.ShippedAt == nil {
		t.Fatalf("unexpected sale: %+v", shipped)
	}

	if _, err := repo.MarkShipped(ctx, id, time.Now()); !errors.Is(err, domain.ErrAlreadyShipped) {
		t.Fatalf("expected ErrAlreadyShipped, got %v", err)
	}
	if _, err := repo.MarkShipped(ctx, id+1000, time.Now()); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got %v", err)
	}
}

func TestUserRepository_CreditRevenue(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	vendor, err := repo.Create(ctx, &domain.User{Username: "v", Role: domain.RoleVendor, VendorName: "V", CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	customer, err := repo.Create(ctx, &domain.User{Username: "c", Role: domain.RoleCustomer, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "v", Role: domain.RoleCustomer}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	for _, amount := range []string{"0.10", "0.20", "25.50"} {
		if err := repo.CreditRevenue(ctx, vendor.ID, decimal.RequireFromString(amount)); err != nil {
			t.Fatalf("credit: %v", err)
		}
	}
	got, err := repo.FindByID(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if domain.FormatMoney(got.VendorRevenue) != "25.80" {
		t.Fatalf("expected 25.80, got %s", got.VendorRevenue)
	}

	if err := repo.CreditRevenue(ctx, customer.ID, decimal.RequireFromString("1")); !errors.Is(err, domain.ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound for customer, got %v", err)
	}
}
