package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

func TestCartHandler_Add_DefaultsQuantity(t *testing.T) {
	gotQty := 0
	stub := &stubCartService{
		addFn: func(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
			gotQty = quantity
			return &ports.CartItem{LineID: 1, ProductID: productID, Quantity: quantity, Price: decimal.RequireFromString("2"), LineTotal: decimal.RequireFromString("2")}, nil
		},
	}

	rec := serve(NewCartHandler(stub).Add, request{
		method: http.MethodPost, path: "/v1/cart/lines", userID: 4, role: "customer",
		body: `{"product_id":9}`,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotQty != 1 {
		t.Fatalf("expected default quantity 1, got %d", gotQty)
	}

	var resp cartItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.LineTotal != "2.00" {
		t.Fatalf("unexpected line total %s", resp.LineTotal)
	}
}

func TestCartHandler_Add_RejectsZeroQuantity(t *testing.T) {
	stub := &stubCartService{
		addFn: func(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	rec := serve(NewCartHandler(stub).Add, request{
		method: http.MethodPost, path: "/v1/cart/lines", userID: 4, role: "customer",
		body: `{"product_id":9,"quantity":0}`,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandler_Add_UnknownProduct(t *testing.T) {
	stub := &stubCartService{
		addFn: func(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
			return nil, domain.ErrProductNotFound
		},
	}

	rec := serve(NewCartHandler(stub).Add, request{
		method: http.MethodPost, path: "/v1/cart/lines", userID: 4, role: "customer",
		body: `{"product_id":9,"quantity":2}`,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Code != "not_found" {
		t.Fatalf("unexpected code %q", resp.Code)
	}
}

func TestCartHandler_Remove(t *testing.T) {
	stub := &stubCartService{
		removeFn: func(ctx context.Context, userID, lineID int64) error {
			if userID != 4 {
				t.Fatalf("unexpected user %d", userID)
			}
			if lineID == 77 {
				return domain.ErrCartLineNotFound
			}
			return nil
		},
	}
	handler := NewCartHandler(stub)

	rec := serve(handler.Remove, request{method: http.MethodDelete, path: "/v1/cart/lines/1", userID: 4, role: "customer", params: map[string]string{"id": "1"}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = serve(handler.Remove, request{method: http.MethodDelete, path: "/v1/cart/lines/77", userID: 4, role: "customer", params: map[string]string{"id": "77"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartHandler_List(t *testing.T) {
	stub := &stubCartService{
		listFn: func(ctx context.Context, userID int64) (*ports.CartView, error) {
			return &ports.CartView{Items: []ports.CartItem{}, Total: decimal.Zero}, nil
		},
	}

	rec := serve(NewCartHandler(stub).List, request{method: http.MethodGet, path: "/v1/cart", userID: 4, role: "customer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 || resp.Total != "0.00" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestCartHandler_Add_RejectsHugeQuantity(t *testing.T) {
	stub := &stubCartService{
		addFn: func(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	rec := serve(NewCartHandler(stub).Add, request{
		method: http.MethodPost, path: "/v1/cart/lines", userID: 4, role: "customer",
		body: `{"product_id":9,"quantity":10001}`,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
