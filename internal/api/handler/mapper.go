package handler

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

const timeLayout = "2006-01-02T15:04:05Z"

// decimalRequest decodes a money amount from a JSON number or string.
// null is treated as absent by the pointer holding it.
type decimalRequest struct {
	decimal.Decimal
}

func (d *decimalRequest) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	return d.Decimal.UnmarshalJSON(b)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// --- Request → Service input ---

func toCreateProductInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price.Decimal,
		Description: req.Description,
	}
}

func toProductPatch(req updateProductRequest) domain.ProductPatch {
	patch := domain.ProductPatch{Name: req.Name, Description: req.Description}
	if req.Price != nil {
		price := req.Price.Decimal
		patch.Price = &price
	}
	return patch
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		VendorName: u.VendorName,
		CreatedAt:  formatTime(u.CreatedAt),
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       domain.FormatMoney(p.Price),
		Description: p.Description,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toProductResponses(ps []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCartItemResponse(it ports.CartItem) cartItemResponse {
	return cartItemResponse{
		LineID:      it.LineID,
		ProductID:   it.ProductID,
		Quantity:    it.Quantity,
		Name:        it.Name,
		Price:       domain.FormatMoney(it.Price),
		Description: it.Description,
		VendorID:    it.VendorID,
		VendorName:  it.VendorName,
		LineTotal:   domain.FormatMoney(it.LineTotal),
		AddedAt:     formatTime(it.AddedAt),
	}
}

func toCartResponse(v *ports.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, toCartItemResponse(it))
	}
	return cartResponse{Items: items, Total: domain.FormatMoney(v.Total)}
}

func toSaleResponse(s *domain.Sale) saleResponse {
	resp := saleResponse{
		ID:           s.ID,
		VendorID:     s.VendorID,
		VendorName:   s.VendorName,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		Quantity:     s.Quantity,
		TotalPrice:   domain.FormatMoney(s.TotalPrice),
		Status:       string(s.Status),
		CreatedAt:    formatTime(s.CreatedAt),
	}
	if s.ShippedAt != nil {
		resp.ShippedAt = formatTime(*s.ShippedAt)
	}
	return resp
}

func toSaleResponses(ss []*domain.Sale) []saleResponse {
	out := make([]saleResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSaleResponse(s))
	}
	return out
}

func toOrderResponse(r *ports.SettlementReceipt) orderResponse {
	vendors := make([]vendorAggregateResponse, 0, len(r.VendorAggregates))
	for _, a := range r.VendorAggregates {
		vendors = append(vendors, vendorAggregateResponse{
			VendorID:     a.VendorID,
			VendorName:   a.VendorName,
			Total:        domain.FormatMoney(a.Total),
			ProductNames: a.ProductNames,
		})
	}
	return orderResponse{
		Total:             domain.FormatMoney(r.Total),
		Vendors:           vendors,
		Sales:             toSaleResponses(r.Sales),
		StaleLinesDrained: r.StaleLinesDrained,
	}
}
