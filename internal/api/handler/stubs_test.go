package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubProductService struct {
	createFn func(ctx context.Context, vendorID int64, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, vendorID, productID int64, patch domain.ProductPatch) (*domain.Product, error)
	deleteFn func(ctx context.Context, vendorID, productID int64) error
	getFn    func(ctx context.Context, productID int64) (*domain.Product, error)
	listFn   func(ctx context.Context, vendorID int64) ([]*domain.Product, error)
}

func (s *stubProductService) Create(ctx context.Context, vendorID int64, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, vendorID, input)
}

func (s *stubProductService) Update(ctx context.Context, vendorID, productID int64, patch domain.ProductPatch) (*domain.Product, error) {
	return s.updateFn(ctx, vendorID, productID, patch)
}

func (s *stubProductService) Delete(ctx context.Context, vendorID, productID int64) error {
	return s.deleteFn(ctx, vendorID, productID)
}

func (s *stubProductService) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.getFn(ctx, productID)
}

func (s *stubProductService) List(ctx context.Context, vendorID int64) ([]*domain.Product, error) {
	return s.listFn(ctx, vendorID)
}

type stubCartService struct {
	addFn    func(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error)
	removeFn func(ctx context.Context, userID, lineID int64) error
	listFn   func(ctx context.Context, userID int64) (*ports.CartView, error)
}

func (s *stubCartService) AddLine(ctx context.Context, userID, productID int64, quantity int) (*ports.CartItem, error) {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) RemoveLine(ctx context.Context, userID, lineID int64) error {
	return s.removeFn(ctx, userID, lineID)
}

func (s *stubCartService) ListLines(ctx context.Context, userID int64) (*ports.CartView, error) {
	return s.listFn(ctx, userID)
}

type stubOrderService struct {
	placeFn func(ctx context.Context, userID int64) (*ports.SettlementReceipt, error)
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, userID int64) (*ports.SettlementReceipt, error) {
	return s.placeFn(ctx, userID)
}

type stubSaleService struct {
	shipFn          func(ctx context.Context, vendorID, saleID int64) (*domain.Sale, error)
	getFn           func(ctx context.Context, userID, saleID int64) (*domain.Sale, error)
	vendorSalesFn   func(ctx context.Context, vendorID int64) ([]*domain.Sale, error)
	customerSalesFn func(ctx context.Context, customerID int64) ([]*domain.Sale, error)
}

func (s *stubSaleService) AdvanceToShipped(ctx context.Context, vendorID, saleID int64) (*domain.Sale, error) {
	return s.shipFn(ctx, vendorID, saleID)
}

func (s *stubSaleService) GetSale(ctx context.Context, userID, saleID int64) (*domain.Sale, error) {
	return s.getFn(ctx, userID, saleID)
}

func (s *stubSaleService) ListVendorSales(ctx context.Context, vendorID int64) ([]*domain.Sale, error) {
	return s.vendorSalesFn(ctx, vendorID)
}

func (s *stubSaleService) ListCustomerOrders(ctx context.Context, customerID int64) ([]*domain.Sale, error) {
	return s.customerSalesFn(ctx, customerID)
}

type stubVendorService struct {
	revenueFn func(ctx context.Context, vendorID int64) (*ports.VendorRevenue, error)
}

func (s *stubVendorService) GetVendorRevenue(ctx context.Context, vendorID int64) (*ports.VendorRevenue, error) {
	return s.revenueFn(ctx, vendorID)
}

// request describes one handler invocation.
type request struct {
	method string
	path   string
	body   string
	userID int64
	role   string
	params map[string]string
	query  string
}

// serve runs h the way the router would: validator and error handler
// installed, principal injected as the Auth middleware does.
func serve(h echo.HandlerFunc, r request) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	target := r.path
	if r.query != "" {
		target += "?" + r.query
	}
	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if r.userID != 0 {
		c.Set(CtxUserID, r.userID)
		c.Set(CtxRole, r.role)
	}
	for name, value := range r.params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}
