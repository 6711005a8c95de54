package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the stub repositories. WithinTransaction snapshots
// the whole store and restores it when fn fails, mirroring a rollback.
// ---------------------------------------------------------------------------

type memState struct {
	users    map[int64]domain.User
	products map[int64]domain.Product
	lines    []domain.CartLine
	sales    []domain.Sale
	seq      int64
}

type memStore struct {
	mu sync.Mutex
	memState

	// failure injection
	createSalesErr error
	creditErr      error
	removeManyErr  error

	writes int
	txRuns int
}

func newMemStore() *memStore {
	return &memStore{memState: memState{
		users:    make(map[int64]domain.User),
		products: make(map[int64]domain.Product),
	}}
}

func (s *memStore) snapshot() memState {
	return memState{
		users:    maps.Clone(s.users),
		products: maps.Clone(s.products),
		lines:    slices.Clone(s.lines),
		sales:    slices.Clone(s.sales),
		seq:      s.seq,
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.txRuns++
	snap := s.snapshot()
	writes := s.writes
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.memState = snap
		s.writes = writes
		s.mu.Unlock()
		return err
	}
	return nil
}

// seed helpers

func (s *memStore) addVendor(name string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.nextID(), Username: "v_" + name, Role: domain.RoleVendor, VendorName: name, VendorRevenue: decimal.Zero}
	s.users[u.ID] = u
	return &u
}

func (s *memStore) addCustomer(username string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.nextID(), Username: username, Role: domain.RoleCustomer, VendorRevenue: decimal.Zero}
	s.users[u.ID] = u
	return &u
}

func (s *memStore) addProduct(vendor *domain.User, name, price string) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Product{ID: s.nextID(), Name: name, Price: decimal.RequireFromString(price), VendorID: vendor.ID, VendorName: vendor.VendorName}
	s.products[p.ID] = p
	return &p
}

func (s *memStore) revenue(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].VendorRevenue
}

func (s *memStore) linesOf(userID int64) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CartLine
	for _, l := range s.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Repository views
// ---------------------------------------------------------------------------

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = r.nextID()
	r.users[clone.ID] = clone
	r.writes++
	return &clone, nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) CreditRevenue(_ context.Context, vendorID int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creditErr != nil {
		return r.creditErr
	}
	u, ok := r.users[vendorID]
	if !ok || u.Role != domain.RoleVendor {
		return domain.ErrVendorNotFound
	}
	u.VendorRevenue = u.VendorRevenue.Add(amount)
	r.users[vendorID] = u
	r.writes++
	return nil
}

type memProducts struct{ *memStore }

func (r memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	clone.ID = r.nextID()
	r.products[clone.ID] = clone
	r.writes++
	return &clone, nil
}

func (r memProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r memProducts) List(_ context.Context, vendorID int64) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0)
	for _, p := range r.products {
		if vendorID != 0 && p.VendorID != vendorID {
			continue
		}
		clone := p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProducts) Update(_ context.Context, id, vendorID int64, patch domain.ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	r.products[id] = p
	r.writes++
	return &p, nil
}

func (r memProducts) Delete(_ context.Context, id, vendorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.VendorID != vendorID {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	r.writes++
	return nil
}

type memCarts struct{ *memStore }

func (r memCarts) Add(_ context.Context, l *domain.CartLine) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *l
	clone.ID = r.nextID()
	r.lines = append(r.lines, clone)
	r.writes++
	return &clone, nil
}

func (r memCarts) ListByUser(_ context.Context, userID int64) ([]*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CartLine
	for _, l := range r.lines {
		if l.UserID == userID {
			clone := l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r memCarts) Remove(_ context.Context, userID, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.ID == lineID && l.UserID == userID {
			r.lines = slices.Delete(r.lines, i, i+1)
			r.writes++
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

func (r memCarts) RemoveMany(_ context.Context, userID int64, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removeManyErr != nil {
		return r.removeManyErr
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	kept := r.lines[:0:0]
	removed := 0
	for _, l := range r.lines {
		if l.UserID == userID && want[l.ID] {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.lines = kept
	r.writes++
	if removed != len(ids) {
		return domain.ErrCartChanged
	}
	return nil
}

type memSales struct{ *memStore }

func (r memSales) CreateMany(_ context.Context, sales []*domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createSalesErr != nil {
		return r.createSalesErr
	}
	for _, s := range sales {
		s.ID = r.nextID()
		r.sales = append(r.sales, *s)
	}
	r.writes++
	return nil
}

func (r memSales) FindByID(_ context.Context, id int64) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

func (r memSales) List(_ context.Context, f ports.SaleFilter) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Sale, 0)
	for i := len(r.sales) - 1; i >= 0; i-- {
		s := r.sales[i]
		if f.VendorID != 0 && s.VendorID != f.VendorID {
			continue
		}
		if f.CustomerID != 0 && s.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r memSales) MarkShipped(_ context.Context, id int64, at time.Time) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sales {
		if s.ID != id {
			continue
		}
		if s.Status != domain.SaleProcessing {
			return nil, domain.ErrAlreadyShipped
		}
		s.Status = domain.SaleShipped
		s.ShippedAt = &at
		r.sales[i] = s
		r.writes++
		return &s, nil
	}
	return nil, domain.ErrSaleNotFound
}

// ---------------------------------------------------------------------------
// Locker stub
// ---------------------------------------------------------------------------

type stubLocker struct {
	mu       sync.Mutex
	held     map[int64]bool
	released int
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: make(map[int64]bool)}
}

func (l *stubLocker) Lock(_ context.Context, userID int64) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		return nil, domain.ErrSettlementInProgress
	}
	l.held[userID] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, userID)
		l.released++
		return nil
	}, nil
}
