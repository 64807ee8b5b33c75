package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// =====================
// インメモリのストア。1トランザクション失敗で全体を巻き戻す
// =====================

type memStore struct {
	products map[int64]model.Product
	orders   map[int64]model.Order
	items    map[int64][]model.OrderItem      // orderID -> 明細
	addrs    map[int64]model.ShippingAddress  // orderID -> 住所
	users    map[int64]model.User
	reviews  map[int64]model.Review

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int64]model.Product{},
		orders:   map[int64]model.Order{},
		items:    map[int64][]model.OrderItem{},
		addrs:    map[int64]model.ShippingAddress{},
		users:    map[int64]model.User{},
		reviews:  map[int64]model.Review{},
		nextID:   0,
	}
}

func (s *memStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		items := make([]model.OrderItem, len(v))
		copy(items, v)
		c.items[k] = items
	}
	for k, v := range s.addrs {
		c.addrs[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	return c
}

// WithinTxはfnが失敗したらストアをまるごと巻き戻す
type fakeTxManager struct {
	store *memStore
}

func newFakeTxManager(store *memStore) *fakeTxManager {
	return &fakeTxManager{store: store}
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	snapshot := m.store.clone()
	if err := fn(&fakeTxRepos{store: m.store}); err != nil {
		*m.store = *snapshot
		return err
	}
	return nil
}

type fakeTxRepos struct {
	store *memStore
}

func (r *fakeTxRepos) Products() repo.ProductRepository                 { return &fakeProductRepo{store: r.store} }
func (r *fakeTxRepos) Inventory() repo.InventoryRepository              { return &fakeInventoryRepo{store: r.store} }
func (r *fakeTxRepos) Orders() repo.OrderRepository                     { return &fakeOrderRepo{store: r.store} }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository             { return &fakeOrderItemRepo{store: r.store} }
func (r *fakeTxRepos) ShippingAddresses() repo.ShippingAddressRepository { return &fakeShippingAddressRepo{store: r.store} }
func (r *fakeTxRepos) Users() repo.UserRepository                       { return &fakeUserRepo{store: r.store} }
func (r *fakeTxRepos) Reviews() repo.ReviewRepository                   { return &fakeReviewRepo{store: r.store} }

// =====================
// Repository fakes
// =====================

type fakeProductRepo struct {
	store *memStore
}

func (f *fakeProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range f.store.products {
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Q)) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case "price_asc":
		sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case "price_desc":
		sort.Slice(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case "rating":
		sort.Slice(out, func(i, j int) bool { return out[j].Rating.LessThan(out[i].Rating) })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}

	total := int64(len(out))
	start := (q.Page - 1) * q.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + q.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := f.store.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = f.store.newID()
	f.store.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p model.Product) error {
	cur, ok := f.store.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = p.Name
	cur.Brand = p.Brand
	cur.Category = p.Category
	cur.Description = p.Description
	cur.Price = p.Price
	cur.CountInStock = p.CountInStock
	f.store.products[p.ID] = cur
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.store.products, id)
	return nil
}

func (f *fakeProductRepo) UpdateImage(ctx context.Context, id int64, image string) error {
	p, ok := f.store.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Image = image
	f.store.products[id] = p
	return nil
}

func (f *fakeProductRepo) UpdateRating(ctx context.Context, id int64, rating decimal.Decimal, numReviews int64) error {
	p, ok := f.store.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Rating = rating
	p.NumReviews = numReviews
	f.store.products[id] = p
	return nil
}

type fakeInventoryRepo struct {
	store *memStore
}

func (f *fakeInventoryRepo) DecrementStockIfAvailable(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := f.store.products[productID]
	if !ok || p.CountInStock < qty {
		return false, nil
	}
	p.CountInStock -= qty
	f.store.products[productID] = p
	return true, nil
}

func (f *fakeInventoryRepo) IncrementStock(ctx context.Context, productID int64, qty int64) error {
	p, ok := f.store.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CountInStock += qty
	f.store.products[productID] = p
	return nil
}

func (f *fakeInventoryRepo) SetStock(ctx context.Context, productID int64, newCount int64) error {
	p, ok := f.store.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CountInStock = newCount
	f.store.products[productID] = p
	return nil
}

type fakeOrderRepo struct {
	store *memStore
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := f.store.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.store.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginateOrders(out, page, limit)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = f.store.newID()
	f.store.orders[order.ID] = order
	return order.ID, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range f.store.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginateOrders(out, page, limit)
}

func paginateOrders(out []model.Order, page int, limit int) ([]model.Order, int64, error) {
	total := int64(len(out))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, orderID int64, at time.Time) error {
	o, ok := f.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.IsPaid = true
	o.PaidAt = &at
	f.store.orders[orderID] = o
	return nil
}

func (f *fakeOrderRepo) MarkDelivered(ctx context.Context, orderID int64, at time.Time) error {
	o, ok := f.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.IsDelivered = true
	o.DeliveredAt = &at
	f.store.orders[orderID] = o
	return nil
}

type fakeOrderItemRepo struct {
	store *memStore
}

func (f *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	stored := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		it.ID = f.store.newID()
		it.OrderID = orderID
		stored = append(stored, it)
	}
	f.store.items[orderID] = append(f.store.items[orderID], stored...)
	return nil
}

func (f *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := f.store.items[orderID]
	out := make([]model.OrderItem, len(items))
	copy(out, items)
	return out, nil
}

type fakeShippingAddressRepo struct {
	store *memStore
}

func (f *fakeShippingAddressRepo) Create(ctx context.Context, addr model.ShippingAddress) (int64, error) {
	addr.ID = f.store.newID()
	f.store.addrs[addr.OrderID] = addr
	return addr.ID, nil
}

func (f *fakeShippingAddressRepo) FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error) {
	a, ok := f.store.addrs[orderID]
	if !ok {
		return model.ShippingAddress{}, repo.ErrNotFound
	}
	return a, nil
}

type fakeUserRepo struct {
	store *memStore
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, ok := f.store.users[id]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range f.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.store.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u model.User) (int64, error) {
	for _, cur := range f.store.users {
		if cur.Email == u.Email {
			return 0, repo.ErrConflict
		}
	}
	u.ID = f.store.newID()
	f.store.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u model.User) error {
	if _, ok := f.store.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, cur := range f.store.users {
		if cur.ID != u.ID && cur.Email == u.Email {
			return repo.ErrConflict
		}
	}
	f.store.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Activate(ctx context.Context, id int64) error {
	u, ok := f.store.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive = true
	f.store.users[id] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.store.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.store.users, id)
	return nil
}

type fakeReviewRepo struct {
	store *memStore
}

func (f *fakeReviewRepo) Create(ctx context.Context, r model.Review) (int64, error) {
	r.ID = f.store.newID()
	f.store.reviews[r.ID] = r
	return r.ID, nil
}

func (f *fakeReviewRepo) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var out []model.Review
	for _, r := range f.store.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReviewRepo) ExistsForUser(ctx context.Context, productID int64, userID int64) (bool, error) {
	for _, r := range f.store.reviews {
		if r.ProductID == productID && r.UserID != nil && *r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// =====================
// テスト用のヘルパー
// =====================

func seedUser(store *memStore, email string, firstName string, isAdmin bool) model.User {
	u := model.User{
		ID:        store.newID(),
		Email:     email,
		FirstName: firstName,
		IsAdmin:   isAdmin,
		IsActive:  true,
	}
	store.users[u.ID] = u
	return u
}

func seedProduct(store *memStore, name string, price string, stock int64) model.Product {
	p := model.Product{
		ID:           store.newID(),
		Name:         name,
		Price:        decimal.RequireFromString(price),
		CountInStock: stock,
	}
	store.products[p.ID] = p
	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
