package usecase

import (
	"context"
	"sync"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

type serverError struct{ msg string }

func (e *serverError) Error() string         { return "API error 400: " + e.msg }
func (e *serverError) ServerMessage() string { return e.msg }

type fakeCatalog struct {
	mu         sync.Mutex
	categories []entity.Category
	catErr     error
	products   []entity.Product
	created    []entity.ProductPayload
	failNames  map[string]error
}

func (f *fakeCatalog) ListCategories(ctx context.Context, session entity.Session) ([]entity.Category, error) {
	return f.categories, f.catErr
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, session entity.Session, payload entity.ProductPayload) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
	if err, ok := f.failNames[payload.Name]; ok {
		return nil, err
	}
	return &entity.Product{ID: "p-" + payload.Name, Name: payload.Name}, nil
}

func (f *fakeCatalog) ListProducts(ctx context.Context, session entity.Session, limit int) ([]entity.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, session entity.Session, id string, update entity.ProductUpdate) (*entity.Product, error) {
	if id == "missing" {
		return nil, entity.ErrNotFound
	}
	p := entity.Product{ID: id}
	if update.Name != nil {
		p.Name = *update.Name
	}
	return &p, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, session entity.Session, id string) error {
	if id == "missing" {
		return entity.ErrNotFound
	}
	return nil
}

type fakeOrders struct {
	mu      sync.Mutex
	orders  map[string]entity.Order
	updates []entity.OrderStatus
	failErr error
	// block, when set, holds UpdateOrderStatus until closed
	block   chan struct{}
	entered chan struct{}
}

func newFakeOrders(orders ...entity.Order) *fakeOrders {
	f := &fakeOrders{orders: make(map[string]entity.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) ListOrders(ctx context.Context, session entity.Session, limit int) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) GetOrder(ctx context.Context, session entity.Session, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, session entity.Session, id string, status entity.OrderStatus) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.updates = append(f.updates, status)
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	return nil
}

type fakeDescriber struct {
	text string
	err  error
	hits int
}

func (f *fakeDescriber) WriteDescription(ctx context.Context, name, category string) (string, error) {
	f.hits++
	return f.text, f.err
}

type fakeParser struct {
	rows []entity.ParsedRow
	err  error
}

func (f *fakeParser) ParseRows(ctx context.Context, data []byte, filename string) ([]entity.ParsedRow, error) {
	return f.rows, f.err
}

func (f *fakeParser) Template() ([]byte, error) {
	return []byte("xlsx"), nil
}

type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	if password != "secret" {
		return "", entity.ErrUnauthorized
	}
	return "tok-" + email, nil
}

func validRow(name string, price float64, stock int, category string) entity.ParsedRow {
	return entity.ParsedRow{Name: name, Price: price, PriceOK: true, Stock: stock, StockOK: true, Category: category}
}
