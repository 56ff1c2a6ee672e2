package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

type fakeProducts struct {
	items     map[string]entity.Product
	order     []string
	updates   []entity.Product
	updateErr error
	deleted   []string
	tokens    []string
}

func newFakeProducts(ps ...entity.Product) *fakeProducts {
	f := &fakeProducts{items: map[string]entity.Product{}}
	for _, p := range ps {
		f.items[p.ProductID.String()] = p
		f.order = append(f.order, p.ProductID.String())
	}
	return f
}

func (f *fakeProducts) ListProducts(_ context.Context, token string) ([]entity.Product, error) {
	f.tokens = append(f.tokens, token)
	out := make([]entity.Product, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) GetProduct(_ context.Context, _ string, id string) (*entity.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, &domain.BackendError{Service: "warehouse", Status: 404}
	}
	return &p, nil
}

func (f *fakeProducts) CreateProduct(_ context.Context, _ string, p entity.Product) (*entity.Product, error) {
	p.ProductID = entity.ID(fmt.Sprint(len(f.items) + 1))
	f.items[p.ProductID.String()] = p
	f.order = append(f.order, p.ProductID.String())
	return &p, nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, _ string, id string, p entity.Product) (*entity.Product, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, p)
	f.items[id] = p
	return &p, nil
}

func (f *fakeProducts) DeleteProduct(_ context.Context, _ string, id string) error {
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSuppliers struct {
	items []entity.Supplier
	saved []entity.Supplier
}

func (f *fakeSuppliers) ListSuppliers(context.Context, string) ([]entity.Supplier, error) {
	return f.items, nil
}

func (f *fakeSuppliers) GetSupplier(_ context.Context, _ string, id string) (*entity.Supplier, error) {
	for _, s := range f.items {
		if s.SupplierID.String() == id {
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSuppliers) CreateSupplier(_ context.Context, _ string, s entity.Supplier) (*entity.Supplier, error) {
	s.SupplierID = "99"
	f.saved = append(f.saved, s)
	return &s, nil
}

func (f *fakeSuppliers) UpdateSupplier(_ context.Context, _ string, _ string, s entity.Supplier) (*entity.Supplier, error) {
	f.saved = append(f.saved, s)
	return &s, nil
}

func (f *fakeSuppliers) DeleteSupplier(context.Context, string, string) error { return nil }

type fakeOrders struct {
	saved   []entity.Order
	saveErr error
}

func (f *fakeOrders) ListOrders(context.Context, string) ([]entity.Order, error) { return f.saved, nil }

func (f *fakeOrders) SaveOrder(_ context.Context, _ string, o entity.Order) (*entity.Order, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	o.ID = entity.ID(fmt.Sprint(len(f.saved) + 1))
	f.saved = append(f.saved, o)
	return &o, nil
}

func (f *fakeOrders) DeleteOrder(context.Context, string, string) error { return errors.New("no usado") }

type fakeActivity struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeActivity) Log(id entity.Identity, action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}
