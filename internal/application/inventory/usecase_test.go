package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

type fakeERP struct {
	mu      sync.Mutex
	filters []entity.InventoryFilter
	list    func(entity.InventoryFilter) (*entity.InventoryPage, error)
	total   int
	err     error
}

func (f *fakeERP) ListInventory(_ context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.list(filter)
}

func (f *fakeERP) TotalQuantity(context.Context) (int, error) { return f.total, f.err }

func (f *fakeERP) SubtractQuantity(context.Context, string, int) error { return nil }

func (f *fakeERP) AddQuantity(context.Context, string, int) error { return nil }

func TestGetByID_SinRegistros(t *testing.T) {
	erp := &fakeERP{list: func(entity.InventoryFilter) (*entity.InventoryPage, error) {
		return &entity.InventoryPage{Data: []entity.InventoryItem{}}, nil
	}}
	_, err := NewQueryUseCase(erp).GetByID(context.Background(), "P404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetByID_PrefiereFilaConExistencia(t *testing.T) {
	erp := &fakeERP{list: func(f entity.InventoryFilter) (*entity.InventoryPage, error) {
		assert.Equal(t, "P1", f.ID)
		return &entity.InventoryPage{Data: []entity.InventoryItem{
			{ProductID: "P1", WarehouseID: "W1", QtyAvailable: 0},
			{ProductID: "P1", WarehouseID: "W2", QtyAvailable: 10},
		}}, nil
	}}
	item, err := NewQueryUseCase(erp).GetByID(context.Background(), " P1 ")
	require.NoError(t, err)
	assert.Equal(t, entity.ID("W2"), item.WarehouseID)
}

func TestList_AplicaDefaultsYValidaRango(t *testing.T) {
	erp := &fakeERP{list: func(f entity.InventoryFilter) (*entity.InventoryPage, error) {
		return &entity.InventoryPage{}, nil
	}}
	uc := NewQueryUseCase(erp)

	_, err := uc.List(context.Background(), entity.InventoryFilter{Search: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, erp.filters[0].Page)
	assert.Equal(t, 50, erp.filters[0].Limit)

	min, max := 5, 1
	_, err = uc.List(context.Background(), entity.InventoryFilter{MinQty: &min, MaxQty: &max})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_Contadores(t *testing.T) {
	erp := &fakeERP{total: 500, list: func(f entity.InventoryFilter) (*entity.InventoryPage, error) {
		switch {
		case f.MaxQty != nil && *f.MaxQty == 0:
			return &entity.InventoryPage{TotalRecords: 7}, nil
		case f.MinQty != nil && *f.MinQty == 1 && f.MaxQty != nil && *f.MaxQty == 1:
			return &entity.InventoryPage{TotalRecords: 3}, nil
		default:
			return &entity.InventoryPage{TotalRecords: 100}, nil
		}
	}}

	d, err := NewQueryUseCase(erp).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Dashboard{TotalRecords: 100, TotalQuantity: 500, LowStock: 3, OutOfStock: 7, Remaining: 90}, *d)
	assert.Len(t, erp.filters, 3)
}

func TestDashboard_ErrorDeUnaConsulta(t *testing.T) {
	erp := &fakeERP{err: errors.New("erp caído"), list: func(entity.InventoryFilter) (*entity.InventoryPage, error) {
		return &entity.InventoryPage{}, nil
	}}
	_, err := NewQueryUseCase(erp).Dashboard(context.Background())
	assert.ErrorContains(t, err, "erp caído")
}
