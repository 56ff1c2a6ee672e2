package inventory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

// QueryUseCase fachada de consultas al ERP.
type QueryUseCase struct {
	erp repository.InventoryGateway
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(erp repository.InventoryGateway) *QueryUseCase {
	return &QueryUseCase{erp: erp}
}

// List página de inventario con filtros (page=1, limit=50 por defecto).
func (uc *QueryUseCase) List(ctx context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error) {
	if filter.MinQty != nil && filter.MaxQty != nil && *filter.MinQty > *filter.MaxQty {
		return nil, fmt.Errorf("minQty > maxQty: %w", domain.ErrInvalidInput)
	}
	return uc.erp.ListInventory(ctx, filter.WithDefaults())
}

// GetByID primer registro del ERP para el id; sin registros = ErrProductNotFound.
// Si el ERP devuelve varias filas (una por bodega) se prefiere la primera con existencia.
func (uc *QueryUseCase) GetByID(ctx context.Context, productID string) (*entity.InventoryItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page, err := uc.erp.ListInventory(ctx, entity.InventoryFilter{ID: productID}.WithDefaults())
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, domain.ErrProductNotFound
	}
	for i := range page.Data {
		if page.Data[i].QtyAvailable > 0 {
			item := page.Data[i]
			return &item, nil
		}
	}
	item := page.Data[0]
	return &item, nil
}

// TotalQuantity suma de existencias del ERP.
func (uc *QueryUseCase) TotalQuantity(ctx context.Context) (int, error) {
	return uc.erp.TotalQuantity(ctx)
}

// Dashboard contadores del tablero; las cuatro consultas al ERP van en paralelo.
// low stock = minQty=1&maxQty=1, out of stock = maxQty=0, remaining = total − out − low.
func (uc *QueryUseCase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	var (
		out        entity.Dashboard
		one        = 1
		zero       = 0
		countLimit = 1
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := uc.erp.ListInventory(gctx, entity.InventoryFilter{Page: 1, Limit: countLimit})
		if err != nil {
			return fmt.Errorf("total de registros: %w", err)
		}
		out.TotalRecords = page.TotalRecords
		return nil
	})
	g.Go(func() error {
		total, err := uc.erp.TotalQuantity(gctx)
		if err != nil {
			return fmt.Errorf("cantidad total: %w", err)
		}
		out.TotalQuantity = total
		return nil
	})
	g.Go(func() error {
		page, err := uc.erp.ListInventory(gctx, entity.InventoryFilter{MinQty: &one, MaxQty: &one, Page: 1, Limit: countLimit})
		if err != nil {
			return fmt.Errorf("stock bajo: %w", err)
		}
		out.LowStock = page.TotalRecords
		return nil
	})
	g.Go(func() error {
		page, err := uc.erp.ListInventory(gctx, entity.InventoryFilter{MaxQty: &zero, Page: 1, Limit: countLimit})
		if err != nil {
			return fmt.Errorf("sin stock: %w", err)
		}
		out.OutOfStock = page.TotalRecords
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Remaining = out.TotalRecords - out.OutOfStock - out.LowStock
	return &out, nil
}
