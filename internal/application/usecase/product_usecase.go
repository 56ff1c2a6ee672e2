package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// ProductsPerPage tamaño de página del listado de productos.
const ProductsPerPage = 20

// Pasos de la transacción "Add".
const (
	KindAddStock      = "add_stock"
	StepUpdateProduct = "update_product"
	StepSaveAddOrder  = "save_order"
	StepAddActivity   = "activity_log"
)

// ActivityRecorder diario de actividad sin bloqueo.
type ActivityRecorder interface {
	Log(id entity.Identity, action string)
}

// ProductUseCase CRUD de productos contra el servicio de bodega, filtros locales
// del listado y la transacción de entrada de stock.
type ProductUseCase struct {
	products  repository.ProductGateway
	suppliers repository.SupplierGateway
	orders    repository.OrderGateway
	runner    *saga.Runner
	activity  ActivityRecorder
	messages  *i18n.Translator
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso. activity y now pueden ser nil.
func NewProductUseCase(
	products repository.ProductGateway,
	suppliers repository.SupplierGateway,
	orders repository.OrderGateway,
	runner *saga.Runner,
	activity ActivityRecorder,
	messages *i18n.Translator,
	now func() time.Time,
) *ProductUseCase {
	if now == nil {
		now = time.Now
	}
	if messages == nil {
		messages = i18n.New("vi")
	}
	return &ProductUseCase{
		products:  products,
		suppliers: suppliers,
		orders:    orders,
		runner:    runner,
		activity:  activity,
		messages:  messages,
		now:       now,
	}
}

// List aplica búsqueda (nombre o id contiene), proveedor y filtro de stock; 20 por página.
// El nombre del proveedor se resuelve contra el directorio.
func (uc *ProductUseCase) List(ctx context.Context, id entity.Identity, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	all, err := uc.products.ListProducts(ctx, id.Token)
	if err != nil {
		return nil, err
	}
	names, err := uc.supplierNames(ctx, id.Token)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	supplier := strings.TrimSpace(q.SupplierID)
	views := make([]dto.ProductView, 0, len(all))
	for _, p := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), search) &&
			!strings.Contains(strings.ToLower(p.ProductID.String()), search) {
			continue
		}
		if supplier != "" && p.SupplierID.String() != supplier {
			continue
		}
		if !matchStock(q.Stock, p.Quantity) {
			continue
		}
		views = append(views, dto.ProductView{Product: p, SupplierName: names[p.SupplierID.String()]})
	}

	data, meta := dto.Paginate(views, q.Page, ProductsPerPage)
	return &dto.ProductListResponse{Data: data, Pagination: meta}, nil
}

func matchStock(filter string, qty int) bool {
	switch filter {
	case dto.StockLow:
		return qty < entity.LowStockThreshold
	case dto.StockHigh:
		return qty >= entity.LowStockThreshold
	case dto.StockRestock:
		return qty <= entity.RestockStockThreshold
	default:
		return true
	}
}

func (uc *ProductUseCase) supplierNames(ctx context.Context, token string) (map[string]string, error) {
	list, err := uc.suppliers.ListSuppliers(ctx, token)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, s := range list {
		names[s.SupplierID.String()] = s.SupplierName
	}
	return names, nil
}

// GetByID producto del servicio de bodega.
func (uc *ProductUseCase) GetByID(ctx context.Context, id entity.Identity, productID string) (*entity.Product, error) {
	return uc.products.GetProduct(ctx, id.Token, productID)
}

// Create solo Admin y Warehouse_Manager.
func (uc *ProductUseCase) Create(ctx context.Context, id entity.Identity, in dto.ProductRequest) (*entity.Product, error) {
	if !id.CanManageProducts() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	created, err := uc.products.CreateProduct(ctx, id.Token, in.ToEntity())
	if err != nil {
		return nil, err
	}
	uc.log(id, i18n.ActionProductCreate, created.ProductName)
	return created, nil
}

// Update PUT de registro completo; solo Admin y Warehouse_Manager.
func (uc *ProductUseCase) Update(ctx context.Context, id entity.Identity, productID string, in dto.ProductRequest) (*entity.Product, error) {
	if !id.CanManageProducts() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := in.ToEntity()
	p.ProductID = entity.ID(productID)
	updated, err := uc.products.UpdateProduct(ctx, id.Token, productID, p)
	if err != nil {
		return nil, err
	}
	uc.log(id, i18n.ActionProductUpdate, productID)
	return updated, nil
}

// Delete solo Admin y Warehouse_Manager.
func (uc *ProductUseCase) Delete(ctx context.Context, id entity.Identity, productID string) error {
	if !id.CanManageProducts() {
		return domain.ErrForbidden
	}
	if err := uc.products.DeleteProduct(ctx, id.Token, productID); err != nil {
		return err
	}
	uc.log(id, i18n.ActionProductDelete, productID)
	return nil
}

// AddStock transacción "Add": PUT del producto con cantidad + n y registro de la orden.
// Si la orden no se puede guardar, la cantidad se revierte.
func (uc *ProductUseCase) AddStock(ctx context.Context, id entity.Identity, productID string, in dto.AddStockRequest) (*dto.AddStockResponse, error) {
	if !id.CanManageProducts() {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.products.GetProduct(ctx, id.Token, productID)
	if err != nil {
		return nil, err
	}

	var (
		updated *entity.Product
		order   *entity.Order
	)
	run := &entity.CommitRun{
		RunID:     uuid.NewString(),
		Kind:      KindAddStock,
		Username:  id.Username,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(int64(in.Quantity)),
		StartedAt: uc.now(),
	}
	steps := []saga.Step{
		{
			Name:     StepUpdateProduct,
			Mutating: true,
			Do: func(ctx context.Context) error {
				p, err := uc.products.UpdateProduct(ctx, id.Token, productID, current.WithQuantity(current.Quantity+in.Quantity))
				if err != nil {
					return err
				}
				updated = p
				return nil
			},
			Undo: func(ctx context.Context) error {
				_, err := uc.products.UpdateProduct(ctx, id.Token, productID, *current)
				return err
			},
		},
		{
			Name:     StepSaveAddOrder,
			Mutating: true,
			Do: func(ctx context.Context) error {
				o, err := uc.orders.SaveOrder(ctx, id.Token, entity.Order{
					Type:         entity.OrderTypeAdd,
					EmployeeName: id.FullName,
					EmployeeID:   id.Username,
					Role:         id.Role,
					ProductID:    current.ProductID,
					ProductName:  current.ProductName,
					Quantity:     in.Quantity,
					Timestamp:    uc.now().UTC().Format(time.RFC3339),
				})
				if err != nil {
					return err
				}
				order = o
				run.OrderID = o.ID.String()
				return nil
			},
		},
		{
			Name:       StepAddActivity,
			BestEffort: true,
			Skip:       uc.activity == nil,
			Do: func(context.Context) error {
				uc.activity.Log(id, uc.messages.TDefault(i18n.ActionAddStock, productID, in.Quantity))
				return nil
			},
		},
	}
	if err := uc.runner.Run(ctx, run, steps); err != nil {
		return nil, fmt.Errorf("entrada de stock %s: %w", productID, err)
	}
	if updated == nil {
		p := current.WithQuantity(current.Quantity + in.Quantity)
		updated = &p
	}
	return &dto.AddStockResponse{Product: *updated, Order: *order}, nil
}

func (uc *ProductUseCase) log(id entity.Identity, key string, subject string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Log(id, uc.messages.TDefault(key, subject))
}
