package repository

import (
	"context"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// Puertos hacia las dos APIs que orquesta la consola. token es el Bearer del operador;
// se pasa explícito en cada llamada, no hay estado de sesión global.

// InventoryGateway lecturas y ajustes de cantidad en el ERP.
type InventoryGateway interface {
	ListInventory(ctx context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error)
	TotalQuantity(ctx context.Context) (int, error)
	SubtractQuantity(ctx context.Context, productID string, qty int) error
	AddQuantity(ctx context.Context, productID string, qty int) error
}

// LedgerGateway escrituras transaccionales en el ERP durante la salida.
type LedgerGateway interface {
	OrderIDExists(ctx context.Context, orderID string) (bool, error)
	Employee(ctx context.Context, employeeID string) (*entity.Employee, error)
	InsertHeader(ctx context.Context, h entity.LedgerHeader) error
	InsertLine(ctx context.Context, l entity.LedgerLine) error
}

// ProductGateway CRUD de productos del servicio de bodega.
type ProductGateway interface {
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	GetProduct(ctx context.Context, token, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, token string, p entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, token, id string, p entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// SupplierGateway CRUD de proveedores.
type SupplierGateway interface {
	ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error)
	GetSupplier(ctx context.Context, token, id string) (*entity.Supplier, error)
	CreateSupplier(ctx context.Context, token string, s entity.Supplier) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, token, id string, s entity.Supplier) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, token, id string) error
}

// OrderGateway registros de transacción (reportes).
type OrderGateway interface {
	ListOrders(ctx context.Context, token string) ([]entity.Order, error)
	SaveOrder(ctx context.Context, token string, o entity.Order) (*entity.Order, error)
	DeleteOrder(ctx context.Context, token, id string) error
}

// ActivityLogGateway diario de actividad (sin autenticación).
type ActivityLogGateway interface {
	ListLogs(ctx context.Context) ([]entity.ActivityLog, error)
	SendLog(ctx context.Context, username, action string) error
}

// AuthGateway login contra el servicio de bodega.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (token string, err error)
}
