package dto

import (
	"github.com/shopspring/decimal"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// Filtros de stock del listado de productos.
const (
	StockLow     = "low"
	StockHigh    = "high"
	StockRestock = "restock"
)

// ProductListQuery filtros locales del listado (20 por página).
type ProductListQuery struct {
	Search     string `query:"search"`
	SupplierID string `query:"supplier"`
	Stock      string `query:"stock" validate:"omitempty,oneof=low high restock"`
	Page       int    `query:"page"`
}

// ProductRequest body de creación/actualización (registro completo).
type ProductRequest struct {
	ProductID   string          `json:"productid"`
	ProductName string          `json:"productname" validate:"required"`
	Unit        string          `json:"unit" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	SupplierID  string          `json:"supplierid"`
}

// ToEntity convierte el request.
func (r ProductRequest) ToEntity() entity.Product {
	return entity.Product{
		ProductID:   entity.ID(r.ProductID),
		ProductName: r.ProductName,
		Unit:        r.Unit,
		Price:       entity.NewPrice(r.Price),
		Quantity:    r.Quantity,
		SupplierID:  entity.ID(r.SupplierID),
	}
}

// ProductView producto con nombre de proveedor resuelto.
type ProductView struct {
	entity.Product
	SupplierName string `json:"suppliername,omitempty"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Data       []ProductView `json:"data"`
	Pagination PageResponse  `json:"pagination"`
}

// AddStockRequest body de POST /api/products/:id/add-stock.
type AddStockRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// AddStockResponse producto actualizado y orden registrada.
type AddStockResponse struct {
	Product entity.Product `json:"product"`
	Order   entity.Order   `json:"order"`
}
