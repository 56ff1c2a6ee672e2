package entity

import "github.com/shopspring/decimal"

// Product producto del servicio local de bodega. Se actualiza con PUT de registro completo.
type Product struct {
	ProductID   ID              `json:"productid,omitempty"`
	ProductName string          `json:"productname"`
	Unit        string          `json:"unit"`
	Price       Price           `json:"price"`
	Quantity    int             `json:"quantity"`
	SupplierID  ID              `json:"supplierid"`
}

// Price precio del producto; el backend de bodega lo lee y escribe como número JSON.
type Price struct {
	decimal.Decimal
}

// NewPrice envuelve un decimal.
func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d} }

// MarshalJSON número sin comillas, sin tocar la configuración global de decimal.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// Umbrales de stock del listado de productos.
const (
	LowStockThreshold     = 10 // low: < 10, high: >= 10
	RestockStockThreshold = 5  // restock: <= 5
)

// WithQuantity copia el registro con otra cantidad (PUT de registro completo).
func (p Product) WithQuantity(q int) Product {
	p.Quantity = q
	return p
}

// Supplier proveedor del directorio.
type Supplier struct {
	SupplierID   ID     `json:"supplierid,omitempty"`
	SupplierName string `json:"suppliername"`
	ContactName  string `json:"contactname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}
