package entity

// InventoryItem registro de inventario del ERP (nombres de columna del ERP).
type InventoryItem struct {
	ProductID    ID     `json:"PRODUCT_ID"`
	ProductName  string `json:"PRODUCT_NAME"`
	Description  string `json:"DESCRIPTION,omitempty"`
	QtyAvailable int    `json:"QTY_AVAILABLE"`
	Unit         string `json:"UNIT,omitempty"`
	WarehouseID  ID     `json:"WAREHOUSE_ID,omitempty"`
	RowNum       int    `json:"RNUM,omitempty"`
}

// InventoryPage respuesta paginada de GET /inventory.
type InventoryPage struct {
	Data         []InventoryItem `json:"data"`
	TotalRecords int             `json:"totalRecords"`
	TotalPages   int             `json:"totalPages"`
}

// InventoryFilter filtros del ERP. Campos vacíos o nil no se envían.
type InventoryFilter struct {
	ID       string
	Category string
	MinQty   *int
	MaxQty   *int
	Search   string
	Page     int
	Limit    int
}

// Valores por defecto de paginación del ERP.
const (
	DefaultInventoryPage  = 1
	DefaultInventoryLimit = 50
)

// WithDefaults aplica page=1 y limit=50 cuando no vienen.
func (f InventoryFilter) WithDefaults() InventoryFilter {
	if f.Page <= 0 {
		f.Page = DefaultInventoryPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultInventoryLimit
	}
	return f
}

// Dashboard contadores del tablero.
type Dashboard struct {
	TotalRecords  int `json:"totalRecords"`
	TotalQuantity int `json:"totalQuantity"`
	LowStock      int `json:"lowStock"`
	OutOfStock    int `json:"outOfStock"`
	Remaining     int `json:"remaining"`
}

// Employee datos de empleado del ERP (GET /get-gen/:employeeId).
type Employee struct {
	DeptID ID `json:"deptID"`
}
