package entity

// LedgerHeader asiento principal en el ERP (POST /insert).
type LedgerHeader struct {
	OrderID    string `json:"order_id"`
	DeptID     ID     `json:"dept_id"`
	EmployeeID string `json:"employee_id"`
	Time       string `json:"time"`
}

// LedgerLine línea del asiento (POST /insert-inb).
type LedgerLine struct {
	OrderID   string `json:"order_id"`
	ProductID ID     `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Time      string `json:"time"`
}

// ExportNotification datos del correo de salida (plantilla fija).
type ExportNotification struct {
	ERPOrderID   string `json:"erp_order_id"`
	ProductID    string `json:"productid"`
	ProductName  string `json:"productname"`
	Quantity     int    `json:"quantity"`
	Time         string `json:"time"`
	EmployeeID   string `json:"employeeID"`
	EmployeeName string `json:"employeeName"`
}
