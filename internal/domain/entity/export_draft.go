package entity

import "time"

// ExportState estado del borrador de salida de stock.
type ExportState string

const (
	ExportProductChecked ExportState = "product_checked"
	ExportPreviewing     ExportState = "previewing"
	ExportCommitting     ExportState = "committing"
	ExportDone           ExportState = "done"
	ExportCancelled      ExportState = "cancelled"
	ExportExpired        ExportState = "expired"
)

// ExportDraft borrador de salida. El producto queda fijo tras la verificación.
type ExportDraft struct {
	ID        string         `json:"id"`
	Owner     string         `json:"owner"`
	State     ExportState    `json:"state"`
	Product   InventoryItem  `json:"product"`
	Preview   *ExportPreview `json:"preview,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at,omitempty"`
}

// ExportPreview vista previa armada con la identidad y la foto del producto.
type ExportPreview struct {
	EmployeeName         string    `json:"employee_name"`
	EmployeeID           string    `json:"employee_id"`
	Role                 string    `json:"role"`
	ProductID            ID        `json:"productid"`
	ProductName          string    `json:"productname"`
	Unit                 string    `json:"unit"`
	Quantity             int       `json:"quantity"`
	Available            int       `json:"available"`
	RemainingAfterExport int       `json:"remaining_after_export"`
	Timestamp            time.Time `json:"timestamp"`
}

// Expired true si la vista previa venció.
func (d *ExportDraft) Expired(now time.Time) bool {
	return d.State == ExportPreviewing && !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// SecondsLeft segundos de la cuenta regresiva (0 fuera de Previewing).
func (d *ExportDraft) SecondsLeft(now time.Time) int {
	if d.State != ExportPreviewing || d.ExpiresAt.IsZero() {
		return 0
	}
	left := d.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// Order registro local de la salida (type Export).
func (p ExportPreview) Order(erpOrderID string) Order {
	return Order{
		Type:         OrderTypeExport,
		EmployeeName: p.EmployeeName,
		EmployeeID:   p.EmployeeID,
		Role:         p.Role,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		Quantity:     p.Quantity,
		Timestamp:    p.Timestamp.UTC().Format(time.RFC3339),
		ERPOrderID:   erpOrderID,
	}
}
