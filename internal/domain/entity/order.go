package entity

import (
	"fmt"
	"time"
)

// Tipos de orden.
const (
	OrderTypeAdd    = "Add"
	OrderTypeExport = "Export"
)

// LocalLayout formato de fecha que muestra la consola (UTC+7).
const LocalLayout = "2006-01-02 15:04:05"

// LocalZone zona horaria de la bodega.
var LocalZone = time.FixedZone("UTC+7", 7*60*60)

// Order registro de transacción guardado en el servicio de bodega (reportes).
type Order struct {
	ID           ID     `json:"id,omitempty"`
	Type         string `json:"type"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	Role         string `json:"role,omitempty"`
	ProductID    ID     `json:"productid"`
	ProductName  string `json:"productname"`
	Quantity     int    `json:"quantity"`
	Timestamp    string `json:"timestamp"`
	ERPOrderID   string `json:"erp_order_id,omitempty"`
}

// Time interpreta Timestamp: "yyyy-MM-dd HH:mm:ss" en UTC+7 o RFC3339.
func (o Order) Time() (time.Time, error) {
	return ParseTimestamp(o.Timestamp)
}

// QuantityDelta cambio de stock que revierte la orden: +q para Export, −q para Add.
func (o Order) QuantityDelta() (int, error) {
	switch o.Type {
	case OrderTypeExport:
		return o.Quantity, nil
	case OrderTypeAdd:
		return -o.Quantity, nil
	default:
		return 0, fmt.Errorf("tipo de orden desconocido: %q", o.Type)
	}
}

// ParseTimestamp acepta el formato local de la consola o RFC3339.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(LocalLayout, s, LocalZone); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// FormatLocal formatea t en UTC+7 "yyyy-MM-dd HH:mm:ss".
func FormatLocal(t time.Time) string {
	return t.In(LocalZone).Format(LocalLayout)
}

// ActivityLog entrada del diario de actividad.
type ActivityLog struct {
	ID        ID     `json:"id,omitempty"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp,omitempty"`
}
