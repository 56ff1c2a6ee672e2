package dto

import "github.com/DaTT2001/warehouse-web/internal/domain/entity"

// InventoryResponse página del ERP tal como la devuelve el backend.
type InventoryResponse = entity.InventoryPage

// TotalQuantityResponse GET /api/inventory/total-qty.
type TotalQuantityResponse struct {
	TotalQty int `json:"totalQty"`
}

// DashboardResponse contadores del tablero.
type DashboardResponse = entity.Dashboard
