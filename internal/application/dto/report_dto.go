package dto

import "github.com/DaTT2001/warehouse-web/internal/domain/entity"

// ReportQuery filtros del reporte (fechas yyyy-MM-dd, días inclusivos).
type ReportQuery struct {
	Type      string `query:"type" validate:"omitempty,oneof=Add Export"`
	Name      string `query:"name"`
	ProductID string `query:"productId"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Page      int    `query:"page"`
}

// ReportRow orden con indicador de deshacer.
type ReportRow struct {
	entity.Order
	CanUndo bool `json:"canUndo"`
}

// ReportListResponse página del reporte.
type ReportListResponse struct {
	Data       []ReportRow  `json:"data"`
	Pagination PageResponse `json:"pagination"`
}

// LogListResponse página del diario de actividad.
type LogListResponse struct {
	Data       []entity.ActivityLog `json:"data"`
	Pagination PageResponse         `json:"pagination"`
}
