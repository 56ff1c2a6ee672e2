package report

import (
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// Columns encabezados ya traducidos.
type Columns struct {
	ProductID string
	Name      string
	Type      string
	Quantity  string
	Date      string
	Employee  string
}

// AppliedFilter filtro aplicado al reporte exportado (hoja de metadatos).
type AppliedFilter struct {
	Label string
	Value string
}

// Document reporte listo para renderizar (xlsx o pdf).
type Document struct {
	Title        string
	DataSheet    string
	FiltersSheet string
	FilterHeader [2]string // Filtro | Valor
	Columns      Columns
	Rows         []entity.Order
	Filters      []AppliedFilter
	GeneratedAt  time.Time
	GeneratedBy  string
}

// XLSXRenderer genera el libro Excel (hoja de datos + hoja de filtros).
type XLSXRenderer interface {
	RenderXLSX(doc Document) ([]byte, error)
}

// PDFRenderer genera el reporte imprimible.
type PDFRenderer interface {
	RenderPDF(doc Document) ([]byte, error)
}
