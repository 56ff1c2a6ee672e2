// Package excel genera el libro de reportes con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

var _ report.XLSXRenderer = (*ReportWorkbook)(nil)

// ReportWorkbook hoja de datos + hoja "filtros aplicados".
type ReportWorkbook struct{}

func NewReportWorkbook() *ReportWorkbook { return &ReportWorkbook{} }

func (w *ReportWorkbook) RenderXLSX(doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	dataSheet := nonEmpty(doc.DataSheet, "Report")
	filtersSheet := nonEmpty(doc.FiltersSheet, "Filters")

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// ── Datos ────────────────────────────────────────────────────────────────
	c := doc.Columns
	header := []interface{}{c.ProductID, c.Name, c.Type, c.Quantity, c.Date, c.Employee}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetCellStyle(dataSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	for i, o := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{o.ProductID.String(), o.ProductName, o.Type, o.Quantity, o.Timestamp, employee(o)}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(dataSheet, "A", "A", 16)
	_ = f.SetColWidth(dataSheet, "B", "B", 40)
	_ = f.SetColWidth(dataSheet, "E", "F", 22)
	if len(doc.Rows) > 0 {
		if err := f.AutoFilter(dataSheet, fmt.Sprintf("A1:F%d", len(doc.Rows)+1), nil); err != nil {
			return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
		}
	}

	// ── Filtros aplicados ────────────────────────────────────────────────────
	if _, err := f.NewSheet(filtersSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja de filtros: %w", err)
	}
	fh := []interface{}{nonEmpty(doc.FilterHeader[0], "Filter"), nonEmpty(doc.FilterHeader[1], "Value")}
	if err := f.SetSheetRow(filtersSheet, "A1", &fh); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(filtersSheet, "A1", "B1", headerStyle)
	for i, flt := range doc.Filters {
		row := []interface{}{flt.Label, flt.Value}
		if err := f.SetSheetRow(filtersSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(filtersSheet, "A", "B", 24)

	idx, err := f.GetSheetIndex(dataSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func employee(o entity.Order) string {
	switch {
	case o.EmployeeName != "" && o.EmployeeID != "":
		return fmt.Sprintf("%s (%s)", o.EmployeeName, o.EmployeeID)
	case o.EmployeeName != "":
		return o.EmployeeName
	default:
		return o.EmployeeID
	}
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
