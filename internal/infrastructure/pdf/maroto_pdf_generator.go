// Package pdf genera el reporte imprimible de movimientos de stock con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Título                       │  Fecha de generación / usuario│
//	│  ─────────────────────────────────────────────────────────  │
//	│  Filtros aplicados                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Tipo | Cantidad | Fecha | Empleado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Totales Add / Export                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"unicode"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DaTT2001/warehouse-web/internal/application/report"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

var _ report.PDFRenderer = (*ReportPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportPDFGenerator implementa report.PDFRenderer.
type ReportPDFGenerator struct{}

func NewReportPDFGenerator() *ReportPDFGenerator { return &ReportPDFGenerator{} }

// RenderPDF genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) RenderPDF(doc report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(Fold(doc.Title), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if len(doc.Filters) > 0 {
		m.AddRows(filtersRow(doc))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	m.AddRows(tableHeaderRow(doc.Columns))
	for _, o := range doc.Rows {
		m.AddRows(tableRow(o))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Rows))

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc report.Document) core.Row {
	generated := entity.FormatLocal(doc.GeneratedAt)
	return row.New(16).Add(
		col.New(8).Add(
			text.New(Fold(doc.Title), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New(generated, props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New(Fold(doc.GeneratedBy), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func filtersRow(doc report.Document) core.Row {
	parts := make([]string, 0, len(doc.Filters))
	for _, f := range doc.Filters {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Label, f.Value))
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(Fold(doc.FilterHeader[0]), props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(Fold(strings.Join(parts, "   |   ")), props.Text{Size: 8, Top: 5, Color: colorGray}),
		),
	)
}

func tableHeaderRow(c report.Columns) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(Fold(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h(c.ProductID, 2, align.Left),
		h(c.Name, 3, align.Left),
		h(c.Type, 1, align.Center),
		h(c.Quantity, 1, align.Right),
		h(c.Date, 2, align.Center),
		h(c.Employee, 3, align.Left),
	)
}

func tableRow(o entity.Order) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(Fold(s), props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(o.ProductID.String(), 2, align.Left),
		cell(o.ProductName, 3, align.Left),
		cell(o.Type, 1, align.Center),
		cell(fmt.Sprintf("%d", o.Quantity), 1, align.Right),
		cell(o.Timestamp, 2, align.Center),
		cell(o.EmployeeName, 3, align.Left),
	)
}

func totalsRow(rows []entity.Order) core.Row {
	var added, exported int
	for _, o := range rows {
		switch o.Type {
		case entity.OrderTypeAdd:
			added += o.Quantity
		case entity.OrderTypeExport:
			exported += o.Quantity
		}
	}
	summary := fmt.Sprintf("%s: %d   |   %s: %d", entity.OrderTypeAdd, added, entity.OrderTypeExport, exported)
	return row.New(8).Add(
		col.New(12).Add(text.New(summary, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2})),
	)
}

// ── Texto ─────────────────────────────────────────────────────────────────────

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold quita diacríticos: las fuentes estándar del PDF no traen glifos vietnamitas.
func Fold(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
