// Package report reporte de transacciones: filtros, deshacer dentro de la ventana
// y exportación a Excel y PDF.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/DaTT2001/warehouse-web/internal/application/dto"
	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// RowsPerPage tamaño de página del reporte.
const RowsPerPage = 20

// DefaultUndoWindow antigüedad máxima de una orden para poder deshacerla.
const DefaultUndoWindow = 10 * time.Minute

// Pasos del deshacer.
const (
	KindUndo          = "undo"
	StepDeleteOrder   = "delete_order"
	StepUpdateProduct = "update_product"
	StepUndoActivity  = "activity_log"
)

const dateLayout = "2006-01-02"

// ActivityRecorder diario de actividad sin bloqueo.
type ActivityRecorder interface {
	Log(id entity.Identity, action string)
}

// Deps colaboradores del reporte.
type Deps struct {
	Orders     repository.OrderGateway
	Products   repository.ProductGateway
	Runner     *saga.Runner
	Activity   ActivityRecorder
	Messages   *i18n.Translator
	XLSX       XLSXRenderer
	PDF        PDFRenderer
	UndoWindow time.Duration
	Now        func() time.Time
}

// UseCase casos de uso del reporte.
type UseCase struct {
	Deps
}

// NewUseCase UndoWindow <= 0 = 10 minutos.
func NewUseCase(d Deps) *UseCase {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.UndoWindow <= 0 {
		d.UndoWindow = DefaultUndoWindow
	}
	if d.Messages == nil {
		d.Messages = i18n.New("vi")
	}
	return &UseCase{Deps: d}
}

// filter criterio ya interpretado.
type filter struct {
	q     dto.ReportQuery
	name  string
	start time.Time
	end   time.Time
}

func parseFilter(q dto.ReportQuery) (filter, error) {
	if err := dto.Validate(q); err != nil {
		return filter{}, err
	}
	f := filter{q: q, name: strings.ToLower(strings.TrimSpace(q.Name))}
	if q.StartDate != "" {
		t, err := time.ParseInLocation(dateLayout, q.StartDate, entity.LocalZone)
		if err != nil {
			return filter{}, fmt.Errorf("startDate %q: %w", q.StartDate, domain.ErrInvalidInput)
		}
		f.start = t
	}
	if q.EndDate != "" {
		t, err := time.ParseInLocation(dateLayout, q.EndDate, entity.LocalZone)
		if err != nil {
			return filter{}, fmt.Errorf("endDate %q: %w", q.EndDate, domain.ErrInvalidInput)
		}
		// día inclusivo hasta 23:59:59
		f.end = t.Add(24*time.Hour - time.Second)
	}
	return f, nil
}

func (f filter) match(o entity.Order) bool {
	if f.q.Type != "" && o.Type != f.q.Type {
		return false
	}
	if f.name != "" && !strings.Contains(strings.ToLower(o.ProductName), f.name) {
		return false
	}
	if f.q.ProductID != "" && o.ProductID.String() != strings.TrimSpace(f.q.ProductID) {
		return false
	}
	if f.start.IsZero() && f.end.IsZero() {
		return true
	}
	at, err := o.Time()
	if err != nil {
		return false
	}
	if !f.start.IsZero() && at.Before(f.start) {
		return false
	}
	if !f.end.IsZero() && at.After(f.end) {
		return false
	}
	return true
}

func (uc *UseCase) filtered(ctx context.Context, id entity.Identity, q dto.ReportQuery) ([]entity.Order, error) {
	f, err := parseFilter(q)
	if err != nil {
		return nil, err
	}
	orders, err := uc.Orders.ListOrders(ctx, id.Token)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if f.match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// CanUndo la orden es más reciente que la ventana de deshacer.
func (uc *UseCase) CanUndo(o entity.Order) bool {
	at, err := o.Time()
	if err != nil {
		return false
	}
	return uc.Now().Sub(at) <= uc.UndoWindow
}

// List página filtrada del reporte (20 por página).
func (uc *UseCase) List(ctx context.Context, id entity.Identity, q dto.ReportQuery) (*dto.ReportListResponse, error) {
	orders, err := uc.filtered(ctx, id, q)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ReportRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, dto.ReportRow{Order: o, CanUndo: uc.CanUndo(o)})
	}
	data, meta := dto.Paginate(rows, q.Page, RowsPerPage)
	return &dto.ReportListResponse{Data: data, Pagination: meta}, nil
}

// UndoResult orden revertida y producto con la cantidad corregida.
type UndoResult struct {
	RunID   string         `json:"runId"`
	Order   entity.Order   `json:"order"`
	Product entity.Product `json:"product"`
}

// Undo borra la orden y corrige la cantidad del producto (+q para Export, −q para Add).
// Solo dentro de la ventana de deshacer. Si la corrección falla tras borrar la orden,
// el error es *domain.PartialCommitError.
func (uc *UseCase) Undo(ctx context.Context, id entity.Identity, orderID string) (*UndoResult, error) {
	orders, err := uc.Orders.ListOrders(ctx, id.Token)
	if err != nil {
		return nil, err
	}
	var target *entity.Order
	for i := range orders {
		if orders[i].ID.String() == orderID {
			target = &orders[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	if !uc.CanUndo(*target) {
		return nil, domain.ErrUndoWindowClosed
	}
	delta, err := target.QuantityDelta()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	product, err := uc.Products.GetProduct(ctx, id.Token, target.ProductID.String())
	if err != nil {
		return nil, err
	}

	o := *target
	res := &UndoResult{RunID: uuid.NewString(), Order: o}
	run := &entity.CommitRun{
		RunID:     res.RunID,
		Kind:      KindUndo,
		OrderID:   orderID,
		Username:  id.Username,
		ProductID: o.ProductID.String(),
		Quantity:  decimal.NewFromInt(int64(delta)),
		StartedAt: uc.Now(),
	}
	steps := []saga.Step{
		{
			Name:     StepDeleteOrder,
			Mutating: true,
			Do: func(ctx context.Context) error {
				return uc.Orders.DeleteOrder(ctx, id.Token, orderID)
			},
			Undo: func(ctx context.Context) error {
				restored := o
				restored.ID = ""
				if at, err := o.Time(); err == nil {
					restored.Timestamp = at.UTC().Format(time.RFC3339)
				}
				_, err := uc.Orders.SaveOrder(ctx, id.Token, restored)
				return err
			},
		},
		{
			Name:     StepUpdateProduct,
			Mutating: true,
			Do: func(ctx context.Context) error {
				want := product.Quantity + delta
				updated, err := uc.Products.UpdateProduct(ctx, id.Token, o.ProductID.String(), product.WithQuantity(want))
				if err != nil {
					return err
				}
				if updated == nil {
					p := product.WithQuantity(want)
					updated = &p
				}
				if updated.Quantity != want {
					return fmt.Errorf("cantidad devuelta %d, esperada %d", updated.Quantity, want)
				}
				res.Product = *updated
				return nil
			},
		},
		{
			Name:       StepUndoActivity,
			BestEffort: true,
			Skip:       uc.Activity == nil,
			Do: func(context.Context) error {
				uc.Activity.Log(id, uc.Messages.TDefault(i18n.ActionUndo, orderID))
				return nil
			},
		},
	}
	if err := uc.Runner.Run(ctx, run, steps); err != nil {
		return nil, err
	}
	return res, nil
}

// Document arma el reporte filtrado en el idioma tag.
func (uc *UseCase) Document(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) (Document, error) {
	rows, err := uc.filtered(ctx, id, q)
	if err != nil {
		return Document{}, err
	}
	t := func(key string) string { return uc.Messages.T(tag, key) }
	orAll := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return t(i18n.FilterAll)
		}
		return v
	}
	return Document{
		Title:        t(i18n.ReportTitle),
		DataSheet:    t(i18n.SheetReport),
		FiltersSheet: t(i18n.SheetFilters),
		FilterHeader: [2]string{t(i18n.ColFilter), t(i18n.ColValue)},
		Columns: Columns{
			ProductID: t(i18n.ColProductID),
			Name:      t(i18n.ColName),
			Type:      t(i18n.ColType),
			Quantity:  t(i18n.ColQuantity),
			Date:      t(i18n.ColDate),
			Employee:  t(i18n.ColEmployee),
		},
		Rows: rows,
		Filters: []AppliedFilter{
			{Label: t(i18n.ColType), Value: orAll(q.Type)},
			{Label: t(i18n.ColName), Value: orAll(q.Name)},
			{Label: t(i18n.ColProductID), Value: orAll(q.ProductID)},
			{Label: t(i18n.FilterFrom), Value: orAll(q.StartDate)},
			{Label: t(i18n.FilterTo), Value: orAll(q.EndDate)},
		},
		GeneratedAt: uc.Now(),
		GeneratedBy: id.LogName(),
	}, nil
}

// ExportXLSX libro con hoja de datos y hoja de filtros aplicados.
func (uc *UseCase) ExportXLSX(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) ([]byte, error) {
	doc, err := uc.Document(ctx, id, q, tag)
	if err != nil {
		return nil, err
	}
	return uc.XLSX.RenderXLSX(doc)
}

// ExportPDF reporte imprimible.
func (uc *UseCase) ExportPDF(ctx context.Context, id entity.Identity, q dto.ReportQuery, tag language.Tag) ([]byte, error) {
	doc, err := uc.Document(ctx, id, q, tag)
	if err != nil {
		return nil, err
	}
	return uc.PDF.RenderPDF(doc)
}
