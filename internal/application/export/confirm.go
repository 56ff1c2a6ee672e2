package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// Nombres de los pasos del commit de salida (diario y PartialCommitError).
const (
	StepOrderID      = "order_id"
	StepSaveOrder    = "save_order"
	StepEmployee     = "employee_lookup"
	StepLedgerHeader = "ledger_header"
	StepLedgerLine   = "ledger_line"
	StepERPQuantity  = "erp_quantity"
	StepNotify       = "notify"
	StepActivity     = "activity_log"
)

// KindExport tipo de corrida en el diario.
const KindExport = "export"

// ConfirmResult resultado de una salida confirmada.
type ConfirmResult struct {
	RunID     string
	OrderID   string
	Order     *entity.Order
	EmailSent bool
}

// Confirm toma el borrador de forma atómica y ejecuta el commit:
// order id, orden local, departamento del empleado, asiento principal, línea del asiento,
// descuento opcional en el ERP, correo (mejor esfuerzo) y diario de actividad.
func (w *Workflow) Confirm(ctx context.Context, id entity.Identity, draftID string) (*ConfirmResult, error) {
	if err := w.Sessions.CheckActive(id); err != nil {
		return nil, err
	}
	d, err := w.claim(ctx, id, draftID)
	if err != nil {
		return nil, err
	}
	p := *d.Preview

	d.State = entity.ExportCommitting
	w.transition(d)

	run := &entity.CommitRun{
		RunID:     w.NewID(),
		Kind:      KindExport,
		DraftID:   d.ID,
		Username:  id.Username,
		ProductID: p.ProductID.String(),
		Quantity:  decimal.NewFromInt(int64(p.Quantity)),
		StartedAt: w.Now(),
	}
	res := &ConfirmResult{RunID: run.RunID}

	var (
		saved  *entity.Order
		deptID entity.ID
		ts     = entity.FormatLocal(w.Now())
	)

	steps := []saga.Step{
		{
			Name: StepOrderID,
			Do: func(ctx context.Context) error {
				oid, err := w.OrderIDs.Next(ctx)
				if err != nil {
					return err
				}
				run.OrderID = oid
				res.OrderID = oid
				return nil
			},
		},
		{
			Name:     StepSaveOrder,
			Mutating: true,
			Do: func(ctx context.Context) error {
				o, err := w.Orders.SaveOrder(ctx, id.Token, p.Order(run.OrderID))
				if err != nil {
					return err
				}
				saved = o
				return nil
			},
			Undo: func(ctx context.Context) error {
				if saved == nil || saved.ID.Empty() {
					return fmt.Errorf("orden guardada sin id")
				}
				return w.Orders.DeleteOrder(ctx, id.Token, saved.ID.String())
			},
		},
		{
			Name: StepEmployee,
			Do: func(ctx context.Context) error {
				emp, err := w.Ledger.Employee(ctx, p.EmployeeID)
				if err != nil {
					return err
				}
				if emp == nil || emp.DeptID.Empty() {
					return fmt.Errorf("empleado %s sin departamento: %w", p.EmployeeID, domain.ErrNotFound)
				}
				deptID = emp.DeptID
				return nil
			},
		},
		{
			Name:     StepLedgerHeader,
			Mutating: true,
			Do: func(ctx context.Context) error {
				return w.Ledger.InsertHeader(ctx, entity.LedgerHeader{
					OrderID:    run.OrderID,
					DeptID:     deptID,
					EmployeeID: p.EmployeeID,
					Time:       ts,
				})
			},
		},
		{
			Name:     StepLedgerLine,
			Mutating: true,
			Do: func(ctx context.Context) error {
				return w.Ledger.InsertLine(ctx, entity.LedgerLine{
					OrderID:   run.OrderID,
					ProductID: p.ProductID,
					Quantity:  p.Quantity,
					Unit:      p.Unit,
					Time:      ts,
				})
			},
		},
		{
			Name:     StepERPQuantity,
			Mutating: true,
			Skip:     !w.cfg.UpdateERPQuantity,
			Do: func(ctx context.Context) error {
				return w.ERP.SubtractQuantity(ctx, p.ProductID.String(), p.Quantity)
			},
			Undo: func(ctx context.Context) error {
				return w.ERP.AddQuantity(ctx, p.ProductID.String(), p.Quantity)
			},
		},
		{
			Name:       StepNotify,
			BestEffort: true,
			Skip:       w.Notifier == nil,
			Do: func(ctx context.Context) error {
				err := w.Notifier.NotifyExport(ctx, entity.ExportNotification{
					ERPOrderID:   run.OrderID,
					ProductID:    p.ProductID.String(),
					ProductName:  p.ProductName,
					Quantity:     p.Quantity,
					Time:         ts,
					EmployeeID:   p.EmployeeID,
					EmployeeName: p.EmployeeName,
				})
				res.EmailSent = err == nil
				return err
			},
		},
		{
			Name:       StepActivity,
			BestEffort: true,
			Skip:       w.Activity == nil,
			Do: func(context.Context) error {
				w.Activity.Log(id, w.Messages.TDefault(i18n.ActionExport, p.ProductID.String(), p.Quantity))
				return nil
			},
		},
	}

	err = w.Runner.Run(ctx, run, steps)
	if err != nil {
		d.State = entity.ExportCancelled
		w.transition(d)
		w.Log.Warn().Err(err).Str("run_id", run.RunID).Str("draft_id", d.ID).Msg("salida no confirmada")
		return nil, err
	}

	d.State = entity.ExportDone
	w.transition(d)
	res.Order = saved
	w.Log.Info().
		Str("run_id", run.RunID).
		Str("order_id", run.OrderID).
		Str("product_id", p.ProductID.String()).
		Int("quantity", p.Quantity).
		Str("employee_id", p.EmployeeID).
		Msg("salida confirmada")
	return res, nil
}

// claim toma el borrador en Previewing con su vista previa.
func (w *Workflow) claim(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error) {
	d, err := w.take(ctx, id, draftID, entity.ExportPreviewing)
	if err != nil {
		return nil, err
	}
	if d.Preview == nil {
		w.restore(ctx, d)
		return nil, domain.ErrNoActiveOrder
	}
	return d, nil
}

// take saca el borrador del almacén si es del operador, no venció y está en uno de states;
// en cualquier otro caso lo devuelve al almacén.
func (w *Workflow) take(ctx context.Context, id entity.Identity, draftID string, states ...entity.ExportState) (*entity.ExportDraft, error) {
	d, err := w.Drafts.Take(ctx, draftID)
	if err != nil {
		return nil, err
	}
	switch {
	case d.Owner != id.Username:
		w.restore(ctx, d)
		return nil, domain.ErrNoActiveOrder
	case d.Expired(w.Now()):
		d.State = entity.ExportExpired
		w.transition(d)
		return nil, domain.ErrPreviewExpired
	}
	for _, st := range states {
		if d.State == st {
			return d, nil
		}
	}
	w.restore(ctx, d)
	return nil, domain.ErrNoActiveOrder
}

func (w *Workflow) restore(ctx context.Context, d *entity.ExportDraft) {
	ttl := w.cfg.IdleTTL
	if d.State == entity.ExportPreviewing {
		ttl = d.ExpiresAt.Sub(w.Now())
	}
	if ttl <= 0 {
		return
	}
	if err := w.Drafts.Save(ctx, d, ttl); err != nil {
		w.Log.Warn().Err(err).Str("draft_id", d.ID).Msg("no se pudo devolver el borrador")
	}
}
