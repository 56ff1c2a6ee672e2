// Package export flujo de salida de stock: verificación del producto, vista previa con
// cuenta regresiva y commit de varios pasos contra la API de bodega y el ERP.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// Valores por defecto.
const (
	DefaultPreviewTTL = 300 * time.Second
	DefaultIdleTTL    = 30 * time.Minute // borrador verificado sin vista previa
)

// Config parámetros del flujo.
type Config struct {
	PreviewTTL        time.Duration
	IdleTTL           time.Duration
	UpdateERPQuantity bool
}

// Deps colaboradores del flujo.
type Deps struct {
	Sessions SessionChecker
	Products ProductLookup
	Drafts   repository.DraftStore
	Orders   repository.OrderGateway
	Ledger   repository.LedgerGateway
	ERP      repository.InventoryGateway
	OrderIDs *OrderIDGenerator
	Runner   *saga.Runner
	Notifier Notifier
	Activity ActivityRecorder
	Messages *i18n.Translator
	Metrics  Metrics
	Log      zerolog.Logger
	Now      func() time.Time
	NewID    func() string
}

// Workflow casos de uso del flujo de salida.
type Workflow struct {
	Deps
	cfg Config
}

// NewWorkflow Now nil = time.Now; NewID nil = uuid v4.
func NewWorkflow(d Deps, cfg Config) *Workflow {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = func() string { return uuid.NewString() }
	}
	if d.Messages == nil {
		d.Messages = i18n.New("vi")
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = DefaultPreviewTTL
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	return &Workflow{Deps: d, cfg: cfg}
}

// PreviewTTL duración de la cuenta regresiva.
func (w *Workflow) PreviewTTL() time.Duration { return w.cfg.PreviewTTL }

// Check verifica el producto en el ERP y abre un borrador con el producto fijo.
func (w *Workflow) Check(ctx context.Context, id entity.Identity, productID string) (*entity.ExportDraft, error) {
	if err := w.Sessions.CheckActive(id); err != nil {
		return nil, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("id de producto vacío: %w", domain.ErrInvalidInput)
	}
	item, err := w.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := w.Now()
	d := &entity.ExportDraft{
		ID:        w.NewID(),
		Owner:     id.Username,
		State:     entity.ExportProductChecked,
		Product:   *item,
		CreatedAt: now,
	}
	if err := w.Drafts.Save(ctx, d, w.cfg.IdleTTL); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	w.transition(d)
	return d, nil
}

// Preview arma la vista previa e inicia la cuenta regresiva. Las validaciones de cantidad
// usan la foto del producto tomada en Check; no hay llamadas de red antes de aceptarla.
// El borrador se toma del almacén mientras se arma: un Confirm simultáneo no lo encuentra
// y un borrador ya confirmado no vuelve a guardarse.
func (w *Workflow) Preview(ctx context.Context, id entity.Identity, draftID string, qty int) (*entity.ExportDraft, error) {
	if err := w.Sessions.CheckActive(id); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", qty, domain.ErrInvalidInput)
	}
	d, err := w.take(ctx, id, draftID, entity.ExportProductChecked, entity.ExportPreviewing)
	if err != nil {
		return nil, err
	}
	if qty > d.Product.QtyAvailable {
		w.restore(ctx, d)
		return nil, fmt.Errorf("solicitado %d, disponible %d: %w", qty, d.Product.QtyAvailable, domain.ErrInsufficientStock)
	}

	now := w.Now()
	d.State = entity.ExportPreviewing
	d.ExpiresAt = now.Add(w.cfg.PreviewTTL)
	d.Preview = &entity.ExportPreview{
		EmployeeName:         id.FullName,
		EmployeeID:           id.Username,
		Role:                 id.Role,
		ProductID:            d.Product.ProductID,
		ProductName:          d.Product.ProductName,
		Unit:                 d.Product.Unit,
		Quantity:             qty,
		Available:            d.Product.QtyAvailable,
		RemainingAfterExport: d.Product.QtyAvailable - qty,
		Timestamp:            now,
	}
	if err := w.Drafts.Save(ctx, d, w.cfg.PreviewTTL); err != nil {
		return nil, fmt.Errorf("guardar vista previa: %w", err)
	}
	w.transition(d)
	return d, nil
}

// Get estado actual del borrador. Una vista previa vencida se descarta.
func (w *Workflow) Get(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error) {
	if err := w.Sessions.CheckActive(id); err != nil {
		return nil, err
	}
	return w.load(ctx, id, draftID)
}

// Cancel descarta el borrador.
func (w *Workflow) Cancel(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error) {
	d, err := w.load(ctx, id, draftID)
	if err != nil {
		return nil, err
	}
	if err := w.Drafts.Delete(ctx, draftID); err != nil {
		return nil, fmt.Errorf("descartar borrador: %w", err)
	}
	d.State = entity.ExportCancelled
	d.ExpiresAt = time.Time{}
	w.transition(d)
	return d, nil
}

// load lee el borrador del dueño; vencido = se borra y ErrPreviewExpired.
func (w *Workflow) load(ctx context.Context, id entity.Identity, draftID string) (*entity.ExportDraft, error) {
	d, err := w.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.Owner != id.Username {
		return nil, domain.ErrNoActiveOrder
	}
	if d.Expired(w.Now()) {
		w.expire(ctx, d)
		return nil, domain.ErrPreviewExpired
	}
	return d, nil
}

func (w *Workflow) expire(ctx context.Context, d *entity.ExportDraft) {
	if err := w.Drafts.Delete(ctx, d.ID); err != nil && !errors.Is(err, domain.ErrNoActiveOrder) {
		w.Log.Warn().Err(err).Str("draft_id", d.ID).Msg("no se pudo borrar borrador vencido")
	}
	d.State = entity.ExportExpired
	w.transition(d)
}

func (w *Workflow) transition(d *entity.ExportDraft) {
	if w.Metrics != nil {
		w.Metrics.DraftTransition(string(d.State))
	}
	w.Log.Debug().Str("draft_id", d.ID).Str("owner", d.Owner).Str("state", string(d.State)).Msg("borrador de salida")
}
