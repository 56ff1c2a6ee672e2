package export

import (
	"context"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// ProductLookup consulta del producto en el ERP (inventory.QueryUseCase).
type ProductLookup interface {
	GetByID(ctx context.Context, productID string) (*entity.InventoryItem, error)
}

// Notifier correo de salida, mejor esfuerzo.
type Notifier interface {
	NotifyExport(ctx context.Context, n entity.ExportNotification) error
}

// ActivityRecorder diario de actividad sin bloqueo (activity.Logger).
type ActivityRecorder interface {
	Log(id entity.Identity, action string)
}

// SessionChecker revalida la identidad en cada paso (session.Reader).
type SessionChecker interface {
	CheckActive(id entity.Identity) error
}

// Metrics contadores del flujo (infrastructure/metrics).
type Metrics interface {
	CommitFinished(kind, outcome string)
	OrderIDGenerated(attempts int)
	DraftTransition(state string)
}
