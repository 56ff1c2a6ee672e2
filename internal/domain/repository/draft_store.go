package repository

import (
	"context"
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// DraftStore guarda borradores de salida con expiración del lado servidor.
// Get y Take devuelven domain.ErrNoActiveOrder si el borrador no existe o expiró.
type DraftStore interface {
	Save(ctx context.Context, d *entity.ExportDraft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.ExportDraft, error)
	// Take lee y borra de forma atómica: Preview y Confirm toman el borrador, nunca dos a la vez.
	Take(ctx context.Context, id string) (*entity.ExportDraft, error)
	Delete(ctx context.Context, id string) error
}
