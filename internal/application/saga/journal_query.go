package saga

import (
	"context"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

// Límites de la consulta de corridas recientes.
const (
	DefaultRecentRuns = 50
	MaxRecentRuns     = 200
)

// JournalQuery lectura del diario de corridas. Admin y Warehouse_Manager ven todas;
// el resto solo las propias (el runId de una respuesta 502 se puede consultar después).
type JournalQuery struct {
	journal repository.CommitJournalRepository
}

// NewJournalQuery construye la consulta sobre el mismo diario que usa el Runner.
func NewJournalQuery(journal repository.CommitJournalRepository) *JournalQuery {
	return &JournalQuery{journal: journal}
}

// Get corrida por id; una corrida ajena cuenta como inexistente.
func (q *JournalQuery) Get(ctx context.Context, id entity.Identity, runID string) (*entity.CommitRun, error) {
	run, err := q.journal.GetByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !id.CanManageProducts() && run.Username != id.Username {
		return nil, domain.ErrNotFound
	}
	return run, nil
}

// Recent corridas más recientes primero; limit fuera de rango = 50, tope 200.
func (q *JournalQuery) Recent(ctx context.Context, id entity.Identity, limit int) ([]*entity.CommitRun, error) {
	if limit <= 0 {
		limit = DefaultRecentRuns
	}
	if limit > MaxRecentRuns {
		limit = MaxRecentRuns
	}
	if id.CanManageProducts() {
		return q.journal.ListRecent(ctx, limit)
	}
	runs, err := q.journal.ListRecent(ctx, MaxRecentRuns)
	if err != nil {
		return nil, err
	}
	own := make([]*entity.CommitRun, 0, limit)
	for _, run := range runs {
		if run.Username != id.Username {
			continue
		}
		own = append(own, run)
		if len(own) == limit {
			break
		}
	}
	return own, nil
}
