package repository

import (
	"context"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

// CommitJournalRepository persiste las corridas del commit (PostgreSQL o memoria).
type CommitJournalRepository interface {
	Begin(ctx context.Context, run *entity.CommitRun) error
	Finish(ctx context.Context, run *entity.CommitRun) error
	GetByRunID(ctx context.Context, runID string) (*entity.CommitRun, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.CommitRun, error)
}
