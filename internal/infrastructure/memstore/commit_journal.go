// Package memstore implementaciones en memoria para ejecutar sin PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

var _ repository.CommitJournalRepository = (*CommitJournal)(nil)

// maxRuns corridas retenidas; las más viejas se descartan.
const maxRuns = 1000

// CommitJournal diario de commits en memoria.
type CommitJournal struct {
	mu   sync.RWMutex
	runs map[string]*entity.CommitRun
}

func NewCommitJournal() *CommitJournal {
	return &CommitJournal{runs: make(map[string]*entity.CommitRun)}
}

func (j *CommitJournal) Begin(_ context.Context, run *entity.CommitRun) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.runs[run.RunID]; ok {
		return domain.ErrInvalidInput
	}
	j.runs[run.RunID] = cloneRun(run)
	j.trimLocked()
	return nil
}

func (j *CommitJournal) Finish(_ context.Context, run *entity.CommitRun) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.runs[run.RunID]; !ok {
		return domain.ErrNotFound
	}
	j.runs[run.RunID] = cloneRun(run)
	return nil
}

func (j *CommitJournal) GetByRunID(_ context.Context, runID string) (*entity.CommitRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	run, ok := j.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRun(run), nil
}

func (j *CommitJournal) ListRecent(_ context.Context, limit int) ([]*entity.CommitRun, error) {
	if limit <= 0 {
		limit = 50
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]*entity.CommitRun, 0, len(j.runs))
	for _, run := range j.runs {
		out = append(out, cloneRun(run))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartedAt.After(out[b].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (j *CommitJournal) trimLocked() {
	if len(j.runs) <= maxRuns {
		return
	}
	var oldest *entity.CommitRun
	for _, run := range j.runs {
		if oldest == nil || run.StartedAt.Before(oldest.StartedAt) {
			oldest = run
		}
	}
	delete(j.runs, oldest.RunID)
}

func cloneRun(run *entity.CommitRun) *entity.CommitRun {
	c := *run
	c.Steps = append([]entity.CommitStep(nil), run.Steps...)
	if run.FinishedAt != nil {
		t := *run.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}
