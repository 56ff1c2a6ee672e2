package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

var _ repository.CommitJournalRepository = (*CommitJournalRepo)(nil)

// CommitJournalRepo diario de corridas del commit sobre PostgreSQL.
type CommitJournalRepo struct {
	q Querier
}

// NewCommitJournalRepository pasar pool o tx.
func NewCommitJournalRepository(q Querier) *CommitJournalRepo {
	return &CommitJournalRepo{q: q}
}

const commitRunColumns = `run_id, kind, draft_id, order_id, username, product_id, quantity, steps, outcome, started_at, finished_at`

const commitRunSelect = `run_id::text, kind, draft_id, order_id, username, product_id, quantity, steps, outcome, started_at, finished_at`

// Begin inserta la corrida en estado running.
func (r *CommitJournalRepo) Begin(ctx context.Context, run *entity.CommitRun) error {
	steps, err := json.Marshal(stepsOrEmpty(run.Steps))
	if err != nil {
		return fmt.Errorf("serializar pasos: %w", err)
	}
	query := `INSERT INTO commit_runs (` + commitRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		run.RunID, run.Kind, run.DraftID, run.OrderID, run.Username, run.ProductID,
		run.Quantity, steps, string(run.Outcome), run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("corrida %s duplicada: %w", run.RunID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert commit run: %w", err)
	}
	return nil
}

// Finish guarda order id, pasos, resultado y fin.
func (r *CommitJournalRepo) Finish(ctx context.Context, run *entity.CommitRun) error {
	steps, err := json.Marshal(stepsOrEmpty(run.Steps))
	if err != nil {
		return fmt.Errorf("serializar pasos: %w", err)
	}
	query := `UPDATE commit_runs SET order_id = $2, steps = $3, outcome = $4, finished_at = $5 WHERE run_id = $1`
	cmd, err := r.q.Exec(ctx, query, run.RunID, run.OrderID, steps, string(run.Outcome), run.FinishedAt)
	if err != nil {
		return fmt.Errorf("update commit run: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CommitJournalRepo) GetByRunID(ctx context.Context, runID string) (*entity.CommitRun, error) {
	query := `SELECT ` + commitRunSelect + ` FROM commit_runs WHERE run_id = $1`
	run, err := scanCommitRun(r.q.QueryRow(ctx, query, runID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get commit run: %w", err)
	}
	return run, nil
}

func (r *CommitJournalRepo) ListRecent(ctx context.Context, limit int) ([]*entity.CommitRun, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + commitRunSelect + ` FROM commit_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list commit runs: %w", err)
	}
	defer rows.Close()

	var out []*entity.CommitRun
	for rows.Next() {
		run, err := scanCommitRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commit run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanCommitRun(row pgx.Row) (*entity.CommitRun, error) {
	var (
		run     entity.CommitRun
		steps   []byte
		outcome string
	)
	err := row.Scan(
		&run.RunID, &run.Kind, &run.DraftID, &run.OrderID, &run.Username, &run.ProductID,
		&run.Quantity, &steps, &outcome, &run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Outcome = entity.CommitOutcome(outcome)
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &run.Steps); err != nil {
			return nil, fmt.Errorf("deserializar pasos: %w", err)
		}
	}
	return &run, nil
}

func stepsOrEmpty(steps []entity.CommitStep) []entity.CommitStep {
	if steps == nil {
		return []entity.CommitStep{}
	}
	return steps
}
