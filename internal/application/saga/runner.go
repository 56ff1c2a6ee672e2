// Package saga ejecuta commits de varios pasos contra los backends con compensación
// por paso y diario de corridas.
package saga

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

// Step un paso del commit.
//   - Mutating: el paso cambia estado en un backend; si falla uno posterior, el commit es parcial.
//   - Undo: compensación; nil = el backend no expone cómo revertirlo.
//   - BestEffort: un fallo se registra pero no corta el commit.
//   - Skip: el paso está deshabilitado por configuración.
type Step struct {
	Name       string
	Do         func(ctx context.Context) error
	Undo       func(ctx context.Context) error
	Mutating   bool
	BestEffort bool
	Skip       bool
}

// Recorder métricas de corridas (implementado por infrastructure/metrics).
type Recorder interface {
	CommitFinished(kind, outcome string)
}

// Options comportamiento del runner.
type Options struct {
	Compensate  bool
	UndoTimeout time.Duration // tope de cada compensación (10 s por defecto)
}

// Runner ejecuta pasos en orden estricto.
type Runner struct {
	journal repository.CommitJournalRepository
	metrics Recorder
	log     zerolog.Logger
	opts    Options
	now     func() time.Time
}

// NewRunner metrics y now pueden ser nil.
func NewRunner(journal repository.CommitJournalRepository, metrics Recorder, log zerolog.Logger, opts Options, now func() time.Time) *Runner {
	if now == nil {
		now = time.Now
	}
	if opts.UndoTimeout <= 0 {
		opts.UndoTimeout = 10 * time.Second
	}
	return &Runner{journal: journal, metrics: metrics, log: log, opts: opts, now: now}
}

// Compensates indica si el runner revierte pasos ante un fallo parcial.
func (r *Runner) Compensates() bool { return r.opts.Compensate }

// Run ejecuta steps y deja el resultado en run.Outcome.
// Si falla antes de cualquier mutación devuelve la causa tal cual; si ya hubo mutaciones
// devuelve *domain.PartialCommitError con los pasos aplicados, revertidos y pendientes.
func (r *Runner) Run(ctx context.Context, run *entity.CommitRun, steps []Step) error {
	run.Outcome = entity.OutcomeRunning
	if run.StartedAt.IsZero() {
		run.StartedAt = r.now()
	}
	if err := r.journal.Begin(ctx, run); err != nil {
		r.log.Warn().Err(err).Str("run_id", run.RunID).Msg("diario: no se pudo iniciar la corrida")
	}

	var done []Step
	for _, st := range steps {
		if st.Skip {
			run.Record(st.Name, entity.StepSkipped, nil, r.now())
			continue
		}
		err := st.Do(ctx)
		if err == nil {
			run.Record(st.Name, entity.StepDone, nil, r.now())
			if st.Mutating {
				done = append(done, st)
			}
			continue
		}
		run.Record(st.Name, entity.StepFailed, err, r.now())
		if st.BestEffort {
			r.log.Warn().Err(err).Str("run_id", run.RunID).Str("step", st.Name).Msg("paso opcional falló")
			continue
		}
		return r.fail(ctx, run, st.Name, err, done)
	}

	run.Outcome = entity.OutcomeSucceeded
	r.finish(ctx, run)
	return nil
}

func (r *Runner) fail(ctx context.Context, run *entity.CommitRun, failed string, cause error, done []Step) error {
	if len(done) == 0 {
		run.Outcome = entity.OutcomeFailed
		r.finish(ctx, run)
		return cause
	}

	perr := &domain.PartialCommitError{
		RunID:      run.RunID,
		OrderID:    run.OrderID,
		FailedStep: failed,
		Cause:      cause,
	}
	for _, st := range done {
		perr.Completed = append(perr.Completed, st.Name)
	}

	// compensaciones en orden inverso
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if !r.opts.Compensate || st.Undo == nil {
			perr.Uncompensated = append(perr.Uncompensated, st.Name)
			continue
		}
		uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.UndoTimeout)
		err := st.Undo(uctx)
		cancel()
		if err != nil {
			run.Record(st.Name, entity.StepCompensationFailed, err, r.now())
			perr.Uncompensated = append(perr.Uncompensated, st.Name)
			r.log.Error().Err(err).Str("run_id", run.RunID).Str("step", st.Name).Msg("compensación falló")
			continue
		}
		run.Record(st.Name, entity.StepCompensated, nil, r.now())
		perr.Compensated = append(perr.Compensated, st.Name)
	}

	if perr.Consistent() {
		run.Outcome = entity.OutcomeCompensated
	} else {
		run.Outcome = entity.OutcomePartial
	}
	r.log.Error().Err(cause).
		Str("run_id", run.RunID).
		Str("order_id", run.OrderID).
		Str("failed_step", failed).
		Strs("uncompensated", perr.Uncompensated).
		Msg("commit parcial")
	r.finish(ctx, run)
	return perr
}

func (r *Runner) finish(ctx context.Context, run *entity.CommitRun) {
	at := r.now()
	run.FinishedAt = &at
	if err := r.journal.Finish(context.WithoutCancel(ctx), run); err != nil {
		r.log.Warn().Err(err).Str("run_id", run.RunID).Msg("diario: no se pudo cerrar la corrida")
	}
	if r.metrics != nil {
		r.metrics.CommitFinished(run.Kind, string(run.Outcome))
	}
}

// IsPartial atajo para errors.As sobre *domain.PartialCommitError.
func IsPartial(err error) (*domain.PartialCommitError, bool) {
	var perr *domain.PartialCommitError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
