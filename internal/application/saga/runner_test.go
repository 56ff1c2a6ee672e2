package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/memstore"
)

type countingRecorder struct{ outcomes []string }

func (c *countingRecorder) CommitFinished(kind, outcome string) {
	c.outcomes = append(c.outcomes, kind+":"+outcome)
}

func ok(calls *[]string, name string) func(context.Context) error {
	return func(context.Context) error {
		*calls = append(*calls, name)
		return nil
	}
}

func TestRun_TodoBien(t *testing.T) {
	journal := memstore.NewCommitJournal()
	rec := &countingRecorder{}
	r := NewRunner(journal, rec, zerolog.Nop(), Options{Compensate: true}, nil)

	var calls []string
	run := &entity.CommitRun{RunID: "r1", Kind: "export"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "a", Do: ok(&calls, "a"), Mutating: true},
		{Name: "b", Skip: true},
		{Name: "c", Do: func(context.Context) error { return errors.New("smtp") }, BestEffort: true},
		{Name: "d", Do: ok(&calls, "d")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, calls)
	assert.Equal(t, entity.OutcomeSucceeded, run.Outcome)
	assert.Equal(t, entity.StepSkipped, run.Steps[1].Status)
	assert.Equal(t, entity.StepFailed, run.Steps[2].Status)
	assert.Equal(t, []string{"export:succeeded"}, rec.outcomes)

	stored, err := journal.GetByRunID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSucceeded, stored.Outcome)
	assert.NotNil(t, stored.FinishedAt)
}

func TestRun_FalloSinMutacionesDevuelveCausa(t *testing.T) {
	r := NewRunner(memstore.NewCommitJournal(), nil, zerolog.Nop(), Options{Compensate: true}, nil)
	cause := errors.New("erp caído")

	run := &entity.CommitRun{RunID: "r2", Kind: "export"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "lookup", Do: func(context.Context) error { return cause }},
	})
	assert.ErrorIs(t, err, cause)
	_, partial := IsPartial(err)
	assert.False(t, partial)
	assert.Equal(t, entity.OutcomeFailed, run.Outcome)
}

func TestRun_CompensaEnOrdenInverso(t *testing.T) {
	r := NewRunner(memstore.NewCommitJournal(), nil, zerolog.Nop(), Options{Compensate: true}, nil)

	var undone []string
	undo := func(name string) func(context.Context) error {
		return func(context.Context) error {
			undone = append(undone, name)
			return nil
		}
	}
	var calls []string
	run := &entity.CommitRun{RunID: "r3", Kind: "export", OrderID: "XK1"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "save", Do: ok(&calls, "save"), Undo: undo("save"), Mutating: true},
		{Name: "header", Do: ok(&calls, "header"), Mutating: true},
		{Name: "qty", Do: ok(&calls, "qty"), Undo: undo("qty"), Mutating: true},
		{Name: "line", Do: func(context.Context) error { return errors.New("insert-inb 500") }, Mutating: true},
	})

	perr, partial := IsPartial(err)
	require.True(t, partial)
	assert.Equal(t, []string{"qty", "save"}, undone)
	assert.Equal(t, "line", perr.FailedStep)
	assert.Equal(t, "XK1", perr.OrderID)
	assert.Equal(t, []string{"save", "header", "qty"}, perr.Completed)
	assert.Equal(t, []string{"qty", "save"}, perr.Compensated)
	assert.Equal(t, []string{"header"}, perr.Uncompensated)
	assert.False(t, perr.Consistent())
	assert.Equal(t, entity.OutcomePartial, run.Outcome)
}

func TestRun_SinCompensacionDejaTodoAplicado(t *testing.T) {
	r := NewRunner(memstore.NewCommitJournal(), nil, zerolog.Nop(), Options{Compensate: false}, nil)
	undoCalled := false

	run := &entity.CommitRun{RunID: "r4", Kind: "export"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "save", Do: func(context.Context) error { return nil }, Undo: func(context.Context) error {
			undoCalled = true
			return nil
		}, Mutating: true},
		{Name: "line", Do: func(context.Context) error { return errors.New("boom") }},
	})

	perr, partial := IsPartial(err)
	require.True(t, partial)
	assert.False(t, undoCalled)
	assert.Equal(t, []string{"save"}, perr.Uncompensated)
	assert.Empty(t, perr.Compensated)
}

func TestRun_CompensacionTotalEsConsistente(t *testing.T) {
	r := NewRunner(memstore.NewCommitJournal(), nil, zerolog.Nop(), Options{Compensate: true}, nil)

	run := &entity.CommitRun{RunID: "r5", Kind: "undo"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "delete", Do: func(context.Context) error { return nil }, Undo: func(context.Context) error { return nil }, Mutating: true},
		{Name: "qty", Do: func(context.Context) error { return errors.New("409") }, Mutating: true},
	})

	perr, partial := IsPartial(err)
	require.True(t, partial)
	assert.True(t, perr.Consistent())
	assert.Equal(t, entity.OutcomeCompensated, run.Outcome)
	assert.Equal(t, entity.StepCompensated, run.Steps[0].Status)
}

func TestRun_CompensacionFallida(t *testing.T) {
	r := NewRunner(memstore.NewCommitJournal(), nil, zerolog.Nop(), Options{Compensate: true}, nil)

	run := &entity.CommitRun{RunID: "r6", Kind: "export"}
	err := r.Run(context.Background(), run, []Step{
		{Name: "save", Do: func(context.Context) error { return nil }, Undo: func(context.Context) error { return errors.New("delete 500") }, Mutating: true},
		{Name: "line", Do: func(context.Context) error { return errors.New("boom") }},
	})

	perr, partial := IsPartial(err)
	require.True(t, partial)
	assert.Equal(t, []string{"save"}, perr.Uncompensated)
	assert.Equal(t, entity.StepCompensationFailed, run.Steps[0].Status)
	assert.Equal(t, entity.OutcomePartial, run.Outcome)
}
