package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

func TestCommitJournal_BeginFinishGet(t *testing.T) {
	j := NewCommitJournal()
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	run := &entity.CommitRun{RunID: "r1", Kind: "export", Quantity: decimal.NewFromInt(5), Outcome: entity.OutcomeRunning, StartedAt: start}
	require.NoError(t, j.Begin(ctx, run))
	assert.ErrorIs(t, j.Begin(ctx, run), domain.ErrInvalidInput)

	run.Record("save_order", entity.StepDone, nil, start)
	run.OrderID = "XK250301000001"
	run.Outcome = entity.OutcomeSucceeded
	end := start.Add(time.Second)
	run.FinishedAt = &end
	require.NoError(t, j.Finish(ctx, run))

	got, err := j.GetByRunID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSucceeded, got.Outcome)
	assert.Equal(t, "XK250301000001", got.OrderID)
	require.Len(t, got.Steps, 1)

	_, err = j.GetByRunID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommitJournal_ListRecentOrdenado(t *testing.T) {
	j := NewCommitJournal()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, j.Begin(ctx, &entity.CommitRun{RunID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	runs, err := j.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].RunID)
	assert.Equal(t, "b", runs[1].RunID)
}
