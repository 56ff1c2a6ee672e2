package saga

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/memstore"
)

func seedJournal(t *testing.T) *memstore.CommitJournal {
	t.Helper()
	journal := memstore.NewCommitJournal()
	base := time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC)
	for i, user := range []string{"NV001", "NV002", "NV001", "NV002"} {
		run := &entity.CommitRun{
			RunID:     fmt.Sprintf("r%d", i+1),
			Kind:      "export",
			Username:  user,
			Outcome:   entity.OutcomeSucceeded,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, journal.Begin(context.Background(), run))
	}
	return journal
}

func TestJournalQuery_GetPropioYAjeno(t *testing.T) {
	q := NewJournalQuery(seedJournal(t))
	staff := entity.Identity{Username: "NV001", Role: "Staff"}

	run, err := q.Get(context.Background(), staff, "r1")
	require.NoError(t, err)
	assert.Equal(t, "NV001", run.Username)

	_, err = q.Get(context.Background(), staff, "r2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = q.Get(context.Background(), staff, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	admin := entity.Identity{Username: "AD01", Role: entity.RoleAdmin}
	run, err = q.Get(context.Background(), admin, "r2")
	require.NoError(t, err)
	assert.Equal(t, "NV002", run.Username)
}

func TestJournalQuery_RecentFiltraPorOperador(t *testing.T) {
	q := NewJournalQuery(seedJournal(t))

	runs, err := q.Recent(context.Background(), entity.Identity{Username: "NV001", Role: "Staff"}, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r3", runs[0].RunID)
	assert.Equal(t, "r1", runs[1].RunID)

	runs, err = q.Recent(context.Background(), entity.Identity{Username: "M1", Role: entity.RoleWarehouseManager}, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "r4", runs[0].RunID)

	runs, err = q.Recent(context.Background(), entity.Identity{Username: "NV001", Role: "Staff"}, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
