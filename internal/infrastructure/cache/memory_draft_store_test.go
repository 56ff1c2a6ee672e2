package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryDraftStore_ExpiraPorTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := NewMemoryDraftStore(clock.Now)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &entity.ExportDraft{ID: "d1", State: entity.ExportPreviewing}, 300*time.Second))

	clock.Advance(299 * time.Second)
	d, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.ExportPreviewing, d.State)

	clock.Advance(time.Second)
	_, err = s.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryDraftStore_TakeEsAtomico(t *testing.T) {
	s := NewMemoryDraftStore(nil)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &entity.ExportDraft{ID: "d1"}, time.Minute))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "d1"); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestMemoryDraftStore_CopiaIndependiente(t *testing.T) {
	s := NewMemoryDraftStore(nil)
	ctx := context.Background()
	d := &entity.ExportDraft{ID: "d1", State: entity.ExportProductChecked}
	require.NoError(t, s.Save(ctx, d, time.Minute))

	d.State = entity.ExportCancelled
	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.ExportProductChecked, got.State)

	require.NoError(t, s.Delete(ctx, "d1"))
	_, err = s.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)
}
