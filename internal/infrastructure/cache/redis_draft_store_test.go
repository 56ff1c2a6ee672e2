package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
)

func newRedisStore(t *testing.T) (*RedisDraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDraftStoreWithClient(client, ""), mr
}

func previewDraft(id string) *entity.ExportDraft {
	return &entity.ExportDraft{
		ID:      id,
		Owner:   "NV001",
		State:   entity.ExportPreviewing,
		Product: entity.InventoryItem{ProductID: "P1", ProductName: "Ốc vít M6", QtyAvailable: 10},
		Preview: &entity.ExportPreview{ProductID: "P1", Quantity: 3, RemainingAfterExport: 7},
	}
}

func TestRedisDraftStore_GuardaYLeeConTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, previewDraft("d1"), 300*time.Second))
	assert.Equal(t, 300*time.Second, mr.TTL(defaultKeyPrefix+"d1"))

	d, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.ExportPreviewing, d.State)
	assert.Equal(t, "NV001", d.Owner)
	require.NotNil(t, d.Preview)
	assert.Equal(t, 3, d.Preview.Quantity)
	assert.Equal(t, entity.ID("P1"), d.Product.ProductID)
}

func TestRedisDraftStore_ExpiraPorTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, previewDraft("d1"), 300*time.Second))

	mr.FastForward(299 * time.Second)
	_, err := s.Get(ctx, "d1")
	require.NoError(t, err)

	mr.FastForward(time.Second)
	_, err = s.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)
	_, err = s.Take(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)
}

func TestRedisDraftStore_TakeBorraLaClave(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, previewDraft("d1"), time.Minute))

	d, err := s.Take(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)
	assert.False(t, mr.Exists(defaultKeyPrefix+"d1"))

	_, err = s.Take(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)
}

func TestRedisDraftStore_TakeConcurrenteUnSoloGanador(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, previewDraft("d1"), time.Minute))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "d1"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRedisDraftStore_InexistenteYDelete(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNoActiveOrder)

	require.NoError(t, s.Save(ctx, previewDraft("d1"), time.Minute))
	require.NoError(t, s.Delete(ctx, "d1"))
	assert.False(t, mr.Exists(defaultKeyPrefix+"d1"))
	assert.NoError(t, s.Delete(ctx, "d1"))
}

func TestRedisDraftStore_PayloadCorrupto(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set(defaultKeyPrefix+"d1", "{no-es-json"))

	_, err := s.Get(context.Background(), "d1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoActiveOrder)
}

func TestRedisDraftStore_RedisCaido(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "d1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoActiveOrder)
}

func TestNewRedisDraftStore_PingFallido(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisDraftStore(RedisConfig{Addr: addr})
	assert.Error(t, err)
}
