package cache

import (
	"context"
	"sync"
	"time"

	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
)

var _ repository.DraftStore = (*MemoryDraftStore)(nil)

type memoryEntry struct {
	draft     entity.ExportDraft
	expiresAt time.Time
}

// MemoryDraftStore borradores en memoria con la misma semántica de TTL que Redis (una sola instancia).
type MemoryDraftStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryDraftStore now nil = time.Now.
func NewMemoryDraftStore(now func() time.Time) *MemoryDraftStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryDraftStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryDraftStore) Save(_ context.Context, d *entity.ExportDraft, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[d.ID] = memoryEntry{draft: clone(d), expiresAt: s.now().Add(ttl)}
	s.sweepLocked()
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*entity.ExportDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(id)
}

func (s *MemoryDraftStore) Take(_ context.Context, id string) (*entity.ExportDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	delete(s.entries, id)
	return d, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Len borradores vivos.
func (s *MemoryDraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.entries)
}

func (s *MemoryDraftStore) lookupLocked(id string) (*entity.ExportDraft, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNoActiveOrder
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil, domain.ErrNoActiveOrder
	}
	d := clone(&e.draft)
	return &d, nil
}

func clone(d *entity.ExportDraft) entity.ExportDraft {
	c := *d
	if d.Preview != nil {
		p := *d.Preview
		c.Preview = &p
	}
	return c
}

func (s *MemoryDraftStore) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
