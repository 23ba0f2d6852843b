package consent

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store persists consent records. Put must be atomic per user: a
// concurrent reader sees either the previous record or the new one,
// never a partial write.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*Record, error)
	Put(ctx context.Context, rec *Record) error
}

// MemoryStore keeps records in-process. Used in tests and as the
// fallback when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStore) Get(_ context.Context, userID uuid.UUID) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = *rec
	return nil
}
