package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.QuoteEntry
	now     func() time.Time
}

var (
	_ ports.QuoteStore    = (*MemoryStore)(nil)
	_ ports.HealthChecker = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.QuoteEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a copy of the draft under a fresh UUID.
func (s *MemoryStore) Create(ctx context.Context, draft domain.QuoteDraft) (*domain.QuoteEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewUnavailableError(storeName, err.Error())
	}

	entry := domain.QuoteEntry{
		ID:        uuid.NewString(),
		Quote:     draft.Quote,
		Author:    draft.Author,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	return &entry, nil
}

// GetByID returns a copy of the stored entry. Any spelling of the UUID finds
// it.
func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.QuoteEntry, error) {
	key, ok := canonicalID(id)
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return &entry, nil
}

// Len reports how many entries are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Name implements ports.HealthChecker.
func (s *MemoryStore) Name() string {
	return storeName
}

// Check implements ports.HealthChecker. Memory is always reachable.
func (s *MemoryStore) Check(context.Context) error {
	return nil
}
