package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// CachedStore wraps a QuoteStore with a read-through cache for GetByID.
// Cache failures are logged and otherwise ignored.
type CachedStore struct {
	inner  ports.QuoteStore
	cache  ports.Cache
	prefix string
	ttl    int
	logger *slog.Logger
}

var _ ports.QuoteStore = (*CachedStore)(nil)

// CachedStoreConfig configures a CachedStore.
type CachedStoreConfig struct {
	Store     ports.QuoteStore
	Cache     ports.Cache
	KeyPrefix string
	TTL       time.Duration
	Logger    *slog.Logger
}

// cachedEntry is the cached JSON form of a QuoteEntry.
type cachedEntry struct {
	ID        string    `json:"id"`
	Quote     string    `json:"quote"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCachedStore wraps cfg.Store.
func NewCachedStore(cfg CachedStoreConfig) *CachedStore {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedStore{
		inner:  cfg.Store,
		cache:  cfg.Cache,
		prefix: cfg.KeyPrefix,
		ttl:    int(cfg.TTL / time.Second),
		logger: logger,
	}
}

// Create writes through to the wrapped store.
func (s *CachedStore) Create(ctx context.Context, draft domain.QuoteDraft) (*domain.QuoteEntry, error) {
	return s.inner.Create(ctx, draft)
}

// GetByID serves from the cache when possible and fills it on a miss.
// Misses in the wrapped store are not cached.
func (s *CachedStore) GetByID(ctx context.Context, id string) (*domain.QuoteEntry, error) {
	key := s.key(id)

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached cachedEntry
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &domain.QuoteEntry{
				ID:        cached.ID,
				Quote:     cached.Quote,
				Author:    cached.Author,
				CreatedAt: cached.CreatedAt,
			}, nil
		}

		s.logger.WarnContext(ctx, "discarding unreadable cache entry", slog.String("key", key))
	case !domain.IsNotFound(err):
		s.logger.WarnContext(ctx, "entry cache read failed", slog.Any("error", err))
	}

	entry, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.fill(ctx, key, entry)

	return entry, nil
}

func (s *CachedStore) fill(ctx context.Context, key string, entry *domain.QuoteEntry) {
	raw, err := json.Marshal(cachedEntry{
		ID:        entry.ID,
		Quote:     entry.Quote,
		Author:    entry.Author,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return
	}

	err = s.cache.Set(ctx, key, raw, s.ttl)
	if err != nil {
		s.logger.WarnContext(ctx, "entry cache write failed", slog.Any("error", err))
	}
}

// key shares one cache slot between every spelling of the same UUID.
func (s *CachedStore) key(id string) string {
	if canonical, ok := canonicalID(id); ok {
		return s.prefix + canonical
	}

	return s.prefix + id
}
