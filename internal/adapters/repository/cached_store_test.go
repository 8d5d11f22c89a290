package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testID = "0b7c2c1e-7f55-4a5b-8d0e-9b7f0e5f8a11"

var testEntry = &domain.QuoteEntry{
	ID:        testID,
	Quote:     "It always seems impossible until it's done.",
	Author:    "Nelson Mandela",
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

func newCachedStore(t *testing.T) (*CachedStore, *mocks.MockQuoteStore, *mocks.MockCache) {
	t.Helper()

	inner := mocks.NewMockQuoteStore(t)
	cache := mocks.NewMockCache(t)

	return NewCachedStore(CachedStoreConfig{
		Store:     inner,
		Cache:     cache,
		KeyPrefix: "quote:",
		TTL:       time.Hour,
		Logger:    discardLogger(),
	}), inner, cache
}

func TestCachedStore_MissFillsCache(t *testing.T) {
	store, inner, cache := newCachedStore(t)

	cache.EXPECT().Get(mock.Anything, "quote:"+testID).Return(nil, domain.NewNotFoundError("cache key", testID))
	inner.EXPECT().GetByID(mock.Anything, testID).Return(testEntry, nil)
	cache.EXPECT().Set(mock.Anything, "quote:"+testID, mock.Anything, 3600).Return(nil)

	got, err := store.GetByID(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}

func TestCachedStore_KeyUsesCanonicalID(t *testing.T) {
	store, _, _ := newCachedStore(t)

	assert.Equal(t, "quote:"+testID, store.key("urn:uuid:"+testID))
	assert.Equal(t, "quote:"+testID, store.key("{0B7C2C1E-7F55-4A5B-8D0E-9B7F0E5F8A11}"))
	assert.Equal(t, "quote:not-a-uuid", store.key("not-a-uuid"))
}

func TestCachedStore_HitSkipsInnerStore(t *testing.T) {
	store, _, cache := newCachedStore(t)

	stored, err := json.Marshal(cachedEntry{
		ID:        testEntry.ID,
		Quote:     testEntry.Quote,
		Author:    testEntry.Author,
		CreatedAt: testEntry.CreatedAt,
	})
	require.NoError(t, err)

	cache.EXPECT().Get(mock.Anything, "quote:"+testID).Return(stored, nil)

	got, err := store.GetByID(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}

func TestCachedStore_CacheErrorsAreBypassed(t *testing.T) {
	store, inner, cache := newCachedStore(t)

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("redis: connection refused"))
	inner.EXPECT().GetByID(mock.Anything, testID).Return(testEntry, nil)
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis: connection refused"))

	got, err := store.GetByID(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}

func TestCachedStore_CorruptEntryFallsThrough(t *testing.T) {
	store, inner, cache := newCachedStore(t)

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return([]byte("{not json"), nil)
	inner.EXPECT().GetByID(mock.Anything, testID).Return(testEntry, nil)
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	got, err := store.GetByID(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}

func TestCachedStore_NotFoundIsNotCached(t *testing.T) {
	store, inner, cache := newCachedStore(t)

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("cache key", "x"))
	inner.EXPECT().GetByID(mock.Anything, "missing").Return(nil, domain.NewNotFoundError("quote", "missing"))

	_, err := store.GetByID(context.Background(), "missing")

	assert.True(t, domain.IsNotFound(err))
}

func TestCachedStore_CreateWritesThrough(t *testing.T) {
	store, inner, _ := newCachedStore(t)
	draft := domain.QuoteDraft{Quote: testEntry.Quote, Author: testEntry.Author}

	inner.EXPECT().Create(mock.Anything, draft).Return(testEntry, nil)

	got, err := store.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}
