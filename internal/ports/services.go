// Package ports holds the contracts between the quote service and the
// outside world: where entries live, where fonts come from, how cards are
// drawn and how the instance reports its health.
//
// Every method takes a context first and fails with a domain error, so the
// application layer never sees gorm, redis or net/http types.
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

// QuoteStore persists quote entries and loads them back by identifier.
// Entries are write-once: there is no update or delete operation.
type QuoteStore interface {
	// Create persists a validated draft and returns the stored entry with its new ID.
	// Returns domain.ErrUnavailable when the write fails for any reason.
	Create(ctx context.Context, draft domain.QuoteDraft) (*domain.QuoteEntry, error)

	// GetByID loads an entry.
	// Returns domain.ErrNotFound if no entry has this ID.
	GetByID(ctx context.Context, id string) (*domain.QuoteEntry, error)
}

// FontSource provides the raw bytes of the card typeface.
// Implementations fetch remote font files; the bytes may be WOFF or sfnt.
type FontSource interface {
	// Fetch returns the font file for the given weight.
	// Returns domain.ErrUnavailable if the font host cannot serve it.
	Fetch(ctx context.Context, weight domain.FontWeight) ([]byte, error)
}

// FontSet holds the two font files needed to render a card.
type FontSet struct {
	Regular []byte
	Bold    []byte
}

// ImageRenderer turns a quote card into encoded image bytes.
type ImageRenderer interface {
	// Render produces the encoded image. The same card and fonts always
	// produce the same bytes.
	Render(ctx context.Context, card domain.QuoteCard, fonts FontSet) ([]byte, error)

	// ContentType is the MIME type of the bytes returned by Render.
	ContentType() string
}

// Cache is a byte-oriented key/value cache sitting in front of QuoteStore.
// Entries are immutable, so nothing is ever evicted explicitly; keys expire
// by TTL.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttlSeconds; 0 keeps it until evicted.
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
}
