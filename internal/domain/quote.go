// Package domain contains core business entities and rules.
package domain

import "time"

// Length limits for a quote entry, counted in characters (Unicode code points).
const (
	QuoteMinLength  = 10
	QuoteMaxLength  = 280
	AuthorMaxLength = 50
)

// User-facing validation messages. They are surfaced verbatim to the submitter.
const (
	MsgQuoteTooShort  = "Quote must be at least 10 characters long."
	MsgQuoteTooLong   = "Quote must be 280 characters or less."
	MsgAuthorTooLong  = "Author name must be 50 characters or less."
	MsgMissingQuoteID = "Missing quote ID"
)

// Opaque failure messages. The cause is logged server-side only.
const (
	MsgDatabaseError = "Database error: Failed to create quote."
	MsgQuoteNotFound = "Quote not found"
	MsgImageFailed   = "Failed to generate image"
)

// QuoteEntry is a persisted quote and its optional author.
// Entries are created once and never mutated.
type QuoteEntry struct {
	// ID is the opaque identifier assigned by the store at creation.
	ID string

	// Quote is the quote text, between QuoteMinLength and QuoteMaxLength characters.
	Quote string

	// Author is empty when no author was given.
	Author string

	// CreatedAt is when the store persisted the entry.
	CreatedAt time.Time
}

// HasAuthor reports whether the entry carries an author.
func (e *QuoteEntry) HasAuthor() bool {
	return e.Author != ""
}

// Card returns the text fields needed to render the entry as an image.
func (e *QuoteEntry) Card() QuoteCard {
	return QuoteCard{Quote: e.Quote, Author: e.Author}
}

// QuoteDraft is a validated quote/author pair that has not been persisted yet.
type QuoteDraft struct {
	Quote  string
	Author string
}

// QuoteCard holds the text rendered onto a quote image.
type QuoteCard struct {
	Quote  string
	Author string
}

// HasAuthor reports whether an author line should be drawn.
func (c QuoteCard) HasAuthor() bool {
	return c.Author != ""
}

// FontWeight identifies one of the two weights of the card typeface.
type FontWeight int

const (
	// FontWeightRegular is used for the author line.
	FontWeightRegular FontWeight = 400

	// FontWeightBold is used for the quote text.
	FontWeightBold FontWeight = 700
)

// String returns the CSS-style name of the weight.
func (w FontWeight) String() string {
	switch w {
	case FontWeightRegular:
		return "regular"
	case FontWeightBold:
		return "bold"
	default:
		return "unknown"
	}
}
