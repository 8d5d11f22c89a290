// Package render draws quote cards as PNG images.
//
// The card is a fixed 1200x630 canvas: a dark background, the quote in the
// bold weight wrapped in curly quotes, and an optional author line in the
// regular weight, all centred. Given the same card and the same font files
// the output is byte-for-byte identical.
package render

import "image/color"

// Card geometry, in pixels.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
	Padding      = 60

	contentWidth  = CanvasWidth - 2*Padding
	contentHeight = CanvasHeight - 2*Padding

	// QuoteMaxWidthRatio is the share of the content width a quote line may use.
	QuoteMaxWidthRatio = 0.9
)

// Typography.
const (
	QuoteFontSize    = 60.0
	MinQuoteFontSize = 28.0
	QuoteSizeStep    = 4.0
	AuthorFontSize   = 40.0
	LineHeight       = 1.2
	AuthorGap        = 40.0
)

// Text decoration.
const (
	OpenQuote    = "“"
	CloseQuote   = "”"
	AuthorPrefix = "— "
)

// Palette.
var (
	BackgroundColor = color.RGBA{R: 0x1a, G: 0x20, B: 0x2c, A: 0xff}
	QuoteColor      = color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	AuthorColor     = color.RGBA{R: 0xa0, G: 0xae, B: 0xc0, A: 0xff}
)
