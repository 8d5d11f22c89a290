package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// LineRole tells quote lines from author lines.
type LineRole int

const (
	RoleQuote LineRole = iota
	RoleAuthor
)

// TextLine is one line of text placed on the canvas.
type TextLine struct {
	Role LineRole
	Text string

	// X is the left edge and Baseline the baseline, in pixels.
	X        int
	Baseline int
	Width    int
}

// CardLayout is the composed card: every line of text and where it goes.
// Call Close when done to release the font faces.
type CardLayout struct {
	Width     int
	Height    int
	QuoteSize float64
	Lines     []TextLine

	quoteFace  font.Face
	authorFace font.Face
}

// QuoteLines returns the text of the quote lines in order.
func (l *CardLayout) QuoteLines() []string {
	return l.linesOf(RoleQuote)
}

// AuthorLines returns the text of the author lines; empty without an author.
func (l *CardLayout) AuthorLines() []string {
	return l.linesOf(RoleAuthor)
}

func (l *CardLayout) linesOf(role LineRole) []string {
	var out []string

	for _, line := range l.Lines {
		if line.Role == role {
			out = append(out, line.Text)
		}
	}

	return out
}

// Close releases the font faces.
func (l *CardLayout) Close() error {
	var errs []error

	if l.quoteFace != nil {
		errs = append(errs, l.quoteFace.Close())
	}

	if l.authorFace != nil {
		errs = append(errs, l.authorFace.Close())
	}

	return errors.Join(errs...)
}

func (l *CardLayout) face(role LineRole) font.Face {
	if role == RoleAuthor {
		return l.authorFace
	}

	return l.quoteFace
}

// Layout composes the card text.
//
// The quote is set in the bold weight and wrapped greedily at spaces to 90% of
// the content width; words wider than that are broken between characters.
// When the quote and author do not fit the content box the quote size steps
// down until they do or the minimum size is reached.
func Layout(card domain.QuoteCard, fonts ports.FontSet) (*CardLayout, error) {
	bold, err := parseFont(fonts.Bold)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}

	regular, err := parseFont(fonts.Regular)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}

	maxWidth := int(math.Floor(contentWidth * QuoteMaxWidthRatio))

	layout := &CardLayout{Width: CanvasWidth, Height: CanvasHeight}

	var authorLines []string

	if card.HasAuthor() {
		layout.authorFace, err = newFace(regular, AuthorFontSize)
		if err != nil {
			return nil, fmt.Errorf("author face: %w", err)
		}

		authorLines = wrapText(layout.authorFace, AuthorPrefix+card.Author, maxWidth)
	}

	quoteText := OpenQuote + card.Quote + CloseQuote

	var quoteLines []string

	for size := QuoteFontSize; ; size -= QuoteSizeStep {
		face, err := newFace(bold, size)
		if err != nil {
			_ = layout.Close()

			return nil, fmt.Errorf("quote face: %w", err)
		}

		quoteLines = wrapText(face, quoteText, maxWidth)

		if blockHeight(len(quoteLines), size, len(authorLines)) <= contentHeight || size-QuoteSizeStep < MinQuoteFontSize {
			layout.quoteFace = face
			layout.QuoteSize = size

			break
		}

		_ = face.Close()
	}

	layout.place(quoteLines, authorLines)

	return layout, nil
}

func blockHeight(quoteLines int, quoteSize float64, authorLines int) float64 {
	h := float64(quoteLines) * quoteSize * LineHeight
	if authorLines > 0 {
		h += AuthorGap + float64(authorLines)*AuthorFontSize*LineHeight
	}

	return h
}

// place positions every line: centred horizontally in the content box, the
// whole block centred vertically, each line centred in its line box.
func (l *CardLayout) place(quoteLines, authorLines []string) {
	top := Padding + (contentHeight-blockHeight(len(quoteLines), l.QuoteSize, len(authorLines)))/2

	y := top
	for _, text := range quoteLines {
		l.Lines = append(l.Lines, placeLine(l.quoteFace, RoleQuote, text, y, l.QuoteSize*LineHeight))
		y += l.QuoteSize * LineHeight
	}

	if len(authorLines) == 0 {
		return
	}

	y += AuthorGap
	for _, text := range authorLines {
		l.Lines = append(l.Lines, placeLine(l.authorFace, RoleAuthor, text, y, AuthorFontSize*LineHeight))
		y += AuthorFontSize * LineHeight
	}
}

func placeLine(face font.Face, role LineRole, text string, lineTop, lineHeight float64) TextLine {
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	width := measure(face, text)

	return TextLine{
		Role:     role,
		Text:     text,
		X:        Padding + (contentWidth-width)/2,
		Baseline: int(math.Round(lineTop + (lineHeight-ascent-descent)/2 + ascent)),
		Width:    width,
	}
}

// wrapText breaks text into lines no wider than maxWidth.
// Runs of whitespace collapse to a single space.
func wrapText(face font.Face, text string, maxWidth int) []string {
	var (
		lines []string
		cur   string
	)

	for _, word := range strings.Fields(text) {
		if measure(face, word) > maxWidth {
			if cur != "" {
				lines = append(lines, cur)
			}

			pieces := breakWord(face, word, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = pieces[len(pieces)-1]

			continue
		}

		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}

		if measure(face, candidate) <= maxWidth {
			cur = candidate

			continue
		}

		lines = append(lines, cur)
		cur = word
	}

	if cur != "" {
		lines = append(lines, cur)
	}

	return lines
}

// breakWord splits a word into pieces no wider than maxWidth. Every piece
// holds at least one character.
func breakWord(face font.Face, word string, maxWidth int) []string {
	var (
		pieces []string
		cur    []rune
	)

	for _, r := range word {
		if len(cur) > 0 && measure(face, string(append(cur, r))) > maxWidth {
			pieces = append(pieces, string(cur))
			cur = cur[:0]
		}

		cur = append(cur, r)
	}

	return append(pieces, string(cur))
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func parseFont(data []byte) (*opentype.Font, error) {
	switch {
	case len(data) == 0:
		return nil, errors.New("empty font data")
	case isWOFF2(data):
		return nil, ErrWOFF2Unsupported
	case isWOFF(data):
		sfnt, err := decodeWOFF(data)
		if err != nil {
			return nil, err
		}

		data = sfnt
	}

	return opentype.Parse(data)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
