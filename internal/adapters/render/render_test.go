package render

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/binary"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

var goFonts = ports.FontSet{Regular: goregular.TTF, Bold: gobold.TTF}

var mandela = domain.QuoteCard{
	Quote:  "It always seems impossible until it's done.",
	Author: "Nelson Mandela",
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	return img
}

func TestCardRenderer_Render(t *testing.T) {
	r := NewCardRenderer()

	data, err := r.Render(context.Background(), mandela, goFonts)
	require.NoError(t, err)

	img := decodePNG(t, data)
	assert.Equal(t, image.Rect(0, 0, 1200, 630), img.Bounds())
	assert.Equal(t, "image/png", r.ContentType())

	bg := image.NewUniform(BackgroundColor)
	for _, p := range []image.Point{{0, 0}, {1199, 0}, {0, 629}, {1199, 629}, {30, 315}} {
		assert.Equal(t, bg.At(0, 0), img.At(p.X, p.Y), "background at %v", p)
	}

	var quoteInk, authorInk bool

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch img.At(x, y) {
			case image.NewUniform(QuoteColor).At(0, 0):
				quoteInk = true
			case image.NewUniform(AuthorColor).At(0, 0):
				authorInk = true
			}
		}
	}

	assert.True(t, quoteInk, "quote text drawn")
	assert.True(t, authorInk, "author text drawn")
}

func TestCardRenderer_RenderIsDeterministic(t *testing.T) {
	r := NewCardRenderer()

	first, err := r.Render(context.Background(), mandela, goFonts)
	require.NoError(t, err)

	second, err := r.Render(context.Background(), mandela, goFonts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCardRenderer_RenderErrors(t *testing.T) {
	r := NewCardRenderer()

	t.Run("invalid font", func(t *testing.T) {
		_, err := r.Render(context.Background(), mandela, ports.FontSet{Regular: goregular.TTF, Bold: []byte("not a font")})
		require.Error(t, err)
	})

	t.Run("missing font", func(t *testing.T) {
		_, err := r.Render(context.Background(), mandela, ports.FontSet{Bold: gobold.TTF})
		require.Error(t, err)
	})

	t.Run("woff2", func(t *testing.T) {
		_, err := r.Render(context.Background(), mandela, ports.FontSet{Regular: goregular.TTF, Bold: []byte("wOF2\x00\x01")})
		require.ErrorIs(t, err, ErrWOFF2Unsupported)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.Render(ctx, mandela, goFonts)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLayout_QuoteAndAuthorLines(t *testing.T) {
	layout, err := Layout(mandela, goFonts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = layout.Close() })

	quote := strings.Join(layout.QuoteLines(), " ")
	assert.Equal(t, "“It always seems impossible until it's done.”", quote)
	assert.Equal(t, []string{"— Nelson Mandela"}, layout.AuthorLines())
	assert.Equal(t, QuoteFontSize, layout.QuoteSize)
}

func TestLayout_NoAuthorLine(t *testing.T) {
	layout, err := Layout(domain.QuoteCard{Quote: "Anonymous words of wisdom."}, goFonts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = layout.Close() })

	assert.Empty(t, layout.AuthorLines())

	for _, line := range layout.Lines {
		assert.NotContains(t, line.Text, "—")
	}
}

func TestLayout_LinesFitAndAreCentred(t *testing.T) {
	card := domain.QuoteCard{
		Quote:  strings.Repeat("The only way to do great work is to love what you do. ", 5),
		Author: "Steve Jobs",
	}

	layout, err := Layout(card, goFonts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = layout.Close() })

	require.Greater(t, len(layout.QuoteLines()), 1)

	maxWidth := int(contentWidth * QuoteMaxWidthRatio)
	prevBaseline := 0

	for _, line := range layout.Lines {
		assert.LessOrEqual(t, line.Width, maxWidth, line.Text)
		assert.InDelta(t, CanvasWidth/2, line.X+line.Width/2, 1, line.Text)
		assert.Greater(t, line.Baseline, prevBaseline)
		assert.Greater(t, line.Baseline, Padding)
		assert.Less(t, line.Baseline, CanvasHeight-Padding)

		prevBaseline = line.Baseline
	}
}

func TestLayout_LongQuoteShrinks(t *testing.T) {
	card := domain.QuoteCard{Quote: strings.Repeat("wisdom ", 40)[:280], Author: strings.Repeat("A", 50)}

	layout, err := Layout(card, goFonts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = layout.Close() })

	assert.Less(t, layout.QuoteSize, QuoteFontSize)
	assert.GreaterOrEqual(t, layout.QuoteSize, MinQuoteFontSize)
	assert.LessOrEqual(t,
		blockHeight(len(layout.QuoteLines()), layout.QuoteSize, len(layout.AuthorLines())),
		float64(contentHeight))
}

func TestLayout_BreaksLongWords(t *testing.T) {
	word := strings.Repeat("W", 120)

	layout, err := Layout(domain.QuoteCard{Quote: word}, goFonts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = layout.Close() })

	lines := layout.QuoteLines()
	require.Greater(t, len(lines), 1)
	assert.Equal(t, OpenQuote+word+CloseQuote, strings.Join(lines, ""))
}

func TestWOFF_RoundTrip(t *testing.T) {
	woff := encodeWOFF(t, goregular.TTF)
	require.True(t, isWOFF(woff))

	sfnt, err := decodeWOFF(woff)
	require.NoError(t, err)

	want, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)

	got, err := opentype.Parse(sfnt)
	require.NoError(t, err)

	assert.Equal(t, want.NumGlyphs(), got.NumGlyphs())
}

func TestWOFF_RendersLikeTrueType(t *testing.T) {
	r := NewCardRenderer()

	fromTTF, err := r.Render(context.Background(), mandela, goFonts)
	require.NoError(t, err)

	fromWOFF, err := r.Render(context.Background(), mandela, ports.FontSet{
		Regular: encodeWOFF(t, goregular.TTF),
		Bold:    encodeWOFF(t, gobold.TTF),
	})
	require.NoError(t, err)

	assert.Equal(t, fromTTF, fromWOFF)
}

func TestDecodeWOFF_Corrupt(t *testing.T) {
	woff := encodeWOFF(t, goregular.TTF)

	tests := map[string][]byte{
		"short header":    woff[:20],
		"bad signature":   append([]byte("OTTO"), woff[4:]...),
		"truncated table": woff[:len(woff)/2],
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeWOFF(data)
			require.ErrorIs(t, err, errCorruptWOFF)
		})
	}
}

// encodeWOFF wraps a TrueType file as WOFF 1.0 with zlib-compressed tables.
func encodeWOFF(t *testing.T, ttf []byte) []byte {
	t.Helper()

	be := binary.BigEndian
	numTables := int(be.Uint16(ttf[4:]))

	type table struct {
		tag, checksum uint32
		orig, data    []byte
	}

	tables := make([]table, numTables)

	for i := range tables {
		rec := ttf[sfntHeaderSize+i*sfntEntrySize:]
		offset := be.Uint32(rec[8:])
		length := be.Uint32(rec[12:])
		orig := ttf[offset : offset+length]

		var buf bytes.Buffer

		zw := zlib.NewWriter(&buf)
		_, err := zw.Write(orig)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		data := orig
		if buf.Len() < len(orig) {
			data = buf.Bytes()
		}

		tables[i] = table{tag: be.Uint32(rec[0:]), checksum: be.Uint32(rec[4:]), orig: orig, data: data}
	}

	header := make([]byte, woffHeaderSize+numTables*woffEntrySize)
	be.PutUint32(header[0:], woffSignature)
	be.PutUint32(header[4:], be.Uint32(ttf[0:]))
	be.PutUint16(header[12:], uint16(numTables))

	out := header

	for i, tb := range tables {
		entry := out[woffHeaderSize+i*woffEntrySize:]
		be.PutUint32(entry[0:], tb.tag)
		be.PutUint32(entry[4:], uint32(len(out)))
		be.PutUint32(entry[8:], uint32(len(tb.data)))
		be.PutUint32(entry[12:], uint32(len(tb.orig)))
		be.PutUint32(entry[16:], tb.checksum)

		out = append(out, tb.data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}

	be.PutUint32(out[8:], uint32(len(out)))

	return out
}
