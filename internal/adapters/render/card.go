package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// ContentTypePNG is the MIME type of rendered cards.
const ContentTypePNG = "image/png"

// CardRenderer renders quote cards to PNG.
// It holds no state and is safe for concurrent use.
type CardRenderer struct {
	encoder png.Encoder
}

var _ ports.ImageRenderer = (*CardRenderer)(nil)

// NewCardRenderer creates a renderer.
func NewCardRenderer() *CardRenderer {
	return &CardRenderer{encoder: png.Encoder{CompressionLevel: png.DefaultCompression}}
}

// ContentType implements ports.ImageRenderer.
func (r *CardRenderer) ContentType() string {
	return ContentTypePNG
}

// Render implements ports.ImageRenderer.
func (r *CardRenderer) Render(ctx context.Context, card domain.QuoteCard, fonts ports.FontSet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout, err := Layout(card, fonts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	defer func() { _ = layout.Close() }()

	img := Draw(layout)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = r.encoder.Encode(&buf, img)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// Draw rasterises a layout onto a new canvas.
func Draw(layout *CardLayout) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(BackgroundColor), image.Point{}, draw.Src)

	quoteInk := image.NewUniform(QuoteColor)
	authorInk := image.NewUniform(AuthorColor)

	for _, line := range layout.Lines {
		ink := quoteInk
		if line.Role == RoleAuthor {
			ink = authorInk
		}

		d := font.Drawer{
			Dst:  img,
			Src:  ink,
			Face: layout.face(line.Role),
			Dot:  fixed.P(line.X, line.Baseline),
		}
		d.DrawString(line.Text)
	}

	return img
}
