// Package raster draws a document onto an RGBA image with the Go fonts and
// exports it as PNG.
package raster

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
)

type faceKey struct {
	size   int // font size in 1/64 px
	bold   bool
	italic bool
}

// FontBank hands out font faces for a format. The font family is not
// honored: every family renders with the Go fonts in the matching style.
// If a font cannot be parsed, faces fall back to basicfont.Face7x13.
//
// Faces are cached and shared, and an opentype face is not safe for
// concurrent use. Measure and Renderer.Render hold the bank's draw lock
// while they use a face.
type FontBank struct {
	mu         sync.Mutex // guards faces
	draw       sync.Mutex // held while a face is in use
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
	faces      map[faceKey]font.Face
}

// NewFontBank parses the embedded Go fonts.
func NewFontBank() *FontBank {
	bank := &FontBank{faces: map[faceKey]font.Face{}}
	bank.regular = parse("regular", goregular.TTF)
	bank.bold = parse("bold", gobold.TTF)
	bank.italic = parse("italic", goitalic.TTF)
	bank.boldItalic = parse("bold italic", gobolditalic.TTF)
	return bank
}

func parse(name string, ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		log.ErrorErr(log.CatRender, "failed to parse font", err, "style", name)
		return nil
	}
	return f
}

// Face returns the cached face for f's size and style. Callers that use the
// face concurrently with Measure or Render must serialize themselves.
func (b *FontBank) Face(f format.State) font.Face {
	key := faceKey{
		size:   int(math.Round(f.FontSize * 64)),
		bold:   f.Bold,
		italic: f.Italic,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if face, ok := b.faces[key]; ok {
		return face
	}

	var base *opentype.Font
	switch {
	case f.Bold && f.Italic:
		base = b.boldItalic
	case f.Bold:
		base = b.bold
	case f.Italic:
		base = b.italic
	default:
		base = b.regular
	}
	if base == nil || f.FontSize <= 0 {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    f.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.ErrorErr(log.CatRender, "failed to create face", err, "font", f.FontString())
		return basicfont.Face7x13
	}
	b.faces[key] = face
	return face
}

// Measure returns the advance width of text in pixels. It satisfies
// navigator.MeasureFunc.
func (b *FontBank) Measure(text string, f format.State) float64 {
	if text == "" {
		return 0
	}
	b.draw.Lock()
	defer b.draw.Unlock()
	return b.measure(text, f)
}

// measure is Measure for callers already holding the draw lock.
func (b *FontBank) measure(text string, f format.State) float64 {
	if text == "" {
		return 0
	}
	adv := font.MeasureString(b.Face(f), text)
	return float64(adv) / 64
}
