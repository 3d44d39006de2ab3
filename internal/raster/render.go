package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/navigator"
)

// caretColor is fixed regardless of the text color.
var caretColor = color.RGBA{A: 0xff}

const (
	caretWidth      = 2
	underlineOffset = 2
)

// Source is the read side of an editor.
type Source interface {
	Lines() []string
	Cursor() document.Position
	Format() format.State
	Background() format.Color
}

// View is everything one frame needs.
type View struct {
	Width      int
	Height     int
	Lines      []string
	Cursor     document.Position
	Format     format.State
	Background format.Color
	ShowCaret  bool
}

// ViewOf captures src into a View of the given size.
func ViewOf(src Source, width, height int, showCaret bool) View {
	return View{
		Width:      width,
		Height:     height,
		Lines:      src.Lines(),
		Cursor:     src.Cursor(),
		Format:     src.Format(),
		Background: src.Background(),
		ShowCaret:  showCaret,
	}
}

// Renderer draws views. Its fonts are shared with hit-testing through
// Measure so the caret lands where the glyphs are.
type Renderer struct {
	// Spacing lays out lines; NewRenderer sets navigator.DefaultSpacing.
	Spacing navigator.Spacing

	fonts *FontBank
}

// NewRenderer returns a renderer drawing with fonts. A nil bank gets a
// fresh one.
func NewRenderer(fonts *FontBank) *Renderer {
	if fonts == nil {
		fonts = NewFontBank()
	}
	return &Renderer{Spacing: navigator.DefaultSpacing, fonts: fonts}
}

// Fonts returns the renderer's font bank.
func (r *Renderer) Fonts() *FontBank { return r.fonts }

// Measure satisfies navigator.MeasureFunc.
func (r *Renderer) Measure(text string, f format.State) float64 {
	return r.fonts.Measure(text, f)
}

// Render draws v onto a new image. Renders sharing a font bank run one at
// a time.
func (r *Renderer) Render(v View) *image.RGBA {
	r.fonts.draw.Lock()
	defer r.fonts.draw.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, max(v.Width, 1), max(v.Height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(v.Background.RGBA()), image.Point{}, draw.Src)

	lines := v.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}

	f := v.Format
	face := r.fonts.Face(f)
	ascent := face.Metrics().Ascent
	layout := r.Spacing.Layout(float64(v.Width), f)
	fg := image.NewUniform(f.Color.RGBA())

	d := &font.Drawer{Dst: img, Src: fg, Face: face}
	for i, line := range lines {
		top := navigator.LineTop(i, layout)
		if top > float64(v.Height) {
			break
		}
		width := r.fonts.measure(line, f)
		x := navigator.StartX(f.Align, layout, width)

		// Lines are laid out by their top edge; the drawer wants a baseline.
		d.Dot = fixed.Point26_6{X: toFixed(x), Y: toFixed(top) + ascent}
		d.DrawString(line)

		if f.Underline && line != "" {
			y := int(math.Round(top + f.FontSize + underlineOffset))
			fillRect(img, image.Rect(int(math.Round(x)), y, int(math.Round(x+width)), y+1), fg)
		}
	}

	if v.ShowCaret {
		r.drawCaret(img, lines, v.Cursor, f, layout)
	}
	return img
}

func (r *Renderer) drawCaret(img *image.RGBA, lines []string, p document.Position, f format.State, layout navigator.Layout) {
	if p.Line < 0 || p.Line >= len(lines) {
		return
	}
	line := lines[p.Line]
	start := navigator.StartX(f.Align, layout, r.fonts.measure(line, f))
	x := int(math.Round(start + r.fonts.measure(document.SliceByGraphemes(line, 0, p.Column), f)))
	top := int(math.Round(navigator.LineTop(p.Line, layout)))
	bottom := int(math.Round(navigator.LineTop(p.Line, layout) + f.FontSize))

	fillRect(img, image.Rect(x-caretWidth/2, top, x+caretWidth/2, bottom), image.NewUniform(caretColor))
}

func fillRect(img draw.Image, r image.Rectangle, src image.Image) {
	draw.Draw(img, r.Intersect(img.Bounds()), src, image.Point{}, draw.Over)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// ExportPNG renders v without a caret and writes it to w as PNG.
func (r *Renderer) ExportPNG(w io.Writer, v View) error {
	v.ShowCaret = false
	img := r.Render(v)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	log.Info(log.CatRender, "exported png", "width", v.Width, "height", v.Height, "lines", len(v.Lines))
	return nil
}

// ExportFile writes v as a PNG file at path, replacing any existing file.
func (r *Renderer) ExportFile(path string, v View) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: path comes from config or flags
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return r.ExportPNG(f, v)
}
