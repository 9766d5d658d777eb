package render

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw renders the framebuffer into area using upper half-block cells: the
// foreground is the top pixel and the background the bottom one, so each
// cell shows two pixel rows. The framebuffer is sampled nearest-neighbor
// when its size differs from the area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols, rows := area.Dx(), area.Dy()
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	for row := range rows {
		topY := (2 * row) * fb.Height / (2 * rows)
		botY := (2*row + 1) * fb.Height / (2 * rows)

		for col := range cols {
			x := col * fb.Width / cols
			scr.SetCell(area.Min.X+col, area.Min.Y+row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalScreen is the part of *uv.Terminal a TerminalDisplay needs.
type TerminalScreen interface {
	uv.Screen
	Display() error
}

// TerminalDisplay presents frames on a terminal with half-block cells.
type TerminalDisplay struct {
	scr TerminalScreen
}

// NewTerminalDisplay wraps a terminal screen, usually *uv.Terminal.
func NewTerminalDisplay(scr TerminalScreen) *TerminalDisplay {
	return &TerminalDisplay{scr: scr}
}

// FramebufferSize returns the framebuffer size that fills the screen at one
// pixel per column and two per row.
func (d *TerminalDisplay) FramebufferSize() (width, height int) {
	b := d.scr.Bounds()
	return b.Dx(), b.Dy() * 2
}

// Present draws fb over the whole screen and flushes it.
func (d *TerminalDisplay) Present(fb *Framebuffer) error {
	fb.Draw(d.scr, d.scr.Bounds())
	if err := d.scr.Display(); err != nil {
		return fmt.Errorf("terminal display: %w", err)
	}
	return nil
}

// TerminalConfig sizes base for a terminal of cols x rows cells, where
// each cell shows two pixel rows. PixelSize is kept, so the internal buffer
// is (cols/PixelSize) x (2*rows/PixelSize). FocalLength is scaled with the
// internal height to keep base's field of view.
func TerminalConfig(base Config, cols, rows int) Config {
	cfg := base
	cfg.PixelSize = max(base.PixelSize, 1)
	cfg.Width, cfg.Height = cols, rows*2

	_, baseH := base.InternalSize()
	if _, h := cfg.InternalSize(); baseH > 0 && h > 0 {
		cfg.FocalLength = base.FocalLength * float64(h) / float64(baseH)
	}
	return cfg
}
