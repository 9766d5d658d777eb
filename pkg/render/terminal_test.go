package render

import (
	"errors"
	"image"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

// fakeScreen records cells. Methods it does not override panic through the
// nil embedded Screen.
type fakeScreen struct {
	uv.Screen
	w, h     int
	cells    map[[2]int]*uv.Cell
	displays int
	err      error
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{w: w, h: h, cells: make(map[[2]int]*uv.Cell)}
}

func (s *fakeScreen) Bounds() uv.Rectangle         { return image.Rect(0, 0, s.w, s.h) }
func (s *fakeScreen) SetCell(x, y int, c *uv.Cell) { s.cells[[2]int{x, y}] = c }
func (s *fakeScreen) Display() error {
	s.displays++
	return s.err
}

func (s *fakeScreen) cell(t *testing.T, x, y int) *uv.Cell {
	t.Helper()
	c, ok := s.cells[[2]int{x, y}]
	if !ok {
		t.Fatalf("no cell at (%d, %d)", x, y)
	}
	return c
}

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(2, 4)
	colors := []Color{
		RGB(1, 0, 0), RGB(2, 0, 0),
		RGB(3, 0, 0), RGB(4, 0, 0),
		RGB(5, 0, 0), RGB(6, 0, 0),
		RGB(7, 0, 0), RGB(8, 0, 0),
	}
	copy(fb.Pixels, colors)

	scr := newFakeScreen(2, 2)
	fb.Draw(scr, scr.Bounds())

	if len(scr.cells) != 4 {
		t.Fatalf("drew %d cells, want 4", len(scr.cells))
	}
	tests := []struct {
		x, y   int
		fg, bg Color
	}{
		{0, 0, colors[0], colors[2]},
		{1, 0, colors[1], colors[3]},
		{0, 1, colors[4], colors[6]},
		{1, 1, colors[5], colors[7]},
	}
	for _, tc := range tests {
		c := scr.cell(t, tc.x, tc.y)
		if c.Content != "▀" {
			t.Errorf("cell (%d, %d) content %q", tc.x, tc.y, c.Content)
		}
		if c.Style.Fg != tc.fg || c.Style.Bg != tc.bg {
			t.Errorf("cell (%d, %d) = %v/%v, want %v/%v", tc.x, tc.y, c.Style.Fg, c.Style.Bg, tc.fg, tc.bg)
		}
	}
}

func TestFramebufferDrawScales(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 0, ColorWhite)
	fb.SetPixel(2, 2, ColorGray)

	scr := newFakeScreen(2, 1)
	fb.Draw(scr, scr.Bounds())

	c := scr.cell(t, 1, 0)
	if c.Style.Fg != ColorWhite || c.Style.Bg != ColorGray {
		t.Errorf("scaled cell = %v/%v", c.Style.Fg, c.Style.Bg)
	}
}

func TestFramebufferDrawTransparent(t *testing.T) {
	fb := NewFramebuffer(1, 2)
	scr := newFakeScreen(1, 1)
	fb.Draw(scr, scr.Bounds())

	c := scr.cell(t, 0, 0)
	if c.Style.Fg != nil || c.Style.Bg != nil {
		t.Errorf("transparent pixels should leave colors unset, got %v/%v", c.Style.Fg, c.Style.Bg)
	}
}

func TestTerminalDisplayPresent(t *testing.T) {
	scr := newFakeScreen(3, 2)
	d := NewTerminalDisplay(scr)
	fb := NewFramebuffer(3, 4)
	fb.Clear(ColorWhite)

	if err := d.Present(fb); err != nil {
		t.Fatal(err)
	}
	if scr.displays != 1 || len(scr.cells) != 6 {
		t.Errorf("displays = %d, cells = %d", scr.displays, len(scr.cells))
	}

	scr.err = errors.New("closed")
	if err := d.Present(fb); !errors.Is(err, scr.err) {
		t.Errorf("Present = %v, want wrapped display error", err)
	}
}

func TestTerminalConfig(t *testing.T) {
	cfg := TerminalConfig(DefaultConfig(), 80, 24)
	if cfg.Width != 80 || cfg.Height != 48 {
		t.Errorf("size = %dx%d, want 80x48", cfg.Width, cfg.Height)
	}
	if w, h := cfg.InternalSize(); w != 40 || h != 24 {
		t.Errorf("internal = %dx%d, want 40x24", w, h)
	}
	// default focal length equals the internal height
	if cfg.FocalLength != 24 {
		t.Errorf("FocalLength = %v, want 24", cfg.FocalLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}

	if err := TerminalConfig(DefaultConfig(), 1, 1).Validate(); err == nil {
		t.Error("1x1 terminal at pixel size 2 should not validate")
	}
}

func TestTerminalDisplayFramebufferSize(t *testing.T) {
	d := NewTerminalDisplay(newFakeScreen(80, 24))
	if w, h := d.FramebufferSize(); w != 80 || h != 48 {
		t.Errorf("FramebufferSize = %dx%d, want 80x48", w, h)
	}
}
