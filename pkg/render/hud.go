package render

import (
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	hudLineHeight = 10
	hudBaseline   = 8
	hudMargin     = 2
)

// HUD draws frame statistics into the top-left corner of a framebuffer.
type HUD struct {
	Color  Color
	Shadow Color

	font   tinyfont.Fonter
	frames int
	since  time.Time
	fps    float64
}

// NewHUD creates a HUD with white text on a dark shadow.
func NewHUD() *HUD {
	return &HUD{
		Color:  ColorWhite,
		Shadow: ColorBlack,
		font:   &proggy.TinySZ8pt7b,
	}
}

// Tick counts a frame presented at now. The FPS estimate is refreshed once
// per second.
func (h *HUD) Tick(now time.Time) {
	if h.since.IsZero() {
		h.since = now
	}
	h.frames++
	if elapsed := now.Sub(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = now
	}
}

// FPS returns the last estimate, 0 until a full second has been counted.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Lines returns the text Draw writes for stats.
func (h *HUD) Lines(stats FrameStats) []string {
	return []string{
		fmt.Sprintf("%.0f fps", h.fps),
		fmt.Sprintf("%d/%d tris", stats.TrianglesDrawn, stats.TrianglesIn),
	}
}

// Draw writes the statistics over fb. Text that does not fit is clipped.
func (h *HUD) Draw(fb *Framebuffer, stats FrameStats) {
	t := textTarget{fb}
	for i, line := range h.Lines(stats) {
		x := int16(hudMargin)
		y := int16(hudMargin + hudBaseline + i*hudLineHeight)
		tinyfont.WriteLine(t, h.font, x+1, y+1, line, h.Shadow)
		tinyfont.WriteLine(t, h.font, x, y, line, h.Color)
	}
}

// textTarget lets tinyfont draw into a Framebuffer.
type textTarget struct {
	fb *Framebuffer
}

var _ drivers.Displayer = textTarget{}

func (t textTarget) Size() (x, y int16) {
	return int16(min(t.fb.Width, 1<<15-1)), int16(min(t.fb.Height, 1<<15-1))
}

func (t textTarget) SetPixel(x, y int16, c color.RGBA) {
	t.fb.SetPixel(int(x), int(y), c)
}

func (t textTarget) Display() error {
	return nil
}
