package render

import (
	"fmt"
	"log/slog"
	"strings"
)

// PNGDisplay writes each presented frame to a PNG file, upscaled by
// PixelSize. When Pattern contains a verb such as %d or %04d it receives
// the frame number; otherwise every frame overwrites the same file.
type PNGDisplay struct {
	Pattern   string
	PixelSize int

	frame int
}

// NewPNGDisplay creates a PNG display for pattern at the given scale.
func NewPNGDisplay(pattern string, pixelSize int) *PNGDisplay {
	return &PNGDisplay{Pattern: pattern, PixelSize: pixelSize}
}

// Present writes fb to the next file.
func (d *PNGDisplay) Present(fb *Framebuffer) error {
	path := d.Path(d.frame)
	d.frame++
	if err := fb.SavePNG(path, d.PixelSize); err != nil {
		return err
	}
	Logger().Debug("snapshot written", slog.String("path", path))
	return nil
}

// Path returns the file name used for frame n.
func (d *PNGDisplay) Path(n int) string {
	if strings.Contains(d.Pattern, "%") {
		return fmt.Sprintf(d.Pattern, n)
	}
	return d.Pattern
}

// Frames returns how many frames have been presented.
func (d *PNGDisplay) Frames() int {
	return d.frame
}
