package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Framebuffer is the color target the rasterizer writes into, at the
// internal (pixel-size divided) resolution.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out of bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// CountNot returns how many pixels differ from c.
func (fb *Framebuffer) CountNot(c color.RGBA) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != c {
			n++
		}
	}
	return n
}

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1), both ends
// included, stepping along the major axis with an integer error term.
// Pixels off the buffer are skipped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	sx, sy := sign(dx), sign(dy)
	dx, dy = dx*sx, dy*sy

	if dx >= dy {
		e := dx / 2
		for range dx + 1 {
			fb.SetPixel(x0, y0, c)
			x0 += sx
			if e -= dy; e < 0 {
				y0 += sy
				e += dx
			}
		}
		return
	}
	e := dy / 2
	for range dy + 1 {
		fb.SetPixel(x0, y0, c)
		y0 += sy
		if e -= dx; e < 0 {
			x0 += sx
			e += dy
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// CopyTo writes the pixels as packed RGBA bytes into pix, which must hold
// at least 4*Width*Height bytes.
func (fb *Framebuffer) CopyTo(pix []byte) {
	_ = pix[4*len(fb.Pixels)-1]
	for i, p := range fb.Pixels {
		pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3] = p.R, p.G, p.B, p.A
	}
}

// ToImage returns the pixels as an image at internal resolution.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	if len(fb.Pixels) > 0 {
		fb.CopyTo(img.Pix)
	}
	return img
}

// Scaled returns the framebuffer upscaled by pixelSize with nearest-neighbor
// sampling, so each internal pixel becomes a pixelSize square block.
func (fb *Framebuffer) Scaled(pixelSize int) *image.RGBA {
	src := fb.ToImage()
	if pixelSize <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*pixelSize, fb.Height*pixelSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG writes the framebuffer, upscaled by pixelSize, as a PNG file.
func (fb *Framebuffer) SavePNG(path string, pixelSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, fb.Scaled(pixelSize)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
