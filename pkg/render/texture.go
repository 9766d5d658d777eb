package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture is a row-major grid of texels. Row 0 is the top of the image and
// v=0 samples the bottom row.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture returns a transparent texture that repeats in both directions
// and samples nearest-neighbor.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pixels: make([]Color, width*height)}
}

// LoadTexture decodes a PNG, JPEG, BMP or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a new texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Rect, img, b.Min, xdraw.Src)
	}

	tex := NewTexture(b.Dx(), b.Dy())
	for i := range tex.Pixels {
		p := rgba.Pix[4*i : 4*i+4 : 4*i+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// NewCheckerTexture fills a texture with checkSize squares alternating
// between c1 and c2, starting with c1 at the top-left.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	checkSize = max(checkSize, 1)
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		x, y := i%width, i/width
		if (x/checkSize+y/checkSize)&1 == 0 {
			tex.Pixels[i] = c1
		} else {
			tex.Pixels[i] = c2
		}
	}
	return tex
}

func (t *Texture) inBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// SetPixel sets a texel. Out of bounds writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if t.inBounds(x, y) {
		t.Pixels[y*t.Width+x] = c
	}
}

// GetPixel returns the texel at (x, y), or transparent black outside.
func (t *Texture) GetPixel(x, y int) Color {
	if !t.inBounds(x, y) {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the texel at (u, v), where (0, 0) is the bottom-left
// corner and (1, 1) the top-right.
func (t *Texture) Sample(u, v float64) Color {
	u = wrapCoord(u, t.WrapU)
	v = 1 - wrapCoord(v, t.WrapV)

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

func wrapCoord(coord float64, mode WrapMode) float64 {
	if mode == WrapClamp {
		return min(max(coord, 0), 1)
	}
	return coord - math.Floor(coord)
}

// sampleBilinear blends the four texels around (u, v) in image space,
// with texel centers at half-integer positions.
func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0

	xa, xb := wrapPixel(int(x0), t.Width, t.WrapU), wrapPixel(int(x0)+1, t.Width, t.WrapU)
	ya, yb := wrapPixel(int(y0), t.Height, t.WrapV), wrapPixel(int(y0)+1, t.Height, t.WrapV)

	top := lerpColor(t.GetPixel(xa, ya), t.GetPixel(xb, ya), tx)
	bot := lerpColor(t.GetPixel(xa, yb), t.GetPixel(xb, yb), tx)
	return lerpColor(top, bot, ty)
}

func wrapPixel(x, size int, mode WrapMode) int {
	switch {
	case size <= 0:
		return 0
	case mode == WrapClamp:
		return min(max(x, 0), size-1)
	}
	return ((x % size) + size) % size
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

// Shade scales the RGB channels of c by k, saturating at 255. Alpha is
// kept. The rasterizer darkens texels with distance through it.
func Shade(c Color, k float64) Color {
	scale := func(ch uint8) uint8 { return uint8(min(255, float64(ch)*k)) }
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
