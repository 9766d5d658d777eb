package render

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("render: invalid config")

// Config holds the startup constants of a render session. It is not
// hot-reloadable: build a new Renderer to change it.
type Config struct {
	Width     int // Display width in real pixels
	Height    int // Display height in real pixels
	PixelSize int // Resolution divisor; internal size is Width/PixelSize

	// PixelAspect scales projected x. 1 for square pixels.
	PixelAspect float64
	// FocalLength is the projection scale in internal pixels at FOV 1.
	FocalLength float64

	Near            float64 // Near clip distance
	Far             float64 // Far depth bound used by the projection matrix
	FalloffDistance float64 // Depth at which distance shading reaches black

	FPS        int
	Background color.RGBA
	Outline    bool // Draw triangle outlines over the fill
}

// DefaultConfig returns a 600x600 display rendered at half resolution.
func DefaultConfig() Config {
	return Config{
		Width:           600,
		Height:          600,
		PixelSize:       2,
		PixelAspect:     1,
		FocalLength:     300,
		Near:            0.1,
		Far:             1000,
		FalloffDistance: 30,
		FPS:             80,
		Background:      RGB(20, 20, 28),
	}
}

// InternalSize returns the size of the buffers the pipeline renders into.
func (c Config) InternalSize() (width, height int) {
	if c.PixelSize < 1 {
		return c.Width, c.Height
	}
	return c.Width / c.PixelSize, c.Height / c.PixelSize
}

// Validate checks the configuration. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.PixelSize < 1:
		return fmt.Errorf("%w: pixel size %d < 1", ErrInvalidConfig, c.PixelSize)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Width < c.PixelSize || c.Height < c.PixelSize:
		return fmt.Errorf("%w: size %dx%d smaller than pixel size %d", ErrInvalidConfig, c.Width, c.Height, c.PixelSize)
	case c.PixelAspect <= 0:
		return fmt.Errorf("%w: pixel aspect %v must be positive", ErrInvalidConfig, c.PixelAspect)
	case c.FocalLength <= 0:
		return fmt.Errorf("%w: focal length %v must be positive", ErrInvalidConfig, c.FocalLength)
	case c.Near <= 0:
		return fmt.Errorf("%w: near %v must be positive", ErrInvalidConfig, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalidConfig, c.Far, c.Near)
	case c.FalloffDistance < 0:
		return fmt.Errorf("%w: falloff %v is negative", ErrInvalidConfig, c.FalloffDistance)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps %d is negative", ErrInvalidConfig, c.FPS)
	}
	return nil
}
