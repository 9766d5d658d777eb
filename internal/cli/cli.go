// Package cli holds the flags and startup steps shared by the scanline
// commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Options are the settings common to every front end.
type Options struct {
	Texture    string
	FPS        int
	Background string
	PixelSize  int
	Outline    bool
	Falloff    float64
	LogPath    string
}

// Register adds the shared flags to fs. pixelSize is the front end's
// default pixel size.
func (o *Options) Register(fs *flag.FlagSet, pixelSize int) {
	def := render.DefaultConfig()
	fs.StringVar(&o.Texture, "texture", "", "Path to texture image (PNG/JPG) applied to the model")
	fs.IntVar(&o.FPS, "fps", def.FPS, "Target FPS")
	fs.StringVar(&o.Background, "bg", "20,20,28", "Background color (R,G,B)")
	fs.IntVar(&o.PixelSize, "pixel", pixelSize, "Display pixels per rendered pixel")
	fs.BoolVar(&o.Outline, "outline", false, "Draw triangle outlines over the fill")
	fs.Float64Var(&o.Falloff, "falloff", def.FalloffDistance, "Distance at which shading reaches black (0 disables)")
	fs.StringVar(&o.LogPath, "log", "", "Write a debug log to this file")
}

// Config returns the default render configuration with the options
// applied. It is not validated; NewRenderer does that.
func (o *Options) Config() (render.Config, error) {
	cfg := render.DefaultConfig()
	bg, err := render.ParseRGB(o.Background)
	if err != nil {
		return cfg, fmt.Errorf("-bg: %w", err)
	}
	cfg.Background = bg
	cfg.FPS = o.FPS
	cfg.PixelSize = o.PixelSize
	cfg.Outline = o.Outline
	cfg.FalloffDistance = o.Falloff
	return cfg, nil
}

// SetupLogging sends the render logger to LogPath at debug level. Without
// a path logging stays off. The returned function restores the silent
// logger and closes the file.
func (o *Options) SetupLogging() (func(), error) {
	if o.LogPath == "" {
		return func() {}, nil
	}
	f, err := os.Create(o.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}

// LoadScene loads modelPath (or the demo scene) into atlas. A texture that
// fails to load is reported on warn and rendering continues with the
// placeholder.
func (o *Options) LoadScene(modelPath string, atlas *render.Atlas, warn io.Writer) (*models.Scene, error) {
	scene, err := models.LoadScene(modelPath, o.Texture, atlas)
	if err != nil {
		if scene == nil {
			return nil, err
		}
		fmt.Fprintf(warn, "Warning: could not load texture: %v\n", err)
	}
	return scene, nil
}

// NewRenderer builds a renderer for cfg with scene added and the camera at
// the scene start.
func NewRenderer(cfg render.Config, cam *render.Camera, atlas *render.Atlas, scene *models.Scene) (*render.Renderer, error) {
	r, err := render.NewRenderer(cfg, cam, atlas)
	if err != nil {
		return nil, err
	}
	if err := scene.AddTo(r); err != nil {
		return nil, err
	}
	return r, nil
}
