// scanline-window - software 3D renderer in a desktop window
// Same pipeline and controls as scanline, presented through ebiten instead
// of terminal half-blocks. The GPU only blits the finished framebuffer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/scanline/internal/cli"
	"github.com/taigrr/scanline/pkg/control"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	opts    cli.Options
	showHUD = flag.Bool("hud", true, "Show frame statistics")
)

var keys = map[control.Action][]ebiten.Key{
	control.Forward:   {ebiten.KeyW, ebiten.KeyArrowUp},
	control.Back:      {ebiten.KeyS, ebiten.KeyArrowDown},
	control.Left:      {ebiten.KeyA, ebiten.KeyArrowLeft},
	control.Right:     {ebiten.KeyD, ebiten.KeyArrowRight},
	control.Up:        {ebiten.KeyX},
	control.Down:      {ebiten.KeyZ},
	control.YawLeft:   {ebiten.KeyN},
	control.YawRight:  {ebiten.KeyM},
	control.PitchUp:   {ebiten.KeyU},
	control.PitchDown: {ebiten.KeyJ},
	control.ZoomIn:    {ebiten.KeyF},
	control.ZoomOut:   {ebiten.KeyV},
	control.Quit:      {ebiten.KeyEscape, ebiten.KeyQ},
}

// game adapts the renderer to ebiten's Update/Draw loop.
type game struct {
	r     *render.Renderer
	cam   *render.Camera
	ctrl  *control.Controller
	start func()

	stats render.FrameStats
	last  time.Time
	pix   []byte
}

func heldActions() control.Set {
	var held control.Set
	for a, ks := range keys {
		for _, k := range ks {
			if ebiten.IsKeyPressed(k) {
				held = held.With(a)
				break
			}
		}
	}
	return held
}

func (g *game) Update() error {
	held := heldActions()
	if held.Has(control.Quit) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.r.SetOutline(!g.r.Outline())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.start()
	}

	now := time.Now()
	dt := min(now.Sub(g.last).Seconds(), 0.1)
	g.last = now

	g.ctrl.Update(g.cam, held, dt)
	g.stats = g.r.RenderFrame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.r.Framebuffer()
	if n := 4 * fb.Width * fb.Height; len(g.pix) != n {
		g.pix = make([]byte, n)
	}
	fb.CopyTo(g.pix)
	screen.WritePixels(g.pix)
	if *showHUD {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  tris %d/%d  clipped %d  culled %d",
			ebiten.ActualFPS(), g.stats.TrianglesDrawn, g.stats.TrianglesIn,
			g.stats.ClipCulled, g.stats.BackfaceCulled), 4, 4)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.r.Config().InternalSize()
}

func main() {
	opts.Register(flag.CommandLine, 2)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline-window - windowed software renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline-window [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls are those of scanline; Esc or Q quits.\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	os.Exit(realMain(flag.Arg(0)))
}

func realMain(modelPath string) int {
	if err := run(modelPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(modelPath string) error {
	done, err := opts.SetupLogging()
	if err != nil {
		return err
	}
	defer done()

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	atlas := render.NewAtlas()
	scene, err := opts.LoadScene(modelPath, atlas, os.Stderr)
	if err != nil {
		return err
	}

	cam := render.NewCamera()
	cam.Position = scene.Start
	r, err := cli.NewRenderer(cfg, cam, atlas, scene)
	if err != nil {
		return err
	}

	ctrl := control.NewController(cfg.FPS)
	g := &game{
		r:    r,
		cam:  cam,
		ctrl: ctrl,
		last: time.Now(),
		start: func() {
			cam.Reset()
			cam.Position = scene.Start
			ctrl.Reset()
		},
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("scanline")
	if cfg.FPS > 0 {
		ebiten.SetTPS(cfg.FPS)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	return ebiten.RunGame(g)
}
