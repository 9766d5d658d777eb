// scanline - software 3D renderer for the terminal
// Renders a textured scene with a scanline z-buffer rasterizer and flies a
// camera through it.
//
// Controls:
//
//	W/S or Up/Down     - Move forward/back
//	A/D or Left/Right  - Strafe left/right
//	X/Z                - Move up/down
//	N/M                - Turn left/right
//	U/J                - Look up/down
//	F/V                - Zoom in/out
//	O                  - Toggle triangle outlines
//	?                  - Toggle HUD overlay (FPS, triangle count)
//	R                  - Reset camera
//	Esc/Q              - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/internal/cli"
	"github.com/taigrr/scanline/pkg/control"
	"github.com/taigrr/scanline/pkg/render"
)

// keyHold is how long a key press keeps its action held. Most terminals
// never send releases, and auto-repeat refreshes the hold.
const keyHold = 250 * time.Millisecond

var (
	opts     cli.Options
	snapshot = flag.String("snapshot", "", "Render headless to this PNG path (may contain %d for the frame number)")
	frames   = flag.Int("frames", 1, "Frames to render with -snapshot")
	showHUD  = flag.Bool("hud", false, "Start with the HUD overlay shown")
)

func main() {
	opts.Register(flag.CommandLine, 1)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - terminal software renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a demo scene is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  X/Z         - Up/down\n")
		fmt.Fprintf(os.Stderr, "  N/M         - Turn\n")
		fmt.Fprintf(os.Stderr, "  U/J         - Look up/down\n")
		fmt.Fprintf(os.Stderr, "  F/V         - Zoom\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle outlines\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	os.Exit(realMain(flag.Arg(0)))
}

func realMain(modelPath string) int {
	done, err := opts.SetupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer done()

	if *snapshot != "" {
		err = runSnapshot(modelPath)
	} else {
		err = run(modelPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runSnapshot renders -frames frames from the scene start without a
// terminal, writing each to a PNG.
func runSnapshot(modelPath string) error {
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

	png := render.NewPNGDisplay(*snapshot, cfg.PixelSize)
	hud := render.NewHUD()
	for range max(*frames, 1) {
		stats := r.RenderFrame()
		if *showHUD {
			hud.Draw(r.Framebuffer(), stats)
		}
		if err := r.Present(png); err != nil {
			return err
		}
		render.Logger().Info("snapshot frame", slog.Int("drawn", stats.TrianglesDrawn))
	}
	fmt.Printf("Wrote %d frame(s) to %s\n", png.Frames(), *snapshot)
	return nil
}

// command is a request from the input goroutine to the render loop.
type command int

const (
	cmdResize command = iota
	cmdToggleOutline
	cmdToggleHUD
	cmdReset
)

func run(modelPath string) error {
	base, err := opts.Config()
	if err != nil {
		return err
	}

	atlas := render.NewAtlas()
	scene, err := opts.LoadScene(modelPath, atlas, os.Stderr)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.Erase()
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	display := render.NewTerminalDisplay(term)
	cam := render.NewCamera()
	cam.Position = scene.Start

	newRenderer := func() (*render.Renderer, error) {
		cols, rows := display.FramebufferSize()
		return cli.NewRenderer(render.TerminalConfig(base, cols, rows/2), cam, atlas, scene)
	}
	r, err := newRenderer()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		held     control.State
		bindings = control.DefaultBindings()
		cmds     = make(chan command, 8)
	)
	send := func(c command) {
		select {
		case cmds <- c:
		case <-ctx.Done():
		}
	}

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				send(cmdResize)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("o"):
					send(cmdToggleOutline)
				case ev.MatchString("?", "shift+/"):
					send(cmdToggleHUD)
				case ev.MatchString("r"):
					send(cmdReset)
				default:
					a, ok := bindings.Match(ev.MatchString)
					if !ok {
						break
					}
					if a == control.Quit {
						cancel()
						return
					}
					held.Tap(a, time.Now(), keyHold)
				}

			case uv.KeyReleaseEvent:
				if a, ok := bindings.Match(ev.MatchString); ok {
					held.Release(a)
				}
			}
		}
	}()

	ctrl := control.NewController(base.FPS)
	hud := render.NewHUD()
	hudOn := *showHUD
	var frameTime time.Duration
	if base.FPS > 0 {
		frameTime = time.Second / time.Duration(base.FPS)
	}
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-cmds:
			switch c {
			case cmdResize:
				next, err := newRenderer()
				if err != nil {
					// too small to render; keep the previous size
					render.Logger().Warn("resize", slog.Any("err", err))
					continue
				}
				next.SetOutline(r.Outline())
				r = next
			case cmdToggleOutline:
				r.SetOutline(!r.Outline())
			case cmdToggleHUD:
				hudOn = !hudOn
			case cmdReset:
				cam.Reset()
				cam.Position = scene.Start
				ctrl.Reset()
				held.Clear()
			}
			continue
		default:
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now

		ctrl.Update(cam, held.Held(now), dt)
		stats := r.RenderFrame()
		hud.Tick(now)
		if hudOn {
			hud.Draw(r.Framebuffer(), stats)
		}
		if err := r.Present(display); err != nil {
			return err
		}

		if elapsed := time.Since(now); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
