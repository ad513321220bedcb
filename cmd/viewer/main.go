// Command viewer shows a rigged character in red/cyan anaglyph stereo and plays its
// animation clips on demand.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/loader"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/window"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/config"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/interaction"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML manifest; built-in defaults when empty")
	profile := flag.Bool("profile", false, "log frame and memory stats once per second")
	msaa := flag.Bool("msaa", true, "enable 4x multisample anti-aliasing")
	uncapped := flag.Bool("uncapped", false, "present without waiting for vertical blank")
	software := flag.Bool("software", false, "force the fallback (software) GPU adapter")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(480, 270, 3840, 2160),
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	opts := []renderer.RendererBuilderOption{
		renderer.WithGrayscale(cfg.Grayscale),
		renderer.WithForceSoftwareRenderer(*software),
	}
	if !*msaa {
		opts = append(opts, renderer.WithMSAA(renderer.MSAAOff))
	}
	if *uncapped {
		opts = append(opts, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, opts...)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	// ── Viewer ──────────────────────────────────────────────────────────
	ctx := viewer.NewContext(cfg)
	loads := viewer.StartLoading(cfg, loader.NewLoader(loader.BackendTypeGLTF))

	eng := engine.NewEngine(
		engine.WithProfiling(*profile),
		engine.WithWindow(win),
		engine.WithSurface(r),
		engine.WithScene(ctx.Scene),
		engine.WithCamera(ctx.Camera),
	)
	eng.SetFrameCallback(ctx.Advance)

	// ── Input ───────────────────────────────────────────────────────────
	ui := viewer.NewUI(ctx, cfg.Window.Title, display{r})
	win.SetTitle(ui.Title())
	eng.SetPreFrameCallback(func() {
		if loads.Drain(ctx) {
			win.SetTitle(ui.Title())
		}
	})

	win.SetPointerDownCallback(func(e window.PointerEvent) {
		ctx.PointerDown(e.X, e.Y, e.Modifiers)
	})
	win.SetPointerMoveCallback(ctx.PointerMove)
	win.SetPointerUpCallback(func(window.PointerEvent) {
		ctx.PointerUp()
	})
	win.SetScrollCallback(ctx.Scroll)
	win.SetKeyDownCallback(func(keyCode uint32, _ common.Modifier) {
		if ui.KeyDown(keyCode) {
			win.SetTitle(ui.Title())
		}
	})

	printControls(cfg)

	log.Println("Starting viewer")
	eng.Run()

	// The surface must go before the window it was created from.
	loads.Stop()
	ctx.Release()
	r.Release()
	if err := win.Close(); err != nil {
		log.Printf("[Viewer] closing window: %v", err)
	}
}

// display exposes the renderer's stereo mode as an on/off switch for the keyboard.
type display struct {
	renderer.Renderer
}

func (d display) StereoEnabled() bool {
	return d.StereoMode() == renderer.StereoModeAnaglyph
}

func (d display) SetStereoEnabled(enabled bool) {
	if enabled {
		d.SetStereoMode(renderer.StereoModeAnaglyph)
	} else {
		d.SetStereoMode(renderer.StereoModeMono)
	}
}

func printControls(cfg *config.Config) {
	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Printf("║  %-52s║\n", cfg.Window.Title)
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Camera: Left drag=Orbit  Scroll=Zoom                ║")
	fmt.Println("║  Model:  Shift+drag or R=rotate mode                 ║")
	fmt.Println("║  Depth:  [ / ]  move farther / closer                ║")
	fmt.Println("║  Menu:   Tab=next animation                          ║")
	fmt.Println("║  View:   M=anaglyph/mono  G=grayscale/color          ║")
	fmt.Println("║  Animations:                                         ║")
	for i, key := range interaction.AnimationKeys {
		fmt.Printf("║    %d = %-46s║\n", i+1, key)
	}
	fmt.Println("╚══════════════════════════════════════════════════════╝")
}
