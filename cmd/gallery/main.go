package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery/internal/config"
	"gallery/internal/engine"
	"gallery/internal/input"
	"gallery/internal/navigation"
	"gallery/internal/picking"
	"gallery/internal/render"
	"gallery/internal/scene"
)

func main() {
	configPath := flag.String("config", "gallery.toml", "path to the TOML config")
	scenePath := flag.String("scene", "", "scene file to load, overrides the config")
	watch := flag.Bool("watch", false, "reload the scene file when it changes")
	debug := flag.Bool("debug", false, "show the debug HUD and log at debug level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config rejected, using defaults", "err", err)
		cfg = config.Default()
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *watch {
		cfg.Scene.Watch = true
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	bindings, err := cfg.Bindings()
	if err != nil {
		logger.Error("key bindings rejected, using defaults", "err", err)
		bindings = input.DefaultBindings()
	}

	snap := loadScene(cfg, logger)

	ctrl := navigation.New(cfg.StartPose(), cfg.Navigation())
	loop := engine.NewLoop(ctrl, cfg.Lens(), snap, logger)
	loop.OnSelectionChanged.AddListener(func(e engine.SelectionEvent) {
		logger.Info("selection", "change", e.Change, "id", e.Result.ID, "label", e.Result.Label)
	})

	if cfg.Scene.Watch && cfg.Scene.Path != "" {
		w, err := scene.Watch(cfg.Scene.Path, cfg.Scene.CellSize, logger)
		if err != nil {
			logger.Error("scene watch disabled", "err", err)
		} else {
			defer w.Close()
			loop.Follow(w.Updates())
		}
	}

	run(cfg, bindings, loop, *debug)
}

// loadScene reads the configured scene file, falling back to the built-in
// gallery.
func loadScene(cfg config.Config, logger *slog.Logger) *scene.Snapshot {
	if cfg.Scene.Path == "" {
		return scene.DefaultGallery().Snapshot(cfg.Scene.CellSize)
	}
	f, err := scene.Load(cfg.Scene.Path)
	if err != nil {
		logger.Error("scene load failed, using the built-in gallery", "err", err)
		return scene.DefaultGallery().Snapshot(cfg.Scene.CellSize)
	}
	logger.Info("scene loaded", "path", cfg.Scene.Path, "obstacles", len(f.Obstacles), "objects", len(f.Objects))
	return f.Snapshot(cfg.Scene.CellSize)
}

func run(cfg config.Config, bindings input.Bindings, loop *engine.Loop, debug bool) {
	flags := uint32(rl.FlagWindowResizable)
	if cfg.Window.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	r := render.NewRenderer()
	r.Debug = debug
	r.SetupStyle()

	for !rl.WindowShouldClose() {
		vp := picking.Viewport{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()}

		if rl.IsKeyPressed(bindings.Capture) {
			if rl.IsCursorHidden() {
				rl.EnableCursor()
			} else {
				rl.DisableCursor()
			}
		}
		if rl.IsKeyPressed(bindings.Fullscreen) {
			rl.ToggleFullscreen()
		}
		if rl.IsKeyPressed(rl.KeyF1) {
			r.Debug = !r.Debug
		}

		// Clicks are applied against the pose the user saw last frame.
		if p, ok := input.PollPointer(bindings, vp.Width, vp.Height); ok {
			loop.Click(p, vp)
		}
		overlay := loop.Tick(rl.GetFrameTime(), input.Poll(bindings), vp)

		selected, _ := loop.Selection()
		r.Draw(loop.View(vp), loop.Snapshot(), selected.ID, overlay)
	}
}
