// Command oxy-shapes opens a window and renders one of the demo shape scenes
// with a fly camera.
//
// Controls: WASD or the arrow keys move, Space and Shift rise and sink, holding the
// left mouse button looks around, the wheel zooms, R resets the camera, F11 toggles
// fullscreen and Escape quits.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-shapes/config"
	"github.com/Carmen-Shannon/oxy-shapes/engine"
	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/scenes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flags are the command line values. Only flags the user set override the config file.
type flags struct {
	configPath  string
	title       string
	mode        string
	width       int
	height      int
	presentMode string
	scene       string
	profile     bool
	software    bool

	verbose, veryVerbose, quiet bool
}

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "oxy-shapes",
		Short:        "Render instanced 3D shapes with a fly camera",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	f.bind(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	f.apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := f.level(cfg)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	options := []engine.EngineBuilderOption{
		engine.WithContext(ctx),
		engine.WithLogger(logger),
		engine.WithForceSoftwareRenderer(f.software),
	}
	if f.configPath != "" {
		watched, err := config.Watch(ctx, f.configPath, logger)
		if err != nil {
			return fmt.Errorf("watch %s: %w", f.configPath, err)
		}
		options = append(options, engine.WithConfigUpdates(f.relay(ctx, cmd.Flags(), watched)))
	}

	eng, err := engine.NewEngine(cfg, options...)
	if err != nil {
		return err
	}

	logger.Info("running", "scene", cfg.Scene, "mode", cfg.Window.Mode, "present_mode", cfg.Render.PresentMode)
	return eng.Run()
}

func (f *flags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "TOML or YAML config file; edits are applied live")
	fs.StringVar(&f.title, "title", "", "window title")
	fs.StringVar(&f.mode, "mode", "", "window mode: windowed, fullscreen or fullscreen_borderless")
	fs.IntVar(&f.width, "width", 0, "window width in pixels")
	fs.IntVar(&f.height, "height", 0, "window height in pixels")
	fs.StringVar(&f.presentMode, "present-mode", "", "present mode: auto_vsync, auto_no_vsync, fifo, fifo_relaxed, immediate, mailbox or default")
	fs.StringVar(&f.scene, "scene", "", "scene to run: "+strings.Join(scenes.Names(), ", "))
	fs.BoolVar(&f.profile, "profile", false, "log frame statistics once per second")
	fs.BoolVar(&f.software, "software", false, "force the software fallback adapter")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "info logging")
	fs.BoolVar(&f.veryVerbose, "vv", false, "debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "errors only")
}

// apply copies every flag the user set onto cfg.
func (f *flags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("title") {
		cfg.Window.Title = f.title
	}
	if fs.Changed("mode") {
		cfg.Window.Mode = f.mode
	}
	if fs.Changed("width") {
		cfg.Window.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Window.Height = f.height
	}
	if fs.Changed("present-mode") {
		cfg.Render.PresentMode = f.presentMode
	}
	if fs.Changed("scene") {
		cfg.Scene = f.scene
	}
	if fs.Changed("profile") {
		cfg.Profile = f.profile
	}
}

// level prefers the verbosity flags over the config's log level. An empty config level
// means logx.UserLevel.
func (f *flags) level(cfg config.Config) (slog.Level, error) {
	if f.veryVerbose || f.verbose || f.quiet {
		return logx.LevelFromFlags(f.veryVerbose, f.verbose, f.quiet), nil
	}
	if cfg.LogLevel == "" {
		return logx.UserLevel, nil
	}
	level, ok := logx.ParseLevel(cfg.LogLevel)
	if !ok {
		return level, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return level, nil
}

// relay forwards reloaded configs with the flag overrides reapplied.
func (f *flags) relay(ctx context.Context, fs *pflag.FlagSet, in <-chan config.Config) <-chan config.Config {
	out := make(chan config.Config, 1)
	go func() {
		defer close(out)
		for cfg := range in {
			if ctx.Err() != nil {
				return
			}
			f.apply(fs, &cfg)
			config.Deliver(out, cfg)
		}
	}()
	return out
}
