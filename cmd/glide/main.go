package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/daemon"
	"github.com/1broseidon/glide/internal/hotkeys"
	"github.com/1broseidon/glide/internal/ipc"
	"github.com/1broseidon/glide/internal/mcp"
	"github.com/1broseidon/glide/internal/platform"
	"github.com/1broseidon/glide/internal/registry"
	"github.com/1broseidon/glide/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: glide daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: glide daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glide <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the glide daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            Show detected monitors")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout list         List available layouts")
	fmt.Fprintln(w, "  layout apply        Transition windows to a layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window move         Animate a window toward a position/size")
	fmt.Fprintln(w, "  window fade         Animate a window's opacity")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glide <command> --help' for command-specific options.")
}

// newLogger builds the daemon logger: human-readable on a terminal, JSON
// lines otherwise.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "windows", len(cfg.Windows), "layouts", len(cfg.Layouts))

	conn, err := x11.NewConnection()
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	backend := platform.NewLinuxBackend(conn)
	source := daemon.NewWindowSource(backend, conn, logger)
	reg := registry.New(source, cfg.Windows, logger)

	engine := animation.New(animation.Config{
		MoveDuration: cfg.MoveDuration(),
		FadeDuration: cfg.FadeDuration(),
		StepInterval: cfg.FrameInterval(),
		Lookup:       reg,
		Logger:       logger,
	})
	defer engine.Destroy()

	ctrl := daemon.NewController(cfg, backend, reg, engine, logger)

	hotkeyHandler := hotkeys.NewHandler(conn)
	if cfg.ApplyHotkey != "" {
		if err := hotkeyHandler.RegisterFunc(cfg.ApplyHotkey, func() {
			if err := ctrl.ApplyLayout(ctrl.ActiveLayout(), true, nil); err != nil {
				logger.Warn("hotkey layout apply failed", "error", err)
			}
		}); err != nil {
			logger.Warn("failed to register apply_hotkey", "hotkey", cfg.ApplyHotkey, "error", err)
		} else {
			logger.Info("apply hotkey registered", "hotkey", cfg.ApplyHotkey)
		}
	}
	if cfg.CycleLayoutHotkey != "" {
		if err := hotkeyHandler.RegisterFunc(cfg.CycleLayoutHotkey, func() {
			name, err := ctrl.CycleLayout(1)
			if err != nil {
				logger.Warn("hotkey layout cycle failed", "error", err)
				return
			}
			logger.Info("switched layout", "layout", name)
		}); err != nil {
			logger.Warn("failed to register cycle_layout_hotkey", "hotkey", cfg.CycleLayoutHotkey, "error", err)
		}
	}

	reloadChan := make(chan struct{}, 1)

	ipcServer, err := ipc.NewServer(cfg, ctrl, backend, reloadChan, logger)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		os.Exit(1)
	}
	if err := ipcServer.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		os.Exit(1)
	}
	defer ipcServer.Stop()

	refresher := daemon.NewRefresher(daemon.RefresherConfig{
		Interval: cfg.RefreshInterval(),
		Logger:   logger,
	}, reg)

	// Populate the registry before the first command arrives.
	refresher.RefreshNow()

	refresherCtx, refresherCancel := context.WithCancel(context.Background())
	defer refresherCancel()
	go refresher.Run(refresherCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					logger.Info("received SIGHUP, reloading config")
					newCfg, err := config.Load()
					if err != nil {
						logger.Warn("config reload failed", "error", err)
						continue
					}
					ipcServer.UpdateConfig(newCfg)
					ctrl.UpdateConfig(newCfg)
					refresher.RefreshNow()
					logger.Info("config reloaded")

				case os.Interrupt, syscall.SIGTERM:
					logger.Info("shutting down")
					refresherCancel()
					engine.Destroy()
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC, update components
				newCfg := ipcServer.GetConfig()
				ctrl.UpdateConfig(newCfg)
				refresher.RefreshNow()
			}
		}
	}()

	logger.Info("glide daemon started")
	conn.EventLoop()
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glide status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("active_layout:  %s\n", status.ActiveLayout)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("animating:      %v\n", status.Animating)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glide monitors")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		fmt.Printf("%d: %s %dx%d+%d+%d\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glide reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to reload its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glide layout list")
	fmt.Fprintln(w, "  glide layout apply [--no-animate] [--duration MS] <layout>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glide layout <command> --help' for command-specific options.")
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printLayoutUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glide layout list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List available layouts and the current selection.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "layout list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListLayouts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("default_layout: %s\n", data.DefaultLayout)
		fmt.Printf("active_layout:  %s\n", data.ActiveLayout)
		for _, name := range data.Layouts {
			fmt.Printf("- %s\n", name)
		}
		return 0

	case "apply":
		fs := flag.NewFlagSet("apply", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glide layout apply [--no-animate] [--duration MS] <layout>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Transition all registered windows to the named layout.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		noAnimate := fs.Bool("no-animate", false, "Jump to targets without animating")
		duration := fs.Int("duration", -1, "Animation duration in milliseconds (0 snaps immediately)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "layout apply requires <layout>")
			fs.Usage()
			return 2
		}

		var animated *bool
		if *noAnimate {
			f := false
			animated = &f
		}
		var durationMs *int
		if *duration >= 0 {
			durationMs = duration
		}
		if err := client.ApplyLayout(fs.Arg(0), animated, durationMs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  glide window move [--x N] [--y N] [--width N] [--height N] [--duration MS] <window>")
	fmt.Fprintln(w, "  glide window fade --to OPACITY [--from OPACITY] [--duration MS] <window>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Windows are addressed by the names configured under 'windows'.")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWindowUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "move":
		fs := flag.NewFlagSet("move", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glide window move [--x N] [--y N] [--width N] [--height N] [--duration MS] <window>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Animate the named window toward a target. Omitted fields keep their value.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		x := fs.Int("x", 0, "Target X position")
		y := fs.Int("y", 0, "Target Y position")
		width := fs.Int("width", 0, "Target width")
		height := fs.Int("height", 0, "Target height")
		duration := fs.Int("duration", -1, "Animation duration in milliseconds (0 snaps immediately)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "window move requires <window>")
			fs.Usage()
			return 2
		}

		// Only explicitly passed flags become part of the target.
		var xp, yp, wp, hp *int
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "x":
				xp = x
			case "y":
				yp = y
			case "width":
				wp = width
			case "height":
				hp = height
			}
		})
		if xp == nil && yp == nil && wp == nil && hp == nil {
			fmt.Fprintln(os.Stderr, "window move requires at least one of --x, --y, --width, --height")
			fs.Usage()
			return 2
		}
		var durationMs *int
		if *duration >= 0 {
			durationMs = duration
		}

		if err := client.MoveWindow(fs.Arg(0), xp, yp, wp, hp, durationMs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "fade":
		fs := flag.NewFlagSet("fade", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: glide window fade --to OPACITY [--from OPACITY] [--duration MS] <window>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Animate the named window's opacity (0 transparent, 1 opaque).")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		to := fs.Float64("to", 1, "Target opacity (required)")
		from := fs.Float64("from", 1, "Starting opacity (default: current)")
		duration := fs.Int("duration", -1, "Animation duration in milliseconds (0 snaps immediately)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "window fade requires <window>")
			fs.Usage()
			return 2
		}

		toSet := false
		var fromP *float64
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "to":
				toSet = true
			case "from":
				fromP = from
			}
		})
		if !toSet {
			fmt.Fprintln(os.Stderr, "window fade requires --to")
			fs.Usage()
			return 2
		}
		var durationMs *int
		if *duration >= 0 {
			durationMs = duration
		}

		if err := client.FadeWindow(fs.Arg(0), *to, fromP, durationMs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  glide config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  glide config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/glide/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/glide/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			if *path == "" {
				cfg, err = config.Load()
			} else {
				cfg, err = config.LoadFromPath(*path)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runMCP(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: glide mcp serve")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP server on stdio. Requires a running daemon.")
		return 2
	}

	switch args[0] {
	case "serve":
		server := mcp.NewServer()
		if err := server.Run(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp subcommand: %s\n", args[0])
		return 2
	}
}
