// Package main is the entry point for the keyleap overlay.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keyleap/keyleap/internal/app"
	"github.com/keyleap/keyleap/internal/config"
	"github.com/keyleap/keyleap/internal/overlay/fynewin"
	"github.com/keyleap/keyleap/internal/platform/hooktap"
	"github.com/keyleap/keyleap/internal/platform/robotmouse"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, writeConfig := parseFlags()

	if writeConfig {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	defer application.Shutdown()

	// Platform components: the fyne overlay window, the global keyboard
	// hook, and the robotgo pointer.
	win := fynewin.New("keyleap", application.Keys(), application.Logger())
	application.SetWindow(win)
	application.SetTap(hooktap.New(application.Logger()))
	application.SetMouse(robotmouse.New())

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Blocks on the window loop; fyne requires the main goroutine.
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool
	var showHelp bool
	var writeConfig bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the default configuration file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyleap - keyboard-driven mouse control\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyleap [options]\n\n")
		fmt.Fprintf(os.Stderr, "Tap right command to show the grid, type a two-letter label,\n")
		fmt.Fprintf(os.Stderr, "then one more letter (or space/return) to click. Hold left\n")
		fmt.Fprintf(os.Stderr, "shift for a right click. Escape dismisses the grid.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keyleap %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	return opts, writeConfig
}
