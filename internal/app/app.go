// Package app wires the overlay components together and manages the
// application lifecycle. The platform pieces (overlay window, global
// keyboard tap, system mouse) are attached through setters so tests can run
// the full pipeline against in-process doubles.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/keyleap/keyleap/internal/click"
	"github.com/keyleap/keyleap/internal/config"
	"github.com/keyleap/keyleap/internal/gesture"
	"github.com/keyleap/keyleap/internal/input/key"
	"github.com/keyleap/keyleap/internal/logging"
	"github.com/keyleap/keyleap/internal/navigator"
	"github.com/keyleap/keyleap/internal/overlay"
	"github.com/keyleap/keyleap/internal/state"
)

// Application is the central coordinator for the overlay.
type Application struct {
	cfg config.Config
	log *logging.Logger

	// Shared state between the tap goroutine and the render loop.
	flags   *state.Flags
	signals *gesture.Queue
	keys    *key.Queue

	// Platform components, attached before Run.
	window overlay.Window
	tap    gesture.Source
	mouse  click.Mouse

	// Built during Run once the platform components are known.
	detector  *gesture.Detector
	navigator *navigator.Navigator

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means the
	// per-user default location.
	ConfigPath string

	// LogLevel overrides the configured logging verbosity.
	LogLevel string

	// Debug forces debug logging.
	Debug bool
}

// New creates an application with the given options. Platform components
// must be attached with SetWindow, SetTap, and SetMouse before Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes the platform-independent components.
func (app *Application) bootstrap() error {
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	level := cfg.LogLevel
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	if app.opts.Debug {
		level = "debug"
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	app.log = logging.New(logCfg)

	app.flags = state.NewFlags()
	app.signals = gesture.NewQueue()
	app.keys = key.NewQueue()

	app.log.WithField("config", path).Info("bootstrap complete")
	return nil
}

// SetWindow attaches the overlay window.
func (app *Application) SetWindow(win overlay.Window) {
	app.window = win
}

// SetTap attaches the global keyboard event tap.
func (app *Application) SetTap(tap gesture.Source) {
	app.tap = tap
}

// SetMouse attaches the system pointer.
func (app *Application) SetMouse(mouse click.Mouse) {
	app.mouse = mouse
}

// Config returns the loaded configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// Keys returns the local key queue the overlay window feeds.
func (app *Application) Keys() *key.Queue {
	return app.keys
}

// IsRunning returns true while Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run starts the tap and render goroutines, then blocks in the window's
// event loop until Shutdown or window close. Must be called from the main
// goroutine when the window implementation requires it.
func (app *Application) Run() error {
	if app.window == nil {
		return &InitError{Component: "window", Err: ErrComponentNotAvailable}
	}
	if app.tap == nil {
		return &InitError{Component: "event tap", Err: ErrComponentNotAvailable}
	}
	if app.mouse == nil {
		return &InitError{Component: "mouse", Err: ErrComponentNotAvailable}
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.wire(); err != nil {
		return err
	}

	go app.runTap()
	go app.runLoop()

	app.log.Info("entering window loop")
	err := app.window.Run()
	app.Shutdown()
	return err
}

// wire builds the components that need the attached platform pieces.
func (app *Application) wire() error {
	gestureCfg := gesture.DefaultConfig()
	gestureCfg.TapThreshold = app.cfg.TapThreshold

	detector, err := gesture.NewDetector(gestureCfg, app.flags, app.signals, app.mouse.Position, app.log)
	if err != nil {
		return &InitError{Component: "gesture detector", Err: err}
	}
	app.detector = detector

	guard, _ := app.window.(click.Guard)
	synth := click.NewSynthesizer(app.mouse, app.mouse, guard, app.log)

	navCfg := navigator.Config{
		MainCols:       app.cfg.MainCols,
		MainRows:       app.cfg.MainRows,
		SubCols:        app.cfg.SubCols,
		SubRows:        app.cfg.SubRows,
		ClickDelay:     app.cfg.ClickDelay,
		VisibleRepaint: app.cfg.VisibleRepaint,
		PendingRepaint: app.cfg.PendingRepaint,
		IdleRepaint:    app.cfg.IdleRepaint,
	}
	app.navigator = navigator.New(navCfg, app.flags, app.signals, app.window, synth, app.log)
	return nil
}

// runTap pumps global keyboard events through the gesture detector. A tap
// failure is fatal for the gesture path, so it tears the application down.
func (app *Application) runTap() {
	if err := app.tap.Run(app.detector.Handle); err != nil {
		select {
		case <-app.done:
			// Already shutting down.
		default:
			app.log.WithField("error", err.Error()).Error("event tap stopped")
			app.Shutdown()
		}
	}
}

// Shutdown stops the run loop and closes the window. Safe to call more than
// once and from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		if app.window != nil {
			app.window.Close()
		}
		app.log.Info("shutdown complete")
	})
}
