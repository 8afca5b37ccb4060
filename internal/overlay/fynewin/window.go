// Package fynewin implements the overlay window on fyne. The window is an
// undecorated full-screen surface that starts hidden; a custom canvas widget
// paints the grids from navigator snapshots pushed by the render loop.
//
// Window chrome is configured once at construction and is not part of the
// core state machine. fyne exposes neither the window's screen position nor
// a mouse pass-through toggle, so Origin reports the full-screen origin and
// SetIgnoresMouse reports ErrPassThroughUnsupported (the click synthesizer
// logs and continues; the window is already hidden when a click fires).
package fynewin

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/input/key"
	"github.com/keyleap/keyleap/internal/logging"
	"github.com/keyleap/keyleap/internal/navigator"
	"github.com/keyleap/keyleap/internal/overlay"
)

// Window drives a fyne window as the overlay surface.
type Window struct {
	app    fyne.App
	win    fyne.Window
	canvas *gridCanvas
	keys   *key.Queue
	log    *logging.Logger
}

// New creates the overlay window. Local key presses are pushed onto keys
// for the render loop to drain. The window stays hidden until the first
// SetVisible(true).
func New(title string, keys *key.Queue, log *logging.Logger) *Window {
	if log == nil {
		log = logging.Null
	}

	a := app.New()
	win := a.NewWindow(title)

	w := &Window{
		app:    a,
		win:    win,
		canvas: newGridCanvas(),
		keys:   keys,
		log:    log.WithComponent("window"),
	}

	win.SetPadded(false)
	win.SetFullScreen(true)
	win.SetContent(w.canvas)

	win.Canvas().SetOnTypedRune(func(r rune) {
		w.keys.Push(key.RuneEvent(r))
	})
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			w.keys.Push(key.SpecialEvent(key.KeyEscape))
		case fyne.KeyReturn, fyne.KeyEnter:
			w.keys.Push(key.SpecialEvent(key.KeyEnter))
		case fyne.KeySpace:
			w.keys.Push(key.SpecialEvent(key.KeySpace))
		}
	})

	return w
}

// Run starts the fyne event loop. Must be called from the main goroutine;
// blocks until Close.
func (w *Window) Run() error {
	w.log.Info("starting window loop (initially hidden)")
	// fyne shows the window implicitly on Run via ShowAndRun only; with
	// Run alone the window stays hidden until SetVisible.
	w.app.Run()
	return nil
}

// Close quits the fyne application and unblocks Run.
func (w *Window) Close() {
	w.app.Quit()
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	if visible {
		w.win.Show()
		return
	}
	w.win.Hide()
}

// Focus requests keyboard focus for the window.
func (w *Window) Focus() {
	w.win.RequestFocus()
}

// ContentSize returns the canvas dimensions for layout.
func (w *Window) ContentSize() geom.Size {
	s := w.win.Canvas().Size()
	return geom.Size{W: float64(s.Width), H: float64(s.Height)}
}

// Origin returns the window's global top-left corner. The overlay is a
// full-screen window, so its origin is the screen origin.
func (w *Window) Origin() geom.Point {
	return geom.Point{}
}

// SetIgnoresMouse is not supported by fyne.
func (w *Window) SetIgnoresMouse(bool) error {
	return overlay.ErrPassThroughUnsupported
}

// Present stores a render snapshot and repaints.
func (w *Window) Present(snap navigator.Snapshot) {
	w.canvas.setSnapshot(snap)
}

var _ overlay.Window = (*Window)(nil)
