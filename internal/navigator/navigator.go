// Package navigator owns the overlay's render-loop state machine. It turns
// gesture signals and window-local keystrokes into grid selections and a
// deferred synthetic click.
//
// All navigator state is mutated from a single goroutine: the render loop
// calls Tick once per repaint interval and HandleKey for each queued local
// key event. The only cross-goroutine inputs are the shared flags and the
// gesture signal queue, both designed for non-blocking access.
package navigator

import (
	"time"

	"github.com/keyleap/keyleap/internal/click"
	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/gesture"
	"github.com/keyleap/keyleap/internal/grid"
	"github.com/keyleap/keyleap/internal/input/key"
	"github.com/keyleap/keyleap/internal/logging"
	"github.com/keyleap/keyleap/internal/state"
)

// Mode is the navigator's current state.
type Mode int

const (
	// ModeIdle means the overlay is hidden and nothing is pending.
	ModeIdle Mode = iota
	// ModeMainGrid means the coarse grid is shown and collecting a
	// two-character label.
	ModeMainGrid
	// ModeSubGrid means a refined grid is shown inside the selected main
	// cell.
	ModeSubGrid
	// ModePendingClick means the overlay is hiding (or hidden) and a
	// click is waiting for the post-hide delay.
	ModePendingClick
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeMainGrid:
		return "MainGrid"
	case ModeSubGrid:
		return "SubGrid"
	case ModePendingClick:
		return "PendingClick"
	default:
		return "Unknown"
	}
}

// Window is the subset of overlay window control the navigator drives.
// Implementations must tolerate calls from the render-loop goroutine.
type Window interface {
	// SetVisible shows or hides the overlay window.
	SetVisible(visible bool)
	// Focus requests keyboard focus for the overlay window.
	Focus()
	// ContentSize returns the window's content dimensions for layout.
	ContentSize() geom.Size
	// Origin returns the window's top-left corner in global screen
	// coordinates, for local-to-global conversion.
	Origin() geom.Point
}

// Clicker is the deferred-click collaborator.
type Clicker interface {
	// Prepare moves the pointer to the target; failure aborts the click.
	Prepare(p geom.Point) error
	// Fire posts the press/release pair.
	Fire(p geom.Point, b click.Button)
}

// Config carries the grid dimensions and timing knobs.
type Config struct {
	MainCols, MainRows int
	SubCols, SubRows   int

	// ClickDelay is how long after the window hides the pending click
	// waits before firing, so the compositor has unmapped the overlay.
	ClickDelay time.Duration

	// VisibleRepaint, PendingRepaint, and IdleRepaint are the repaint
	// request intervals for the shown, waiting-to-click, and hidden
	// states respectively.
	VisibleRepaint time.Duration
	PendingRepaint time.Duration
	IdleRepaint    time.Duration
}

// DefaultConfig returns the reference 12x12 main / 5x5 sub configuration.
func DefaultConfig() Config {
	return Config{
		MainCols:       12,
		MainRows:       12,
		SubCols:        5,
		SubRows:        5,
		ClickDelay:     150 * time.Millisecond,
		VisibleRepaint: 16 * time.Millisecond,
		PendingRepaint: 20 * time.Millisecond,
		IdleRepaint:    50 * time.Millisecond,
	}
}

// Navigator is the overlay state machine. Create with New; drive with Tick
// and HandleKey from one goroutine.
type Navigator struct {
	cfg     Config
	flags   *state.Flags
	signals *gesture.Queue
	win     Window
	clicker Clicker
	log     *logging.Logger

	mode     Mode
	buffer   string
	selected int // index of the chosen main cell, -1 when none

	main       grid.Layout
	sub        grid.Layout
	lastLayout geom.Size

	// pendingClick is the global click target; nil unless a click has
	// been scheduled. hideInitiatedAt starts the post-hide delay.
	pendingClick    *geom.Point
	hideInitiatedAt time.Time
}

// New wires a navigator. The window and clicker must be non-nil.
func New(cfg Config, flags *state.Flags, signals *gesture.Queue, win Window, clicker Clicker, log *logging.Logger) *Navigator {
	if log == nil {
		log = logging.Null
	}
	if cfg.ClickDelay <= 0 {
		cfg.ClickDelay = DefaultConfig().ClickDelay
	}
	if cfg.VisibleRepaint <= 0 {
		cfg.VisibleRepaint = DefaultConfig().VisibleRepaint
	}
	if cfg.PendingRepaint <= 0 {
		cfg.PendingRepaint = DefaultConfig().PendingRepaint
	}
	if cfg.IdleRepaint <= 0 {
		cfg.IdleRepaint = DefaultConfig().IdleRepaint
	}
	return &Navigator{
		cfg:      cfg,
		flags:    flags,
		signals:  signals,
		win:      win,
		clicker:  clicker,
		log:      log.WithComponent("navigator"),
		mode:     ModeIdle,
		selected: -1,
	}
}

// Mode returns the current state. Render-loop goroutine only.
func (n *Navigator) Mode() Mode {
	return n.mode
}

// Tick advances the state machine once and returns how long the render loop
// should wait before the next tick.
func (n *Navigator) Tick(now time.Time) time.Duration {
	// At most one gesture signal per tick.
	if sig, ok := n.signals.TryPop(); ok {
		n.handleSignal(sig)
	}

	if n.flags.TakeHideRequest() {
		n.serviceHide(now)
	}

	if n.mode == ModePendingClick {
		return n.servicePendingClick(now)
	}

	if !n.flags.Visible() {
		return n.cfg.IdleRepaint
	}

	n.relayoutIfNeeded()
	return n.cfg.VisibleRepaint
}

func (n *Navigator) handleSignal(sig gesture.Signal) {
	if sig.Kind != gesture.SignalShow {
		return
	}
	// Re-entrant shows are dropped both here and in the detector; the
	// overlay must not reset while the user is mid-selection.
	if n.flags.Visible() {
		return
	}
	if sig.Cursor != nil {
		n.log.Info("showing overlay (cursor at %.0f, %.0f)", sig.Cursor.X, sig.Cursor.Y)
	} else {
		n.log.Info("showing overlay")
	}
	n.flags.SetVisible(true)
	n.flags.ClearHideRequest()
	n.mode = ModeMainGrid
	n.buffer = ""
	n.selected = -1
	n.main = grid.Layout{}
	n.sub = grid.Layout{}
	n.lastLayout = geom.Size{}
	n.win.SetVisible(true)
	n.win.Focus()
}

// serviceHide handles an observed hide request. Hiding with a click pending
// starts the deferred-click wait; otherwise the navigator returns to idle.
func (n *Navigator) serviceHide(now time.Time) {
	if n.flags.Visible() {
		n.log.Info("hiding overlay")
		n.flags.SetVisible(false)
		n.win.SetVisible(false)
		n.buffer = ""
		n.selected = -1
		if n.pendingClick != nil {
			n.mode = ModePendingClick
			n.hideInitiatedAt = now
		} else {
			n.mode = ModeIdle
		}
		return
	}

	// Hide requested while already hidden: drop any stale click.
	if n.pendingClick != nil {
		n.log.Debug("clearing stale pending click")
		n.pendingClick = nil
	}
	n.mode = ModeIdle
}

// servicePendingClick fires the deferred click once the window is hidden
// and the post-hide delay has elapsed. Both conditions must hold.
func (n *Navigator) servicePendingClick(now time.Time) time.Duration {
	if n.pendingClick == nil {
		n.mode = ModeIdle
		return n.cfg.IdleRepaint
	}
	if n.flags.Visible() || now.Sub(n.hideInitiatedAt) < n.cfg.ClickDelay {
		return n.cfg.PendingRepaint
	}

	target := *n.pendingClick
	n.pendingClick = nil
	n.mode = ModeIdle

	// The modifier is read exactly once, here at synthesis time.
	button := click.ButtonLeft
	if n.flags.ModifierHeld() {
		button = click.ButtonRight
	}
	n.log.Info("firing %s click at (%.0f, %.0f)", button, target.X, target.Y)
	n.clicker.Fire(target, button)
	return n.cfg.IdleRepaint
}

// relayoutIfNeeded recomputes the grids when no geometry exists yet or the
// window content size changed since the last layout pass. Only size is
// compared; moving the window without resizing does not trigger relayout.
func (n *Navigator) relayoutIfNeeded() {
	size := n.win.ContentSize()
	if n.main.Ready() && size == n.lastLayout {
		return
	}

	n.log.Debug("recomputing layout for %vx%v", size.W, size.H)
	main, err := grid.Main(n.cfg.MainCols, n.cfg.MainRows, geom.RectOfSize(size))
	if err != nil {
		// Dimensions are validated at startup; reaching this means the
		// configuration changed out from under us.
		n.log.Error("main grid layout: %v", err)
		return
	}
	n.main = main
	n.lastLayout = size

	if n.mode == ModeSubGrid {
		// The selected cell may have shifted, or vanished entirely if
		// the grid shrank; fall back to the main grid in that case.
		rect, ok := n.main.CellRect(n.selected)
		if !ok {
			n.log.Debug("selection %d stale after resize, back to main grid", n.selected)
			n.selected = -1
			n.sub = grid.Layout{}
			n.mode = ModeMainGrid
			return
		}
		n.sub = grid.Sub(n.cfg.SubCols, n.cfg.SubRows, rect)
	}
}

// HandleKey consumes one window-local key event. Unrecognized input clears
// the buffer and stays in the current state; it is never an error.
func (n *Navigator) HandleKey(ev key.Event) {
	if !n.flags.Visible() {
		return
	}

	switch n.mode {
	case ModeMainGrid:
		n.handleMainKey(ev)
	case ModeSubGrid:
		n.handleSubKey(ev)
	default:
	}
}

func (n *Navigator) handleMainKey(ev key.Event) {
	if !ev.IsLetter() {
		return
	}
	n.buffer += string(ev.Rune)
	if len(n.buffer) < 2 {
		return
	}

	label := n.buffer
	n.buffer = ""
	idx := n.main.Find(label)
	if idx < 0 {
		n.log.Debug("no cell labelled %q", label)
		return
	}
	rect, ok := n.main.CellRect(idx)
	if !ok {
		// Labels exist before geometry does; without rects there is
		// nothing to refine yet.
		return
	}
	n.selected = idx
	n.sub = grid.Sub(n.cfg.SubCols, n.cfg.SubRows, rect)
	n.mode = ModeSubGrid
	n.log.Debug("selected main cell %d (%s)", idx, label)
}

func (n *Navigator) handleSubKey(ev key.Event) {
	if ev.IsConfirm() {
		// Confirm clicks the center of the selected main cell.
		if rect, ok := n.main.CellRect(n.selected); ok {
			n.scheduleClick(rect.Center())
		}
		return
	}
	if !ev.IsLetter() {
		return
	}
	idx := n.sub.Find(string(ev.Rune))
	if idx < 0 {
		n.log.Debug("no sub cell labelled %q", ev.Rune)
		return
	}
	rect, ok := n.sub.CellRect(idx)
	if !ok {
		return
	}
	n.scheduleClick(rect.Center())
}

// scheduleClick converts a window-local point to global coordinates, moves
// the pointer, and requests a hide. The click itself fires later, once the
// window is confirmed hidden.
func (n *Navigator) scheduleClick(local geom.Point) {
	global := n.win.Origin().Add(local)

	if err := n.clicker.Prepare(global); err != nil {
		// Without pointer movement the click would land wherever the
		// cursor happens to be; abandon it and just hide.
		n.log.Error("click aborted: %v", err)
		n.pendingClick = nil
		n.flags.RequestHide()
		return
	}

	n.log.Debug("click queued at (%.0f, %.0f)", global.X, global.Y)
	n.pendingClick = &global
	n.flags.RequestHide()
}
