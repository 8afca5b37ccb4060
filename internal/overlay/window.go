// Package overlay abstracts the overlay window so the navigator, click
// synthesizer, and application wiring never touch the windowing framework
// directly. Implementations handle actual window management and painting.
package overlay

import (
	"errors"
	"sync"

	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/navigator"
)

// ErrPassThroughUnsupported is returned by windows that cannot toggle
// ignore-own-mouse-events. The click synthesizer logs it and proceeds.
var ErrPassThroughUnsupported = errors.New("overlay: mouse pass-through not supported")

// Window is the full overlay window contract. The navigator consumes the
// control subset; the click synthesizer consumes SetIgnoresMouse; the
// application owns Run/Close and pushes render snapshots.
type Window interface {
	// Run starts the windowing framework's loop and blocks until the
	// window is closed. Some frameworks require this on the main
	// goroutine.
	Run() error

	// Close tears the window down and unblocks Run.
	Close()

	// SetVisible shows or hides the window.
	SetVisible(visible bool)

	// Focus requests keyboard focus.
	Focus()

	// ContentSize returns the content dimensions used for grid layout.
	ContentSize() geom.Size

	// Origin returns the window's top-left corner in global screen
	// coordinates.
	Origin() geom.Point

	// SetIgnoresMouse toggles whether the window's own surface absorbs
	// mouse events.
	SetIgnoresMouse(ignore bool) error

	// Present hands the painter a fresh render snapshot.
	Present(snap navigator.Snapshot)
}

// NullWindow is a no-op window for tests. It records every call and is safe
// for use across goroutines.
type NullWindow struct {
	mu           sync.Mutex
	visible      bool
	focusCalls   int
	size         geom.Size
	origin       geom.Point
	ignoresMouse bool
	snapshots    []navigator.Snapshot
	closeCalls   int
	passThrough  bool
	runErr       error

	runUnblock chan struct{}
	closeOnce  sync.Once
}

// NewNullWindow creates a null window with the given content size.
func NewNullWindow(size geom.Size) *NullWindow {
	return &NullWindow{
		size:        size,
		passThrough: true,
		runUnblock:  make(chan struct{}),
	}
}

func (w *NullWindow) Run() error {
	<-w.runUnblock
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runErr
}

func (w *NullWindow) Close() {
	w.mu.Lock()
	w.closeCalls++
	w.mu.Unlock()
	w.closeOnce.Do(func() { close(w.runUnblock) })
}

func (w *NullWindow) SetVisible(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = visible
}

func (w *NullWindow) Focus() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focusCalls++
}

func (w *NullWindow) ContentSize() geom.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *NullWindow) Origin() geom.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.origin
}

func (w *NullWindow) SetIgnoresMouse(ignore bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.passThrough {
		return ErrPassThroughUnsupported
	}
	w.ignoresMouse = ignore
	return nil
}

func (w *NullWindow) Present(snap navigator.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshots = append(w.snapshots, snap)
}

// SetOrigin moves the window's reported global position.
func (w *NullWindow) SetOrigin(p geom.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.origin = p
}

// SetSize changes the reported content size.
func (w *NullWindow) SetSize(s geom.Size) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = s
}

// SetPassThrough controls whether SetIgnoresMouse succeeds.
func (w *NullWindow) SetPassThrough(ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.passThrough = ok
}

// SetRunErr sets the error Run returns once unblocked.
func (w *NullWindow) SetRunErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.runErr = err
}

// Visible reports the last SetVisible value.
func (w *NullWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// FocusCalls reports how many times Focus was called.
func (w *NullWindow) FocusCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focusCalls
}

// IgnoresMouse reports the last SetIgnoresMouse value.
func (w *NullWindow) IgnoresMouse() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ignoresMouse
}

// CloseCalls reports how many times Close was called.
func (w *NullWindow) CloseCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeCalls
}

// SnapshotCount reports how many snapshots were presented.
func (w *NullWindow) SnapshotCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.snapshots)
}

// LastSnapshot returns the most recent presented snapshot and whether one
// exists.
func (w *NullWindow) LastSnapshot() (navigator.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.snapshots) == 0 {
		return navigator.Snapshot{}, false
	}
	return w.snapshots[len(w.snapshots)-1], true
}
