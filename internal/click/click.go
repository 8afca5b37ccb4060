// Package click synthesizes pointer clicks at global screen coordinates.
// The pointer move, the button events, and the overlay's mouse-event
// pass-through are each behind small interfaces so the navigator's click
// path can be exercised without touching the OS.
package click

import (
	"fmt"

	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/logging"
)

// Button selects which mouse button a synthetic click uses.
type Button int

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = iota
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns the button name.
func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Pointer moves and queries the OS pointer.
type Pointer interface {
	// Move places the pointer at the global point.
	Move(p geom.Point) error
	// Position returns the current global pointer position.
	Position() (geom.Point, error)
}

// Injector posts synthetic button events into the OS input stream.
type Injector interface {
	// Post delivers a button press (press=true) or release at the point.
	Post(p geom.Point, b Button, press bool) error
}

// Guard toggles whether the overlay window ignores its own mouse events, so
// a synthetic click is not reabsorbed by the still-compositing overlay
// surface.
type Guard interface {
	SetIgnoresMouse(ignore bool) error
}

// Mouse combines pointer movement and event injection; the platform
// implementations provide both.
type Mouse interface {
	Pointer
	Injector
}

// Synthesizer performs the two halves of a deferred click: Prepare moves
// the pointer at scheduling time, Fire posts the press/release pair once
// the overlay is out of the way.
type Synthesizer struct {
	pointer  Pointer
	injector Injector
	guard    Guard
	log      *logging.Logger
}

// NewSynthesizer wires a synthesizer. guard may be nil when the window
// cannot toggle mouse pass-through.
func NewSynthesizer(pointer Pointer, injector Injector, guard Guard, log *logging.Logger) *Synthesizer {
	if log == nil {
		log = logging.Null
	}
	return &Synthesizer{
		pointer:  pointer,
		injector: injector,
		guard:    guard,
		log:      log.WithComponent("click"),
	}
}

// Prepare moves the pointer to the click target. Moving early is harmless
// while the overlay still covers the screen, and a failure here means the
// whole click sequence must be abandoned.
func (s *Synthesizer) Prepare(p geom.Point) error {
	if err := s.pointer.Move(p); err != nil {
		return fmt.Errorf("move pointer to (%.0f, %.0f): %w", p.X, p.Y, err)
	}
	s.log.Debug("pointer moved to (%.0f, %.0f)", p.X, p.Y)
	return nil
}

// Fire posts the press/release pair at the point. The pass-through toggle
// and each half of the pair are independently fallible: failures are logged
// and the remaining steps still run, so a failed press never leaves the
// window ignoring its own mouse events.
func (s *Synthesizer) Fire(p geom.Point, b Button) {
	if s.guard != nil {
		if err := s.guard.SetIgnoresMouse(true); err != nil {
			s.log.Warn("enable mouse pass-through: %v", err)
		}
	}

	if err := s.injector.Post(p, b, true); err != nil {
		s.log.Error("post %s button down: %v", b, err)
	} else {
		s.log.Debug("posted %s button down", b)
	}
	if err := s.injector.Post(p, b, false); err != nil {
		s.log.Error("post %s button up: %v", b, err)
	} else {
		s.log.Debug("posted %s button up", b)
	}

	if s.guard != nil {
		if err := s.guard.SetIgnoresMouse(false); err != nil {
			s.log.Warn("restore mouse handling: %v", err)
		}
	}
}
