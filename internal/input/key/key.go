// Package key defines the window-local keyboard event model the overlay
// navigator consumes. It covers only the keys the grid state machine reacts
// to: label characters, the confirm keys, and Escape.
package key

import (
	"fmt"
	"unicode"
)

// Key identifies a key in a local window event.
type Key int

const (
	// KeyNone is the zero value.
	KeyNone Key = iota
	// KeyRune is a printable character (use the Rune field).
	KeyRune
	// KeyEscape is the Escape key.
	KeyEscape
	// KeyEnter is the Return/Enter key.
	KeyEnter
	// KeySpace is the space bar.
	KeySpace
)

// Event is a single key press delivered by the overlay window.
type Event struct {
	Key  Key
	Rune rune
}

// RuneEvent creates an event for a character key. Letters are normalized to
// upper case so they compare directly against grid labels.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToUpper(r)}
}

// SpecialEvent creates an event for a non-character key.
func SpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsLetter returns true if this is a letter usable in a grid label.
func (e Event) IsLetter() bool {
	return e.IsRune() && e.Rune >= 'A' && e.Rune <= 'Z'
}

// IsConfirm returns true for the keys that confirm the current selection
// without picking a finer cell.
func (e Event) IsConfirm() bool {
	return e.Key == KeySpace || e.Key == KeyEnter
}

// IsEscape returns true if this is the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// String returns a readable representation for logging.
func (e Event) String() string {
	switch e.Key {
	case KeyRune:
		return string(e.Rune)
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	default:
		return fmt.Sprintf("Key(%d)", int(e.Key))
	}
}
