// Package gesture classifies hardware-level keyboard events from a
// process-wide event tap into high-level overlay signals. The detector runs
// on its own goroutine, never consumes events it does not care about, and
// communicates with the render loop only through shared atomic flags and a
// signal queue.
package gesture

// Kind enumerates the hardware-level event classes the detector consumes.
type Kind int

const (
	// KindKeyDown is a non-modifier key press.
	KindKeyDown Kind = iota
	// KindKeyUp is a non-modifier key release.
	KindKeyUp
	// KindFlagsChanged is a modifier key flag transition.
	KindFlagsChanged
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindKeyDown:
		return "KeyDown"
	case KindKeyUp:
		return "KeyUp"
	case KindFlagsChanged:
		return "FlagsChanged"
	default:
		return "Unknown"
	}
}

// Event is one hardware-level keyboard event as reported by the global tap.
// FlagSet is meaningful only for KindFlagsChanged and reports whether the
// modifier flag for KeyCode is set after the transition (true on press edge,
// false on release edge).
type Event struct {
	Kind    Kind
	KeyCode int64
	FlagSet bool
}

// Verdict tells the tap what to do with an observed event.
type Verdict int

const (
	// Pass returns the event to the system unmodified.
	Pass Verdict = iota
	// Swallow suppresses delivery of the event, where the platform allows.
	Swallow
)

// Source is a process-wide, listen-before-delivery keyboard event tap.
// Run pumps events into handle until the pump fails; in normal operation it
// blocks the calling goroutine for the process lifetime. Implementations
// honor the handler's verdict where the platform supports suppression.
type Source interface {
	Run(handle func(Event) Verdict) error
}

// macOS virtual key codes for the keys the detector monitors, from the
// reference behavior on that platform.
const (
	KeyCodeRightCommand int64 = 54
	KeyCodeLeftShift    int64 = 56
	KeyCodeEscape       int64 = 53
)

// modifier key codes occupy a contiguous range on macOS (command through fn).
const (
	modifierCodeLow  int64 = 54
	modifierCodeHigh int64 = 63
)

// IsModifierKeyCode reports whether code identifies a modifier key.
func IsModifierKeyCode(code int64) bool {
	return code >= modifierCodeLow && code <= modifierCodeHigh
}
