// Package hooktap adapts the gohook global keyboard hook to the gesture
// event model. gohook observes events after the system has already queued
// them for delivery, so the Swallow verdict is recorded but cannot stop
// delivery; the overlay window owning keyboard focus while visible is what
// keeps grid keystrokes out of other applications.
package hooktap

import (
	"errors"

	hook "github.com/robotn/gohook"

	"github.com/keyleap/keyleap/internal/gesture"
	"github.com/keyleap/keyleap/internal/logging"
)

// ErrAlreadyRunning reports a second Run on the same tap.
var ErrAlreadyRunning = errors.New("hooktap: event tap already running")

// ErrChannelClosed reports that the hook's event channel closed unexpectedly.
var ErrChannelClosed = errors.New("hooktap: hook event channel closed")

// Tap is a gesture.Source backed by a process-wide gohook keyboard hook.
type Tap struct {
	log     *logging.Logger
	running bool

	// modifierDown tracks press state per raw code so repeated KeyHold
	// deliveries for a held modifier produce a single press edge.
	modifierDown map[int64]bool
}

// New creates an event tap. Run must be called exactly once.
func New(log *logging.Logger) *Tap {
	if log == nil {
		log = logging.Null
	}
	return &Tap{
		log:          log.WithComponent("hooktap"),
		modifierDown: make(map[int64]bool),
	}
}

// Run starts the global hook and pumps events into handle until the hook
// channel closes. Blocks the calling goroutine.
func (t *Tap) Run(handle func(gesture.Event) gesture.Verdict) error {
	if t.running {
		return ErrAlreadyRunning
	}
	t.running = true

	t.log.Info("starting global keyboard hook")
	events := hook.Start()
	defer hook.End()

	for raw := range events {
		ev, ok := t.translate(raw)
		if !ok {
			continue
		}
		if handle(ev) == gesture.Swallow {
			// Listen-only hook; log at debug so focus problems that
			// leak grid keystrokes are diagnosable.
			t.log.WithField("keycode", ev.KeyCode).Debug("swallow requested (listen-only tap, best effort)")
		}
	}

	t.running = false
	return ErrChannelClosed
}

// translate maps a raw hook event onto the gesture model. Modifier keys
// arrive as ordinary key events from gohook and are folded into flag
// transitions with explicit press and release edges.
func (t *Tap) translate(raw hook.Event) (gesture.Event, bool) {
	code := int64(raw.Rawcode)

	switch raw.Kind {
	case hook.KeyDown, hook.KeyHold:
		if gesture.IsModifierKeyCode(code) {
			if t.modifierDown[code] {
				return gesture.Event{}, false
			}
			t.modifierDown[code] = true
			return gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: code, FlagSet: true}, true
		}
		return gesture.Event{Kind: gesture.KindKeyDown, KeyCode: code}, true

	case hook.KeyUp:
		if gesture.IsModifierKeyCode(code) {
			if !t.modifierDown[code] {
				return gesture.Event{}, false
			}
			t.modifierDown[code] = false
			return gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: code, FlagSet: false}, true
		}
		return gesture.Event{Kind: gesture.KindKeyUp, KeyCode: code}, true

	default:
		return gesture.Event{}, false
	}
}

var _ gesture.Source = (*Tap)(nil)
