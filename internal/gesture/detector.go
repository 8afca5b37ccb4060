package gesture

import (
	"errors"
	"time"

	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/logging"
	"github.com/keyleap/keyleap/internal/state"
)

// DefaultTapThreshold is the longest press-to-release interval still
// classified as a tap. Longer presses mean the key was held for a chord.
const DefaultTapThreshold = 200 * time.Millisecond

// ErrNilFlags indicates a Detector was constructed without shared flags.
var ErrNilFlags = errors.New("gesture: shared flags are required")

// Config selects the monitored keys and the tap window.
type Config struct {
	// HotkeyCode is the modifier whose tap summons the overlay.
	HotkeyCode int64
	// ModifierCode is the auxiliary modifier tracked for click-button
	// selection.
	ModifierCode int64
	// EscapeCode is the key that hides the overlay while visible.
	EscapeCode int64
	// TapThreshold is the press-to-release window for a tap.
	TapThreshold time.Duration
}

// DefaultConfig returns the reference key assignment: tap right command to
// show, hold left shift for a right click, escape to hide.
func DefaultConfig() Config {
	return Config{
		HotkeyCode:   KeyCodeRightCommand,
		ModifierCode: KeyCodeLeftShift,
		EscapeCode:   KeyCodeEscape,
		TapThreshold: DefaultTapThreshold,
	}
}

// PositionFunc queries the current global pointer position. Used to attach
// a best-effort cursor position to show signals.
type PositionFunc func() (geom.Point, error)

// Detector classifies raw key events into overlay signals. All state is
// owned by the goroutine pumping Handle; only the shared flags and the
// signal queue cross goroutines.
type Detector struct {
	cfg     Config
	flags   *state.Flags
	signals *Queue
	log     *logging.Logger

	cursorPos PositionFunc
	now       func() time.Time

	// pressStart is when the monitored hotkey's current press began; the
	// zero value means no press is open.
	pressStart time.Time
}

// NewDetector creates a detector writing to flags and signals. cursorPos may
// be nil, in which case show signals carry no cursor position.
func NewDetector(cfg Config, flags *state.Flags, signals *Queue, cursorPos PositionFunc, log *logging.Logger) (*Detector, error) {
	if flags == nil {
		return nil, ErrNilFlags
	}
	if signals == nil {
		signals = NewQueue()
	}
	if log == nil {
		log = logging.Null
	}
	if cfg.TapThreshold <= 0 {
		cfg.TapThreshold = DefaultTapThreshold
	}
	return &Detector{
		cfg:       cfg,
		flags:     flags,
		signals:   signals,
		log:       log.WithComponent("gesture"),
		cursorPos: cursorPos,
		now:       time.Now,
	}, nil
}

// Signals returns the queue show signals are delivered on.
func (d *Detector) Signals() *Queue {
	return d.signals
}

// Run pumps the source into Handle. It blocks until the source fails; in
// normal operation it never returns.
func (d *Detector) Run(src Source) error {
	d.log.Info("global event listener started")
	return src.Run(d.Handle)
}

// Handle classifies one event and returns the verdict for it. It must only
// be called from a single goroutine.
func (d *Detector) Handle(ev Event) Verdict {
	// Escape hides the overlay and must not leak to the application
	// beneath it. This is the only event ever swallowed.
	if d.flags.Visible() && ev.Kind == KindKeyDown && ev.KeyCode == d.cfg.EscapeCode {
		d.log.Debug("escape pressed, requesting hide")
		d.flags.RequestHide()
		return Swallow
	}

	switch ev.Kind {
	case KindFlagsChanged:
		d.handleFlagsChanged(ev)
	case KindKeyDown:
		// A non-modifier key while the hotkey press is open means the
		// hotkey is being used for a chord, not a tap.
		if !d.pressStart.IsZero() && !IsModifierKeyCode(ev.KeyCode) && ev.KeyCode != d.cfg.HotkeyCode {
			d.log.Debug("key %d pressed during pending tap, cancelling", ev.KeyCode)
			d.pressStart = time.Time{}
		}
	case KindKeyUp:
		// Releases of unrelated keys carry no information for us.
	}
	return Pass
}

func (d *Detector) handleFlagsChanged(ev Event) {
	switch ev.KeyCode {
	case d.cfg.HotkeyCode:
		if ev.FlagSet {
			if d.pressStart.IsZero() {
				d.pressStart = d.now()
			}
			return
		}
		d.hotkeyReleased()
	case d.cfg.ModifierCode:
		d.flags.SetModifierHeld(ev.FlagSet)
	default:
		// Another modifier changing during the pending press means a
		// chord is being formed; the press no longer counts as a tap.
		if !d.pressStart.IsZero() {
			d.log.Debug("modifier %d changed during pending tap, cancelling", ev.KeyCode)
			d.pressStart = time.Time{}
		}
	}
}

func (d *Detector) hotkeyReleased() {
	if d.pressStart.IsZero() {
		return
	}
	elapsed := d.now().Sub(d.pressStart)
	d.pressStart = time.Time{}

	if elapsed >= d.cfg.TapThreshold {
		d.log.Debug("hotkey held %v, not a tap", elapsed)
		return
	}
	if d.flags.Visible() {
		d.log.Debug("tap ignored, overlay already visible")
		return
	}

	sig := Signal{Kind: SignalShow}
	if d.cursorPos != nil {
		if pos, err := d.cursorPos(); err != nil {
			// Best effort only: the signal is still emitted.
			d.log.Warn("cursor position query failed: %v", err)
		} else {
			sig.Cursor = &pos
		}
	}
	d.log.Debug("tap detected (%v), signalling show", elapsed)
	d.signals.Push(sig)
}
