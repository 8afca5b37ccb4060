// Package robotmouse implements the click package's pointer and injector
// interfaces on robotgo. robotgo talks to the OS event system directly, so
// every operation here is assumed to require the same accessibility
// permissions the global keyboard hook needs.
package robotmouse

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/keyleap/keyleap/internal/click"
	"github.com/keyleap/keyleap/internal/geom"
)

// Mouse drives the system pointer through robotgo.
type Mouse struct{}

// New returns a robotgo-backed mouse.
func New() *Mouse {
	return &Mouse{}
}

// Move places the pointer at the global point. robotgo reports no error for
// moves, so the new position is read back to detect a rejected move.
func (m *Mouse) Move(p geom.Point) error {
	robotgo.Move(int(p.X), int(p.Y))

	got, err := m.Position()
	if err != nil {
		return err
	}
	// Allow a pixel of rounding from float coordinates.
	if dx, dy := got.X-p.X, got.Y-p.Y; dx > 1 || dx < -1 || dy > 1 || dy < -1 {
		return fmt.Errorf("robotmouse: move to (%.0f, %.0f) landed at (%.0f, %.0f)", p.X, p.Y, got.X, got.Y)
	}
	return nil
}

// Position returns the current global pointer position.
func (m *Mouse) Position() (geom.Point, error) {
	x, y := robotgo.Location()
	return geom.Pt(float64(x), float64(y)), nil
}

// Post delivers a button press or release at the point. The pointer is
// already at p from Prepare; robotgo toggles the button at the current
// position.
func (m *Mouse) Post(p geom.Point, b click.Button, press bool) error {
	direction := "up"
	if press {
		direction = "down"
	}

	if err := robotgo.Toggle(buttonName(b), direction); err != nil {
		return fmt.Errorf("robotmouse: %s %s at (%.0f, %.0f): %w", b, direction, p.X, p.Y, err)
	}
	return nil
}

func buttonName(b click.Button) string {
	if b == click.ButtonRight {
		return "right"
	}
	return "left"
}

var _ click.Mouse = (*Mouse)(nil)
