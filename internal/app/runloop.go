package app

import (
	"time"

	"github.com/keyleap/keyleap/internal/navigator"
)

// runLoop owns the navigator. Each pass drains local key input, advances the
// state machine, pushes a render snapshot when something is on screen, and
// sleeps for the interval the navigator asks for (fast while visible, slow
// while idle).
func (app *Application) runLoop() {
	timer := time.NewTimer(0)
	defer timer.Stop()

	lastMode := navigator.ModeIdle

	for {
		select {
		case <-app.done:
			return
		case <-timer.C:
		}

		for _, ev := range app.keys.Drain() {
			app.navigator.HandleKey(ev)
		}

		next := app.navigator.Tick(time.Now())

		// Repaint whenever the overlay has content, plus one final paint
		// on the transition out so the grids are cleared.
		mode := app.navigator.Mode()
		if mode != navigator.ModeIdle || lastMode != navigator.ModeIdle {
			app.window.Present(app.navigator.Snapshot())
		}
		lastMode = mode

		timer.Reset(next)
	}
}
