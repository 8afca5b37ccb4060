package navigator

import "github.com/keyleap/keyleap/internal/grid"

// Snapshot is an immutable copy of the render state for the painter. Layout
// slices are shared but never mutated after a layout pass, so the painter
// may read them from the UI thread.
type Snapshot struct {
	Mode         Mode
	Main         grid.Layout
	Sub          grid.Layout
	SelectedMain int
	Buffer       string
}

// Snapshot returns the current render state. Render-loop goroutine only.
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Mode:         n.mode,
		Main:         n.main,
		Sub:          n.sub,
		SelectedMain: n.selected,
		Buffer:       n.buffer,
	}
}
