// Package state holds the atomic flags shared between the gesture detector
// goroutine and the render loop. The flags plus the gesture signal queue are
// the entire cross-goroutine contract; everything else is owned by exactly
// one goroutine.
package state

import "sync/atomic"

// Flags is the explicitly-passed set of shared booleans. Each field is an
// independent atomic; no ordering is implied between them.
//
// Visible is written by the navigator on show/hide and read by the detector
// to decide Escape handling and tap re-entrancy. HideRequested is a
// cross-goroutine command flag set by either side and consumed by the
// navigator once per tick. ModifierHeld is written only by the detector and
// read by the navigator at click time.
type Flags struct {
	visible       atomic.Bool
	hideRequested atomic.Bool
	modifierHeld  atomic.Bool
}

// NewFlags returns a Flags set with everything false.
func NewFlags() *Flags {
	return &Flags{}
}

// Visible reports whether the overlay is currently shown.
func (f *Flags) Visible() bool {
	return f.visible.Load()
}

// SetVisible records the overlay's shown/hidden state.
func (f *Flags) SetVisible(v bool) {
	f.visible.Store(v)
}

// RequestHide asks the navigator to hide the overlay on its next tick.
func (f *Flags) RequestHide() {
	f.hideRequested.Store(true)
}

// TakeHideRequest atomically reads and clears the hide request. It returns
// true at most once per request.
func (f *Flags) TakeHideRequest() bool {
	return f.hideRequested.CompareAndSwap(true, false)
}

// ClearHideRequest drops any pending hide request.
func (f *Flags) ClearHideRequest() {
	f.hideRequested.Store(false)
}

// ModifierHeld reports whether the click-button modifier is currently held.
func (f *Flags) ModifierHeld() bool {
	return f.modifierHeld.Load()
}

// SetModifierHeld records the modifier's held state.
func (f *Flags) SetModifierHeld(held bool) {
	f.modifierHeld.Store(held)
}
