package state

import "testing"

func TestFlagsDefaults(t *testing.T) {
	f := NewFlags()
	if f.Visible() {
		t.Error("Visible should default to false")
	}
	if f.ModifierHeld() {
		t.Error("ModifierHeld should default to false")
	}
	if f.TakeHideRequest() {
		t.Error("TakeHideRequest should be false with no request")
	}
}

func TestTakeHideRequestClears(t *testing.T) {
	f := NewFlags()
	f.RequestHide()

	if !f.TakeHideRequest() {
		t.Fatal("first TakeHideRequest should return true")
	}
	if f.TakeHideRequest() {
		t.Error("second TakeHideRequest should return false")
	}
}

func TestClearHideRequest(t *testing.T) {
	f := NewFlags()
	f.RequestHide()
	f.ClearHideRequest()

	if f.TakeHideRequest() {
		t.Error("TakeHideRequest should be false after ClearHideRequest")
	}
}

func TestVisibleRoundTrip(t *testing.T) {
	f := NewFlags()
	f.SetVisible(true)
	if !f.Visible() {
		t.Error("Visible should be true after SetVisible(true)")
	}
	f.SetVisible(false)
	if f.Visible() {
		t.Error("Visible should be false after SetVisible(false)")
	}
}
