package hooktap

import (
	"testing"

	hook "github.com/robotn/gohook"

	"github.com/keyleap/keyleap/internal/gesture"
	"github.com/keyleap/keyleap/internal/logging"
)

func newTestTap() *Tap {
	return New(logging.Null)
}

func TestTranslatePlainKeys(t *testing.T) {
	tap := newTestTap()

	tests := []struct {
		name string
		raw  hook.Event
		want gesture.Event
	}{
		{
			name: "key down",
			raw:  hook.Event{Kind: hook.KeyDown, Rawcode: 0},
			want: gesture.Event{Kind: gesture.KindKeyDown, KeyCode: 0},
		},
		{
			name: "key up",
			raw:  hook.Event{Kind: hook.KeyUp, Rawcode: 0},
			want: gesture.Event{Kind: gesture.KindKeyUp, KeyCode: 0},
		},
		{
			name: "escape key down",
			raw:  hook.Event{Kind: hook.KeyDown, Rawcode: 53},
			want: gesture.Event{Kind: gesture.KindKeyDown, KeyCode: 53},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tap.translate(tt.raw)
			if !ok {
				t.Fatal("expected event to translate")
			}
			if got != tt.want {
				t.Errorf("translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateModifierEdges(t *testing.T) {
	tap := newTestTap()

	down, ok := tap.translate(hook.Event{Kind: hook.KeyDown, Rawcode: 54})
	if !ok {
		t.Fatal("expected press edge")
	}
	want := gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: 54, FlagSet: true}
	if down != want {
		t.Errorf("press edge = %+v, want %+v", down, want)
	}

	up, ok := tap.translate(hook.Event{Kind: hook.KeyUp, Rawcode: 54})
	if !ok {
		t.Fatal("expected release edge")
	}
	want = gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: 54, FlagSet: false}
	if up != want {
		t.Errorf("release edge = %+v, want %+v", up, want)
	}
}

func TestTranslateModifierHoldCollapsesToOneEdge(t *testing.T) {
	tap := newTestTap()

	if _, ok := tap.translate(hook.Event{Kind: hook.KeyDown, Rawcode: 56}); !ok {
		t.Fatal("expected press edge")
	}
	for i := 0; i < 5; i++ {
		if _, ok := tap.translate(hook.Event{Kind: hook.KeyHold, Rawcode: 56}); ok {
			t.Fatalf("hold delivery %d produced a duplicate press edge", i)
		}
	}
	if _, ok := tap.translate(hook.Event{Kind: hook.KeyUp, Rawcode: 56}); !ok {
		t.Fatal("expected release edge after holds")
	}
}

func TestTranslateReleaseWithoutPressDropped(t *testing.T) {
	tap := newTestTap()

	if _, ok := tap.translate(hook.Event{Kind: hook.KeyUp, Rawcode: 54}); ok {
		t.Error("release without a tracked press should be dropped")
	}
}

func TestTranslateIgnoresNonKeyEvents(t *testing.T) {
	tap := newTestTap()

	if _, ok := tap.translate(hook.Event{Kind: hook.MouseMove}); ok {
		t.Error("mouse events should not translate")
	}
}

func TestTranslateIndependentModifiers(t *testing.T) {
	tap := newTestTap()

	if _, ok := tap.translate(hook.Event{Kind: hook.KeyDown, Rawcode: 54}); !ok {
		t.Fatal("expected right command press edge")
	}
	ev, ok := tap.translate(hook.Event{Kind: hook.KeyDown, Rawcode: 56})
	if !ok {
		t.Fatal("expected left shift press edge while command held")
	}
	if ev.KeyCode != 56 || !ev.FlagSet {
		t.Errorf("left shift edge = %+v", ev)
	}
}
