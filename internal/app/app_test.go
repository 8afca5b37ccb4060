package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/keyleap/keyleap/internal/click"
	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/gesture"
	"github.com/keyleap/keyleap/internal/grid"
	"github.com/keyleap/keyleap/internal/input/key"
	"github.com/keyleap/keyleap/internal/overlay"
)

// channelTap feeds scripted global keyboard events into the detector from
// the test goroutine.
type channelTap struct {
	ch chan gesture.Event
}

func newChannelTap() *channelTap {
	return &channelTap{ch: make(chan gesture.Event, 16)}
}

func (t *channelTap) Run(handle func(gesture.Event) gesture.Verdict) error {
	for ev := range t.ch {
		handle(ev)
	}
	return nil
}

// tap sends a sub-threshold hotkey press and release.
func (t *channelTap) tap(code int64) {
	t.ch <- gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: code, FlagSet: true}
	t.ch <- gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: code, FlagSet: false}
}

type postedClick struct {
	point  geom.Point
	button click.Button
	press  bool
}

// recordingMouse is a click.Mouse double with a fixed pointer position.
type recordingMouse struct {
	mu    sync.Mutex
	pos   geom.Point
	posts []postedClick
}

func (m *recordingMouse) Move(p geom.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = p
	return nil
}

func (m *recordingMouse) Position() (geom.Point, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos, nil
}

func (m *recordingMouse) Post(p geom.Point, b click.Button, press bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, postedClick{point: p, button: b, press: press})
	return nil
}

func (m *recordingMouse) clicks() []postedClick {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]postedClick, len(m.posts))
	copy(out, m.posts)
	return out
}

// testConfigPath writes a config with short timings so the deferred click
// and render cadence resolve quickly under test.
func testConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
		"timing": {
			"click_delay_ms": 20,
			"visible_repaint_ms": 2,
			"pending_repaint_ms": 2,
			"idle_repaint_ms": 2
		},
		"log": {"level": "error"}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type harness struct {
	app   *Application
	win   *overlay.NullWindow
	tap   *channelTap
	mouse *recordingMouse
	done  chan error
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	a, err := New(Options{ConfigPath: testConfigPath(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	h := &harness{
		app:   a,
		win:   overlay.NewNullWindow(geom.Size{W: 1200, H: 1200}),
		tap:   newChannelTap(),
		mouse: &recordingMouse{pos: geom.Pt(5, 5)},
		done:  make(chan error, 1),
	}
	a.SetWindow(h.win)
	a.SetTap(h.tap)
	a.SetMouse(h.mouse)

	go func() { h.done <- a.Run() }()

	t.Cleanup(func() {
		a.Shutdown()
		close(h.tap.ch)
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Error("Run() did not return after Shutdown()")
		}
	})

	return h
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRunRequiresPlatformComponents(t *testing.T) {
	a, err := New(Options{ConfigPath: testConfigPath(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.Run(); !errors.Is(err, ErrComponentNotAvailable) {
		t.Errorf("Run() without window error = %v, want ErrComponentNotAvailable", err)
	}

	a.SetWindow(overlay.NewNullWindow(geom.Size{W: 100, H: 100}))
	if err := a.Run(); !errors.Is(err, ErrComponentNotAvailable) {
		t.Errorf("Run() without tap error = %v, want ErrComponentNotAvailable", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"grid": {"main_rows": 99}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var initErr *InitError
	if _, err := New(Options{ConfigPath: path}); !errors.As(err, &initErr) {
		t.Fatalf("New() error = %v, want InitError", err)
	}
}

func TestHotkeyTapShowsOverlay(t *testing.T) {
	h := newHarness(t)

	h.tap.tap(gesture.KeyCodeRightCommand)

	waitFor(t, "overlay to show", h.win.Visible)
	waitFor(t, "focus request", func() bool { return h.win.FocusCalls() > 0 })
	waitFor(t, "grid snapshot", func() bool {
		snap, ok := h.win.LastSnapshot()
		return ok && snap.Main.Ready()
	})
}

func TestFullSelectionClicksThroughPipeline(t *testing.T) {
	h := newHarness(t)

	h.tap.tap(gesture.KeyCodeRightCommand)
	waitFor(t, "overlay to show", h.win.Visible)

	h.app.Keys().Push(key.RuneEvent('a'))
	h.app.Keys().Push(key.RuneEvent('h'))
	h.app.Keys().Push(key.SpecialEvent(key.KeySpace))

	waitFor(t, "deferred click", func() bool { return len(h.mouse.clicks()) == 2 })

	if h.win.Visible() {
		t.Error("overlay still visible after click")
	}

	cfg := h.app.Config()
	layout, err := grid.Main(cfg.MainCols, cfg.MainRows, geom.RectOfSize(geom.Size{W: 1200, H: 1200}))
	if err != nil {
		t.Fatal(err)
	}
	rect, ok := layout.CellRect(layout.Find("AH"))
	if !ok {
		t.Fatal("cell AH not found")
	}
	want := rect.Center()

	posts := h.mouse.clicks()
	for i, p := range posts {
		if p.point != want {
			t.Errorf("post %d at %+v, want %+v", i, p.point, want)
		}
		if p.button != click.ButtonLeft {
			t.Errorf("post %d button = %v, want left", i, p.button)
		}
	}
	if !posts[0].press || posts[1].press {
		t.Error("expected press then release")
	}

	pos, _ := h.mouse.Position()
	if pos != want {
		t.Errorf("pointer at %+v, want moved to %+v", pos, want)
	}
}

func TestHeldShiftProducesRightClick(t *testing.T) {
	h := newHarness(t)

	h.tap.tap(gesture.KeyCodeRightCommand)
	waitFor(t, "overlay to show", h.win.Visible)

	h.tap.ch <- gesture.Event{Kind: gesture.KindFlagsChanged, KeyCode: gesture.KeyCodeLeftShift, FlagSet: true}

	h.app.Keys().Push(key.RuneEvent('a'))
	h.app.Keys().Push(key.RuneEvent('h'))
	h.app.Keys().Push(key.SpecialEvent(key.KeyEnter))

	waitFor(t, "deferred click", func() bool { return len(h.mouse.clicks()) == 2 })

	for i, p := range h.mouse.clicks() {
		if p.button != click.ButtonRight {
			t.Errorf("post %d button = %v, want right", i, p.button)
		}
	}
}

func TestEscapeHidesWithoutClicking(t *testing.T) {
	h := newHarness(t)

	h.tap.tap(gesture.KeyCodeRightCommand)
	waitFor(t, "overlay to show", h.win.Visible)

	// Escape arrives through the global tap while the overlay is visible.
	h.tap.ch <- gesture.Event{Kind: gesture.KindKeyDown, KeyCode: gesture.KeyCodeEscape}

	waitFor(t, "overlay to hide", func() bool { return !h.win.Visible() })

	time.Sleep(50 * time.Millisecond)
	if n := len(h.mouse.clicks()); n != 0 {
		t.Errorf("clicks after escape = %d, want 0", n)
	}
}

func TestSecondRunRejected(t *testing.T) {
	h := newHarness(t)

	waitFor(t, "run to start", h.app.IsRunning)
	if err := h.app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}
