package fynewin

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/keyleap/keyleap/internal/geom"
	"github.com/keyleap/keyleap/internal/grid"
	"github.com/keyleap/keyleap/internal/navigator"
)

var (
	mainCellFill = color.NRGBA{R: 50, G: 50, B: 50, A: 180}
	dimCellFill  = color.NRGBA{R: 30, G: 30, B: 30, A: 100}
	subCellFill  = color.NRGBA{R: 70, G: 70, B: 20, A: 220}
	cellStroke   = color.NRGBA{R: 220, G: 220, B: 220, A: 150}
	labelColor   = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
)

// gridCanvas paints navigator snapshots. The object list is rebuilt on every
// snapshot because the cell count changes between modes.
type gridCanvas struct {
	widget.BaseWidget

	mu   sync.Mutex
	snap navigator.Snapshot
}

func newGridCanvas() *gridCanvas {
	c := &gridCanvas{}
	c.ExtendBaseWidget(c)
	return c
}

// setSnapshot stores the latest render state and repaints. Safe to call from
// the render-loop goroutine.
func (c *gridCanvas) setSnapshot(snap navigator.Snapshot) {
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	c.Refresh()
}

func (c *gridCanvas) snapshot() navigator.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// CreateRenderer builds the vector objects we position manually.
func (c *gridCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &gridRenderer{canvas: c}
}

type gridRenderer struct {
	canvas  *gridCanvas
	objects []fyne.CanvasObject
}

func (r *gridRenderer) Destroy() {}

func (r *gridRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gridRenderer) MinSize() fyne.Size { return fyne.NewSize(200, 200) }

func (r *gridRenderer) Layout(fyne.Size) {}

// Refresh rebuilds the object list from the current snapshot.
func (r *gridRenderer) Refresh() {
	snap := r.canvas.snapshot()
	r.objects = r.objects[:0]

	switch snap.Mode {
	case navigator.ModeMainGrid:
		r.paintLayout(snap.Main, mainCellFill, -1)
	case navigator.ModeSubGrid:
		r.paintLayout(snap.Main, dimCellFill, snap.SelectedMain)
		r.paintLayout(snap.Sub, subCellFill, -1)
	}

	if (snap.Mode == navigator.ModeMainGrid || snap.Mode == navigator.ModeSubGrid) && !snap.Main.Ready() {
		r.paintPlaceholder()
	}

	canvas.Refresh(r.canvas)
}

// paintLayout draws one cell rectangle and a centered label per grid cell.
// Cells at index skip are omitted so the refined grid can show through.
func (r *gridRenderer) paintLayout(layout grid.Layout, fill color.Color, skip int) {
	for i, label := range layout.Labels {
		rect, ok := layout.CellRect(i)
		if !ok || i == skip {
			continue
		}

		cell := canvas.NewRectangle(fill)
		cell.StrokeColor = cellStroke
		cell.StrokeWidth = 1
		cell.Resize(fyne.NewSize(float32(rect.W), float32(rect.H)))
		cell.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
		r.objects = append(r.objects, cell)

		r.objects = append(r.objects, labelText(label, rect))
	}
}

func labelText(label string, rect geom.Rect) *canvas.Text {
	t := canvas.NewText(label, labelColor)
	t.Alignment = fyne.TextAlignCenter
	t.TextStyle = fyne.TextStyle{Bold: true}

	size := t.MinSize()
	center := rect.Center()
	t.Move(fyne.NewPos(
		float32(center.X)-size.Width/2,
		float32(center.Y)-size.Height/2,
	))
	t.Resize(size)
	return t
}

// paintPlaceholder covers the case where the window is visible before the
// first layout pass has seen a usable content size.
func (r *gridRenderer) paintPlaceholder() {
	t := canvas.NewText("waiting for layout", labelColor)
	t.Alignment = fyne.TextAlignCenter
	t.Move(fyne.NewPos(20, 20))
	t.Resize(t.MinSize())
	r.objects = append(r.objects, t)
}
