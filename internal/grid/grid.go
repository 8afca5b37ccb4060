// Package grid computes deterministic cell geometry and labels for the
// overlay's selection grids. All functions are pure: the same dimensions and
// rectangle always produce the same layout.
//
// Main-grid labels are two characters, first character per row and second
// per column, drawn from disjoint-position home-row alphabets so no two
// cells share a label. Sub-grid labels are single characters assigned
// row-major from A-Z; cells past the alphabet are dropped.
package grid

import (
	"errors"

	"github.com/keyleap/keyleap/internal/geom"
)

// Home-row-first orderings keep the most reachable labels on the most
// screen area. The two alphabets differ so a doubled keystroke like "JJ"
// stays unambiguous across rows and columns.
const (
	mainRowChars = "ASDFGHJKLQWERTYUIOPZXCVBNM"
	mainColChars = "HJKLQWERTYASDFGUIOPZXCVBNM"
	subChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Capacity limits imposed by the label alphabets.
const (
	MaxMainRows = len(mainRowChars)
	MaxMainCols = len(mainColChars)
	SubCapacity = len(subChars)
)

// minSpan is the smallest rectangle edge that still yields cell geometry.
// Below it the layout returns labels but no rectangles, which callers treat
// as "layout not yet available".
const minSpan = 1.0

var (
	// ErrTooManyRows indicates the requested row count exceeds the row
	// label alphabet.
	ErrTooManyRows = errors.New("grid: row count exceeds label alphabet")

	// ErrTooManyColumns indicates the requested column count exceeds the
	// column label alphabet.
	ErrTooManyColumns = errors.New("grid: column count exceeds label alphabet")

	// ErrNonPositive indicates a zero or negative dimension.
	ErrNonPositive = errors.New("grid: dimensions must be positive")
)

// Layout is one computed grid pass: a label per cell and, when the source
// rectangle is large enough, a rectangle per cell in row-major order.
// Labels are always complete; Rects may be empty for degenerate rectangles.
type Layout struct {
	Cols, Rows int
	Labels     []string
	Rects      []geom.Rect
}

// Ready reports whether cell geometry is available.
func (l Layout) Ready() bool {
	return len(l.Rects) > 0
}

// Find returns the index of the cell with the given label, or -1.
func (l Layout) Find(label string) int {
	for i, candidate := range l.Labels {
		if candidate == label {
			return i
		}
	}
	return -1
}

// CellRect returns the rectangle for cell i when geometry is available.
func (l Layout) CellRect(i int) (geom.Rect, bool) {
	if i < 0 || i >= len(l.Rects) {
		return geom.Rect{}, false
	}
	return l.Rects[i], true
}

// Main computes the coarse screen-wide grid: cols x rows equal cells over
// rect with pairwise-distinct two-character labels. It fails fast when the
// configured dimensions exceed the label alphabets rather than producing
// duplicate labels.
func Main(cols, rows int, rect geom.Rect) (Layout, error) {
	if cols <= 0 || rows <= 0 {
		return Layout{}, ErrNonPositive
	}
	if rows > MaxMainRows {
		return Layout{}, ErrTooManyRows
	}
	if cols > MaxMainCols {
		return Layout{}, ErrTooManyColumns
	}

	labels := make([]string, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			labels = append(labels, string([]byte{mainRowChars[r], mainColChars[c]}))
		}
	}

	return Layout{
		Cols:   cols,
		Rows:   rows,
		Labels: labels,
		Rects:  tile(cols, rows, rect, cols*rows),
	}, nil
}

// Sub computes the refined grid inside a selected main cell. Labels are
// single characters assigned row-major; requesting more cells than the
// alphabet supports truncates the cell set. This is documented lossy
// behavior, not an error.
func Sub(cols, rows int, rect geom.Rect) Layout {
	if cols <= 0 || rows <= 0 {
		return Layout{Cols: cols, Rows: rows}
	}

	total := cols * rows
	if total > SubCapacity {
		total = SubCapacity
	}

	labels := make([]string, 0, total)
	for i := 0; i < total; i++ {
		labels = append(labels, string(subChars[i]))
	}

	return Layout{
		Cols:   cols,
		Rows:   rows,
		Labels: labels,
		Rects:  tile(cols, rows, rect, total),
	}
}

// tile splits rect into cols x rows equal cells in row-major order,
// returning at most limit rectangles. Degenerate rectangles yield nil.
func tile(cols, rows int, rect geom.Rect, limit int) []geom.Rect {
	if rect.W <= minSpan || rect.H <= minSpan {
		return nil
	}

	cellW := rect.W / float64(cols)
	cellH := rect.H / float64(rows)
	rects := make([]geom.Rect, 0, limit)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if len(rects) == limit {
				return rects
			}
			rects = append(rects, geom.Rect{
				X: rect.X + float64(c)*cellW,
				Y: rect.Y + float64(r)*cellH,
				W: cellW,
				H: cellH,
			})
		}
	}
	return rects
}
