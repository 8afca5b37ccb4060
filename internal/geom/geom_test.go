package geom

import "testing"

func TestRectCenter(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	c := r.Center()
	if c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = (%v, %v), want (60, 45)", c.X, c.Y)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Pt(5, 5), true},
		{"top-left corner", Pt(0, 0), true},
		{"right edge excluded", Pt(10, 5), false},
		{"bottom edge excluded", Pt(5, 10), false},
		{"outside", Pt(-1, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Translate(Pt(10, 20))
	if r.X != 11 || r.Y != 22 || r.W != 3 || r.H != 4 {
		t.Errorf("Translate = %+v, want {11 22 3 4}", r)
	}
}

func TestPointAdd(t *testing.T) {
	p := Pt(1, 2).Add(Pt(3, 4))
	if p.X != 4 || p.Y != 6 {
		t.Errorf("Add = %+v, want {4 6}", p)
	}
}
