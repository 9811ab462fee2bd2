package collision

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGridCoversBroadPhase(t *testing.T) {
	tests := []struct {
		name string
		a, b mgl32.Vec3
	}{
		{"same cell", mgl32.Vec3{10, 0, 10}, mgl32.Vec3{20, 0, 30}},
		{"across origin", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"max range x", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{500.9, 0, 0}},
		{"max range negative", mgl32.Vec3{-250, 0, -250}, mgl32.Vec3{250.5, 0, 250.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !InRange(tt.a, tt.b) {
				t.Fatalf("InRange(%v, %v) = false", tt.a, tt.b)
			}
			g := NewGrid()
			g.Add(1, tt.b)
			if got := g.Nearby(tt.a, nil); !slices.Contains(got, 1) {
				t.Errorf("Nearby(%v) = %v, want to contain 1", tt.a, got)
			}
		})
	}
}

func TestGridReset(t *testing.T) {
	g := NewGrid()
	g.Add(4, mgl32.Vec3{})
	g.Reset()
	if got := g.Nearby(mgl32.Vec3{}, nil); len(got) != 0 {
		t.Errorf("Nearby() after Reset = %v, want empty", got)
	}
}

func TestGridResetDropsStaleCells(t *testing.T) {
	g := NewGrid()
	for i := range 100 {
		g.Reset()
		g.Add(1, mgl32.Vec3{float32(i) * CellSize, 0, 0})
	}
	if n := len(g.cells); n > 2 {
		t.Errorf("len(cells) = %d after moving through 100 cells, want at most 2", n)
	}
	g.Reset()
	g.Reset()
	if n := len(g.cells); n != 0 {
		t.Errorf("len(cells) = %d after two idle resets, want 0", n)
	}
}

func TestAABB(t *testing.T) {
	var a, b, off AABB
	a.Enable(10, 10)
	b.Enable(4, 4)
	a.Update(mgl32.Vec3{0, 0, 0})
	b.Update(mgl32.Vec3{6, 0, 0})
	if !a.Overlaps(&b) || !b.Overlaps(&a) {
		t.Errorf("Overlaps() = false for intersecting boxes")
	}
	b.Update(mgl32.Vec3{8, 0, 0})
	if a.Overlaps(&b) {
		t.Errorf("Overlaps() = true for separated boxes")
	}
	off.Update(mgl32.Vec3{})
	if a.Overlaps(&off) {
		t.Errorf("Overlaps() = true against a disabled box")
	}
}

func TestBounds(t *testing.T) {
	p := Box(2, 3)
	p.Update(mgl32.Translate3D(10, 0, -5))
	b := Bounds(p)
	if b.W != 4 || b.H != 6 {
		t.Errorf("Bounds(box) = %v x %v, want 4 x 6", b.W, b.H)
	}

	c := NewCircle(1)
	c.Update(mgl32.Vec3{12.5, 0, -5})
	cb := Bounds(c)
	if !b.Overlaps(&cb) {
		t.Errorf("circle touching the box edge should overlap its bounds")
	}
	c.Update(mgl32.Vec3{14, 0, -5})
	cb = Bounds(c)
	if b.Overlaps(&cb) {
		t.Errorf("circle clear of the box should not overlap its bounds")
	}
}
