package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestLocalOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	m := Local(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{0, math.Pi / 2, 0}, mgl32.Vec3{2, 2, 2})
	got := Point(m, mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{10, 0, -2}
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("Point = %v, want %v", got, want)
	}
}

func TestComposeWithParent(t *testing.T) {
	parent := Transform{Position: mgl32.Vec3{0, 0, 5}, Scale: mgl32.Vec3{1, 1, 1}}
	child := Transform{Position: mgl32.Vec3{3, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}}
	world := child.Compose(parent.Compose(mgl32.Ident4()))
	got := Point(world, Origin)
	if !got.ApproxEqualThreshold(mgl32.Vec3{3, 0, 5}, eps) {
		t.Errorf("child origin = %v, want (3,0,5)", got)
	}
}

func TestClampLen(t *testing.T) {
	tests := []struct {
		name string
		in   mgl32.Vec3
		max  float32
		want mgl32.Vec3
	}{
		{"under", mgl32.Vec3{1, 0, 0}, 5, mgl32.Vec3{1, 0, 0}},
		{"over", mgl32.Vec3{3, 0, 4}, 1, mgl32.Vec3{0.6, 0, 0.8}},
		{"zero", mgl32.Vec3{}, 1, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLen(tt.in, tt.max); !got.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("ClampLen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitZero(t *testing.T) {
	if got := Unit(mgl32.Vec3{}); got != (mgl32.Vec3{}) {
		t.Errorf("Unit(0) = %v, want zero", got)
	}
}

func TestCameraLooksDown(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 300, 0.1}, mgl32.Vec3{}, 25, 1, 1, 4000)
	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if clip[3] <= 0 {
		t.Fatalf("w = %v, target behind camera", clip[3])
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	if mgl32.Abs(ndcX) > eps || mgl32.Abs(ndcY) > eps {
		t.Errorf("target projects to (%v, %v), want screen centre", ndcX, ndcY)
	}
}
