package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const dt = float32(1.0 / 60.0)

func TestUpdatePhysics_ZeroForceIsLinear(t *testing.T) {
	rb := New(100, 0)
	v := mgl32.Vec3{3, 0, -4}
	rb.SetVelocity(v)

	var pos, rot mgl32.Vec3
	const ticks = 120
	for i := 0; i < ticks; i++ {
		rb.UpdatePhysics(dt, &pos, &rot)
	}

	want := v.Mul(dt * ticks)
	if !pos.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("position = %v, want %v", pos, want)
	}
	if rb.Velocity() != v {
		t.Errorf("velocity = %v, want %v", rb.Velocity(), v)
	}
}

func TestUpdatePhysics_NearZeroSnaps(t *testing.T) {
	rb := New(10, 0)
	rb.SetVelocity(mgl32.Vec3{NearZero / 2, 0, 0})
	rb.SetAngularVelocity(mgl32.Vec3{0, NearZero / 4, 0})

	pos := mgl32.Vec3{1, 2, 3}
	var rot mgl32.Vec3
	rb.UpdatePhysics(dt, &pos, &rot)

	if rb.Velocity() != (mgl32.Vec3{}) {
		t.Errorf("velocity = %v, want zero", rb.Velocity())
	}
	if rb.AngularVelocity() != (mgl32.Vec3{}) {
		t.Errorf("angular velocity = %v, want zero", rb.AngularVelocity())
	}
	if pos != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want unchanged", pos)
	}
}

func TestUpdatePhysics_VelocityClamp(t *testing.T) {
	tests := []struct {
		name  string
		force mgl32.Vec3
		lever mgl32.Vec3
	}{
		{"small", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{"large", mgl32.Vec3{1e7, 0, -1e7}, mgl32.Vec3{5, 0, 0}},
		{"huge diagonal", mgl32.Vec3{-3e9, 2e9, 1e9}, mgl32.Vec3{0, 0, -8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := New(50, 0)
			var pos, rot mgl32.Vec3
			for i := 0; i < 30; i++ {
				rb.ApplyForceAndTorque(tt.force, tt.lever)
				rb.UpdatePhysics(dt, &pos, &rot)
				if got := rb.Velocity().Len(); got > rb.VelocityLimit*(1+1e-5) {
					t.Fatalf("tick %d: |velocity| = %v, limit %v", i, got, rb.VelocityLimit)
				}
				if got := rb.AngularVelocity().Len(); got > rb.AngularVelocityLimit*(1+1e-5) {
					t.Fatalf("tick %d: |angular velocity| = %v, limit %v", i, got, rb.AngularVelocityLimit)
				}
			}
		})
	}
}

func TestUpdatePhysics_ClearsAccumulators(t *testing.T) {
	rb := New(1, 0)
	rb.ApplyForceAndTorque(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0})
	if got, want := rb.Torque(), (mgl32.Vec3{0, -1, 0}); got != want {
		t.Errorf("torque = %v, want %v", got, want)
	}
	var pos, rot mgl32.Vec3
	rb.UpdatePhysics(dt, &pos, &rot)
	if rb.Force() != (mgl32.Vec3{}) || rb.Torque() != (mgl32.Vec3{}) {
		t.Errorf("accumulators = %v / %v, want zero", rb.Force(), rb.Torque())
	}
	if rb.Velocity()[2] <= 0 {
		t.Errorf("velocity z = %v, want positive", rb.Velocity()[2])
	}
}

func TestUpdatePhysics_StaticBody(t *testing.T) {
	rb := New(0, 0)
	rb.SetVelocity(mgl32.Vec3{5, 0, 0})
	rb.ApplyForce(mgl32.Vec3{100, 0, 0})
	pos := mgl32.Vec3{1, 1, 1}
	var rot mgl32.Vec3
	rb.UpdatePhysics(dt, &pos, &rot)
	if pos != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("static body moved to %v", pos)
	}
}

func TestApplyDamping_Monotone(t *testing.T) {
	rb := New(100, 5)
	rb.SetVelocity(mgl32.Vec3{10, 0, 6})
	rb.SetAngularVelocity(mgl32.Vec3{0, 2, 0})

	var pos, rot mgl32.Vec3
	prev := rb.Velocity().Len()
	stopped := false
	for i := 0; i < 2000; i++ {
		rb.ApplyDamping(rb.Damping)
		rb.UpdatePhysics(dt, &pos, &rot)
		speed := rb.Velocity().Len()
		if stopped {
			if speed != 0 {
				t.Fatalf("tick %d: speed = %v after stopping, want 0", i, speed)
			}
			continue
		}
		if speed == 0 {
			stopped = true
			continue
		}
		if speed >= prev {
			t.Fatalf("tick %d: speed %v did not decrease from %v", i, speed, prev)
		}
		prev = speed
	}
	if !stopped {
		t.Errorf("body never came to rest, speed %v", prev)
	}
	if rb.AngularVelocity() != (mgl32.Vec3{}) {
		t.Errorf("angular velocity = %v, want zero", rb.AngularVelocity())
	}
}

func TestInheritAndReset(t *testing.T) {
	parent := New(100, 0)
	parent.SetVelocity(mgl32.Vec3{1, 2, 3})
	parent.SetAngularVelocity(mgl32.Vec3{0, 1, 0})

	child := New(1, 0)
	child.Inherit(&parent)
	if child.Velocity() != parent.Velocity() || child.AngularVelocity() != parent.AngularVelocity() {
		t.Errorf("Inherit() copied %v/%v, want %v/%v",
			child.Velocity(), child.AngularVelocity(), parent.Velocity(), parent.AngularVelocity())
	}
	child.Reset()
	if child.Velocity() != (mgl32.Vec3{}) || child.AngularVelocity() != (mgl32.Vec3{}) {
		t.Errorf("Reset() left %v/%v", child.Velocity(), child.AngularVelocity())
	}
}

func TestMoments(t *testing.T) {
	if got := MomentCube(12, 2); !mgl32.FloatEqualThreshold(got, 8, 1e-6) {
		t.Errorf("MomentCube(12, 2) = %v, want 8", got)
	}
	if got := MomentCuboid(12, 3, 4); !mgl32.FloatEqualThreshold(got, 25, 1e-6) {
		t.Errorf("MomentCuboid(12, 3, 4) = %v, want 25", got)
	}
}
