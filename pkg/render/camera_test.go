package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func vecNear(a, b math3d.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestNewOrbitCamera(t *testing.T) {
	tests := []struct {
		name        string
		eye, target math3d.Vec3
	}{
		{"default view", math3d.V3(0, 5, 15), math3d.Vec3{}},
		{"side", math3d.V3(-8, 0, 0), math3d.V3(1, 1, 1)},
		{"below", math3d.V3(2, -3, 4), math3d.Vec3{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewOrbitCamera(tc.eye, tc.target, 60)
			if !vecNear(c.Eye(), tc.eye, 1e-9) {
				t.Errorf("Eye() = %v, want %v", c.Eye(), tc.eye)
			}
			if math.Abs(c.Distance()-tc.eye.Distance(tc.target)) > 1e-9 {
				t.Errorf("Distance() = %v", c.Distance())
			}
		})
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	for _, dp := range []float64{10, -10} {
		c := NewOrbitCamera(math3d.V3(0, 0, 10), math3d.Vec3{}, 60)
		c.Orbit(0, dp)
		c.Snap()

		eye := c.Eye()
		want := math.Copysign(math.Sin(MaxPitch), dp) * 10
		if math.Abs(eye.Y-want) > 1e-9 {
			t.Errorf("Orbit(0, %v): eye.y = %v, want %v", dp, eye.Y, want)
		}
		// the view basis stays well defined
		v := c.ViewMatrix()
		for i := range 16 {
			if math.IsNaN(v[i]) {
				t.Fatalf("view matrix has NaN at %d", i)
			}
		}
	}
}

func TestOrbitCameraZoom(t *testing.T) {
	c := NewOrbitCamera(math3d.V3(0, 0, 10), math3d.Vec3{}, 60)

	c.Zoom(0.5)
	c.Snap()
	if math.Abs(c.Distance()-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", c.Distance())
	}

	c.Zoom(0.001)
	c.Snap()
	if c.Distance() != MinDistance {
		t.Errorf("distance = %v, want %v", c.Distance(), MinDistance)
	}

	c.Zoom(-2)
	c.Snap()
	if c.Distance() != MinDistance {
		t.Errorf("negative zoom changed distance to %v", c.Distance())
	}
}

func TestOrbitCameraEasing(t *testing.T) {
	c := NewOrbitCamera(math3d.V3(0, 0, 10), math3d.Vec3{}, 60)
	c.Orbit(math.Pi/2, 0)

	c.Update()
	first := c.Eye()
	if vecNear(first, math3d.V3(10, 0, 0), 1e-3) {
		t.Fatal("camera jumped to the goal in one frame")
	}

	for range 600 {
		c.Update()
	}
	if !vecNear(c.Eye(), math3d.V3(10, 0, 0), 1e-3) {
		t.Errorf("eye = %v after settling, want (10, 0, 0)", c.Eye())
	}
}

func TestOrbitCameraPan(t *testing.T) {
	c := NewOrbitCamera(math3d.V3(0, 0, 10), math3d.Vec3{}, 60)
	c.Pan(0.1, 0)
	c.Snap()

	// looking down -z, right is +x; the pan scales with distance
	if !vecNear(c.Target, math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("target = %v, want (1, 0, 0)", c.Target)
	}
	if !vecNear(c.Eye(), math3d.V3(1, 0, 10), 1e-9) {
		t.Errorf("eye = %v, want (1, 0, 10)", c.Eye())
	}

	c.LookAt(math3d.V3(0, 2, 0))
	c.Snap()
	if !vecNear(c.Eye(), math3d.V3(0, 2, 10), 1e-9) {
		t.Errorf("eye after LookAt = %v", c.Eye())
	}
}

func TestOrbitCameraFrame(t *testing.T) {
	c := NewOrbitCamera(math3d.V3(0, 5, 15), math3d.Vec3{}, 60)
	c.SetAspect(2)
	c.SetAspect(0)
	if c.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", c.Aspect)
	}

	light := Light{Position: math3d.V3(0, 10, 10)}
	f := c.Frame(200, 100, 1.5, light)
	if f.Time != 1.5 || f.Light != light {
		t.Errorf("frame carries time %v light %v", f.Time, f.Light)
	}

	// the target lands in the middle of the screen
	s, ok := f.Project(c.Target)
	if !ok {
		t.Fatal("target projected behind the camera")
	}
	if math.Abs(s.X-100) > 1e-6 || math.Abs(s.Y-50) > 1e-6 {
		t.Errorf("target at %v, want (100, 50)", s)
	}

	if _, ok := f.Project(c.Eye().Add(c.Eye().Sub(c.Target))); ok {
		t.Error("point behind the eye reported visible")
	}
}
