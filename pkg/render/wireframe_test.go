package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
)

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestDrawOrbit(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	w := NewWireframe(fb)
	f := testFrame(math3d.V3(0, 8, 0.01))

	w.DrawOrbit(f, math3d.Vec3{}, 3, 64, ColorOrbit)

	n := countColor(fb, ColorOrbit)
	if n == 0 {
		t.Fatal("orbit not drawn")
	}
	if fb.GetPixel(testSize/2, testSize/2) == ColorOrbit {
		t.Error("orbit passes through its own center")
	}
	if fb.Writes() != 0 {
		t.Error("overlay counted as depth writes")
	}

	w.DrawOrbit(f, math3d.Vec3{}, 0, 64, ColorRed)
	if countColor(fb, ColorRed) != 0 {
		t.Error("zero radius orbit drew pixels")
	}
}

func TestDrawAxes(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	w := NewWireframe(fb)
	w.DrawAxes(testFrame(math3d.V3(4, 3, 5)), 2)

	for _, c := range []Color{ColorRed, ColorGreen, ColorBlue} {
		if countColor(fb, c) == 0 {
			t.Errorf("axis %v missing", c)
		}
	}
}

func TestDrawLine3DBehindEye(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	w := NewWireframe(fb)
	f := testFrame(math3d.V3(0, 0, 5))

	w.DrawLine3D(f, math3d.Vec3{}, math3d.V3(0, 0, 20), ColorWhite)
	if countColor(fb, ColorWhite) != 0 {
		t.Error("line crossing the eye plane was drawn")
	}
}

func TestDrawTriangles(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	w := NewWireframe(fb)
	f := testFrame(math3d.V3(0, 0, 5))

	verts := TriangleList(models.NewUVSphere(6, 8))
	w.DrawTriangles(f, math3d.Scale(math3d.Splat(1.5)), verts, ColorGreen)

	for y := range testSize {
		for x := range testSize {
			if fb.GetPixel(x, y) != ColorGreen {
				continue
			}
			dx, dy := float64(x)+0.5-testSize/2, float64(y)+0.5-testSize/2
			if math.Hypot(dx, dy) > 22 {
				t.Fatalf("edge pixel (%d, %d) far outside the sphere", x, y)
			}
		}
	}
	if countColor(fb, ColorGreen) == 0 {
		t.Error("no edges drawn")
	}
}
