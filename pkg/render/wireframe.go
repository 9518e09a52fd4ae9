package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Wireframe draws world-space line overlays (orbit paths, axes, mesh
// edges) on top of a rendered frame. Lines ignore the depth buffer.
type Wireframe struct {
	fb *Framebuffer
}

// NewWireframe creates a new overlay renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// DrawLine3D draws a line between two world-space points. Lines with an
// endpoint behind the eye are skipped, since there is no clipping.
func (w *Wireframe) DrawLine3D(f Frame, p1, p2 math3d.Vec3, color Color) {
	s1, ok1 := f.Project(p1)
	s2, ok2 := f.Project(p2)
	if !ok1 || !ok2 {
		return
	}
	w.fb.DrawLine(int(math.Floor(s1.X)), int(math.Floor(s1.Y)), int(math.Floor(s2.X)), int(math.Floor(s2.Y)), color)
}

// DrawOrbit draws a circle of the given radius around center in the
// horizontal plane, approximated by segments chords.
func (w *Wireframe) DrawOrbit(f Frame, center math3d.Vec3, radius float64, segments int, color Color) {
	if radius <= 0 {
		return
	}
	segments = max(segments, 8)
	prev := center.Add(math3d.V3(radius, 0, 0))
	for i := 1; i <= segments; i++ {
		s, c := math.Sincos(float64(i) / float64(segments) * 2 * math.Pi)
		next := center.Add(math3d.V3(radius*c, 0, radius*s))
		w.DrawLine3D(f, prev, next, color)
		prev = next
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(f Frame, length float64) {
	var origin math3d.Vec3
	w.DrawLine3D(f, origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(f, origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(f, origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawTriangles draws the edges of a model-space triangle list placed by
// model.
func (w *Wireframe) DrawTriangles(f Frame, model math3d.Mat4, verts []Vertex, color Color) {
	for i := 0; i+2 < len(verts); i += 3 {
		a := model.MulVec3(verts[i].Position)
		b := model.MulVec3(verts[i+1].Position)
		c := model.MulVec3(verts[i+2].Position)
		w.DrawLine3D(f, a, b, color)
		w.DrawLine3D(f, b, c, color)
		w.DrawLine3D(f, c, a, color)
	}
}
