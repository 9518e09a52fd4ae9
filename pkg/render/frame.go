package render

import "github.com/taigrr/orrery/pkg/math3d"

// Frame is the explicit per-frame context shared by every object drawn in
// that frame.
type Frame struct {
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       float64
	Light      Light
}

// Uniforms builds the uniforms for one object in this frame.
func (f Frame) Uniforms(model math3d.Mat4) Uniforms {
	return Uniforms{
		Model:      model,
		View:       f.View,
		Projection: f.Projection,
		Viewport:   f.Viewport,
		Time:       f.Time,
	}
}

// Project maps a world-space point to screen space. ok is false when the
// point is at or behind the eye plane.
func (f Frame) Project(p math3d.Vec3) (screen math3d.Vec3, ok bool) {
	clip := f.Projection.MulVec4(f.View.MulVec4(math3d.V4FromV3(p, 1)))
	if clip.W <= 0 {
		return math3d.Vec3{}, false
	}
	return f.Viewport.MulVec3(clip.PerspectiveDivide()), true
}

// Scene is an ordered set of objects to draw.
type Scene interface {
	Len() int
	Object(i int) (model math3d.Mat4, obj Object)
}

// Meshes holds the shared geometry for a scene: the body mesh every object
// is drawn with, and the flat mesh used for ring systems.
type Meshes struct {
	Body []Vertex
	Ring []Vertex
}

// RenderScene draws every object of s in order, adding the ring pass for
// objects that have rings. It does not clear the framebuffer.
func (r *Renderer) RenderScene(f Frame, s Scene, m Meshes) Stats {
	var st Stats
	for i := range s.Len() {
		model, obj := s.Object(i)
		u := f.Uniforms(model)
		st.Add(r.Render(obj, u, m.Body, f.Light))
		if obj.Rings && len(m.Ring) > 0 {
			st.Add(r.RenderRings(u, m.Ring, f.Light))
		}
	}
	return st
}
