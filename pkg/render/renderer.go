package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shading"
)

// Object is the per-body state the pipeline needs besides geometry.
type Object struct {
	Material shading.Material
	Rings    bool
}

// Stats summarizes one Render call.
type Stats struct {
	Triangles int // Triangles handed to the rasterizer
	Culled    int // Triangles rejected before rasterization
	Fragments int // Fragments produced
	Written   int // Fragments that passed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Culled += o.Culled
	s.Fragments += o.Fragments
	s.Written += o.Written
}

// Renderer drives transform, rasterization, shading and the depth-tested
// write for whole objects. It is not safe for concurrent use.
type Renderer struct {
	fb     *Framebuffer
	raster *Rasterizer
	verts  []Vertex

	// DisableCulling skips the whole-object frustum test.
	DisableCulling bool
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer) *Renderer {
	r := &Renderer{
		fb:     fb,
		raster: NewRasterizer(fb.Width * fb.Height / 4),
	}
	r.raster.SetBounds(fb.Width, fb.Height)
	return r
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Resize adapts the renderer to a resized framebuffer.
func (r *Renderer) Resize() {
	r.raster.SetBounds(r.fb.Width, r.fb.Height)
}

// Render draws verts, a non-indexed triangle list in model space, with the
// object's material. Trailing vertices that do not form a full triangle are
// ignored. An object entirely outside the view frustum produces nothing.
func (r *Renderer) Render(obj Object, u Uniforms, verts []Vertex, light Light) Stats {
	var st Stats
	n := len(verts) / 3 * 3
	if n == 0 {
		return st
	}
	if !r.DisableCulling && !r.visible(u, verts[:n]) {
		st.Culled = n / 3
		return st
	}

	shade := func(f Fragment) math3d.Vec3 {
		return shading.Shade(obj.Material, f.SurfacePosition, f.Color, u.Time)
	}
	r.transform(verts[:n], u)
	for i := 0; i < n; i += 3 {
		a, b, c := r.verts[i], r.verts[i+1], r.verts[i+2]
		if rejectTriangle(a, b, c) {
			st.Culled++
			continue
		}
		st.Triangles++
		r.drawTriangle(a, b, c, light, &st, shade)
	}
	return st
}

// RenderRings draws the ring system described by verts. Each vertex goes
// through shading.RingVertex first; triangles with any discarded vertex
// are dropped, the rest are shaded with shading.RingFragment.
func (r *Renderer) RenderRings(u Uniforms, verts []Vertex, light Light) Stats {
	var st Stats
	n := len(verts) / 3 * 3

	r.verts = r.verts[:0]
	for i := 0; i < n; i += 3 {
		var tri [3]Vertex
		keep := true
		for k := range 3 {
			v := verts[i+k]
			pos, normal, ok := shading.RingVertex(v.Position)
			if !ok {
				keep = false
				break
			}
			v.Position, v.Normal = pos, normal
			tri[k] = TransformVertex(v, u)
		}
		if !keep {
			st.Culled++
			continue
		}
		r.verts = append(r.verts, tri[:]...)
	}

	for i := 0; i+2 < len(r.verts); i += 3 {
		a, b, c := r.verts[i], r.verts[i+1], r.verts[i+2]
		if rejectTriangle(a, b, c) {
			st.Culled++
			continue
		}
		st.Triangles++
		r.drawTriangle(a, b, c, light, &st, ringShade)
	}
	return st
}

func (r *Renderer) transform(verts []Vertex, u Uniforms) {
	r.verts = r.verts[:0]
	for _, v := range verts {
		r.verts = append(r.verts, TransformVertex(v, u))
	}
}

// drawTriangle rasterizes one triangle and writes the fragments that pass
// an early depth test, shading only those.
func (r *Renderer) drawTriangle(a, b, c Vertex, light Light, st *Stats, shade func(Fragment) math3d.Vec3) {
	frags := r.raster.Triangle(a, b, c, light)
	st.Fragments += len(frags)
	for _, f := range frags {
		x, y := f.Pixel()
		if !(f.Depth < r.fb.Depth(x, y)) {
			continue
		}
		if r.fb.Point(x, y, f.Depth, shade(f)) {
			st.Written++
		}
	}
}

// visible tests the object's model-space bounds against the view frustum:
// first the enclosing sphere, then the transformed box.
func (r *Renderer) visible(u Uniforms, verts []Vertex) bool {
	f := NewFrustumFromMatrix(u.Projection.Mul(u.View))
	box := BoundsOf(verts)
	if !f.IntersectsSphere(u.Model.MulVec3(box.Center()), box.Radius()*maxScale(u.Model)) {
		return false
	}
	return f.IntersectAABB(box.Transform(u.Model))
}

// maxScale is the largest factor by which m stretches a model-space length.
func maxScale(m math3d.Mat4) float64 {
	return max(
		m.MulVec3Dir(math3d.V3(1, 0, 0)).Len(),
		m.MulVec3Dir(math3d.V3(0, 1, 0)).Len(),
		m.MulVec3Dir(math3d.V3(0, 0, 1)).Len(),
	)
}

// rejectTriangle drops triangles the pipeline cannot place on screen: any
// vertex at or behind the eye plane (there is no near-plane clipping), or all
// three vertices beyond the far plane or in front of the near plane.
func rejectTriangle(a, b, c Vertex) bool {
	if a.ClipW <= 0 || b.ClipW <= 0 || c.ClipW <= 0 {
		return true
	}
	za, zb, zc := a.ndcZ(), b.ndcZ(), c.ndcZ()
	if za > 1 && zb > 1 && zc > 1 {
		return true
	}
	return za < -1 && zb < -1 && zc < -1
}

func ringShade(f Fragment) math3d.Vec3 {
	return shading.RingFragment(f.SurfacePosition, f.Color)
}
