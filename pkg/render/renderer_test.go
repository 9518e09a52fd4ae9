package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/shading"
)

const testSize = 64

func sphereVerts() []Vertex {
	return TriangleList(models.NewUVSphere(16, 32))
}

// testFrame looks at the origin from eye with a 60 degree lens.
func testFrame(eye math3d.Vec3) Frame {
	return Frame{
		View:       math3d.LookAt(eye, math3d.Vec3{}, math3d.Up()),
		Projection: math3d.Perspective(math.Pi/3, 1, 0.1, 100),
		Viewport:   math3d.Viewport(0, 0, testSize, testSize),
		Light:      Light{Position: math3d.V3(5, 5, 5)},
	}
}

// pixelUniforms maps model coordinates straight to pixels, with depth
// z/DepthScale in NDC.
func pixelUniforms() Uniforms {
	return Uniforms{
		Model:      math3d.Identity(),
		View:       math3d.Identity(),
		Projection: math3d.Identity(),
		Viewport:   math3d.Identity(),
	}
}

func flatTriangle(x0, y0, x1, y1, x2, y2, z float64) []Vertex {
	n := math3d.V3(0, 0, 1)
	return []Vertex{
		NewVertex(math3d.V3(x0, y0, z), n, math3d.Vec2{}),
		NewVertex(math3d.V3(x1, y1, z), n, math3d.Vec2{}),
		NewVertex(math3d.V3(x2, y2, z), n, math3d.Vec2{}),
	}
}

func TestRenderSphere(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	r := NewRenderer(fb)
	verts := sphereVerts()
	f := testFrame(math3d.V3(0, 0, 5))
	u := f.Uniforms(math3d.Identity())

	st := r.Render(Object{Material: shading.Rocky}, u, verts, f.Light)

	if st.Written == 0 || fb.Writes() != st.Written {
		t.Fatalf("written = %d, framebuffer writes = %d", st.Written, fb.Writes())
	}
	if st.Triangles+st.Culled != len(verts)/3 {
		t.Errorf("triangles %d + culled %d != %d", st.Triangles, st.Culled, len(verts)/3)
	}

	// A unit sphere 5 units away spans about 11 pixels of radius.
	covered := 0
	for y := range testSize {
		for x := range testSize {
			if math.IsInf(fb.Depth(x, y), 1) {
				continue
			}
			covered++
			dx, dy := float64(x)+0.5-testSize/2, float64(y)+0.5-testSize/2
			if d := math.Hypot(dx, dy); d > 14 {
				t.Fatalf("pixel (%d, %d) written %v px from center", x, y, d)
			}
		}
	}
	if math.IsInf(fb.Depth(testSize/2, testSize/2), 1) {
		t.Error("center pixel not covered")
	}
	if covered < 300 {
		t.Errorf("only %d pixels covered", covered)
	}

	again := r.Render(Object{Material: shading.Rocky}, u, verts, f.Light)
	if again.Written != 0 {
		t.Errorf("re-render without clear wrote %d pixels", again.Written)
	}
}

func TestRenderEveryMaterial(t *testing.T) {
	verts := sphereVerts()
	f := testFrame(math3d.V3(0, 0, 5))

	for _, m := range shading.Materials() {
		t.Run(m.String(), func(t *testing.T) {
			fb := NewFramebuffer(testSize, testSize)
			fb.SetBackground(math3d.V3(0, 0, 1))
			fb.Clear()
			r := NewRenderer(fb)
			st := r.Render(Object{Material: m}, f.Uniforms(math3d.Identity()), verts, f.Light)
			if st.Written == 0 {
				t.Fatal("nothing written")
			}
		})
	}
}

func TestRenderBeyondFarPlane(t *testing.T) {
	verts := sphereVerts()
	f := testFrame(math3d.V3(0, 0, 5))
	u := f.Uniforms(math3d.Translate(math3d.V3(0, 0, -200)))

	for _, disable := range []bool{false, true} {
		fb := NewFramebuffer(testSize, testSize)
		r := NewRenderer(fb)
		r.DisableCulling = disable

		st := r.Render(Object{Material: shading.GasGiant}, u, verts, f.Light)
		if st.Fragments != 0 || st.Written != 0 || fb.Writes() != 0 {
			t.Errorf("culling disabled=%v: %+v", disable, st)
		}
		if st.Culled != len(verts)/3 {
			t.Errorf("culling disabled=%v: culled %d of %d", disable, st.Culled, len(verts)/3)
		}
	}
}

func TestRenderBehindCamera(t *testing.T) {
	f := testFrame(math3d.V3(0, 0, 5))
	u := f.Uniforms(math3d.Translate(math3d.V3(0, 0, 10)))

	fb := NewFramebuffer(testSize, testSize)
	r := NewRenderer(fb)
	r.DisableCulling = true
	if st := r.Render(Object{Material: shading.Star}, u, sphereVerts(), f.Light); st.Written != 0 {
		t.Errorf("sphere behind the eye wrote %d pixels", st.Written)
	}
}

func TestRendererVisible(t *testing.T) {
	r := NewRenderer(NewFramebuffer(testSize, testSize))
	verts := sphereVerts()
	f := testFrame(math3d.V3(0, 0, 5))

	tests := []struct {
		name  string
		pos   math3d.Vec3
		scale float64
		want  bool
	}{
		{"at target", math3d.V3(0, 0, 0), 1, true},
		{"off to the side", math3d.V3(50, 0, 0), 1, false},
		{"scaled into view", math3d.V3(50, 0, 0), 40, true},
		{"behind camera", math3d.V3(0, 0, 20), 1, false},
		{"beyond far plane", math3d.V3(0, 0, -200), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := f.Uniforms(math3d.ModelMatrix(tt.pos, tt.scale, math3d.Vec3{}))
			if got := r.visible(u, verts); got != tt.want {
				t.Errorf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderOverlapOrder(t *testing.T) {
	near := flatTriangle(0, 0, 16, 0, 0, 16, 1)
	far := flatTriangle(0, 0, 24, 0, 0, 24, 2)
	light := Light{Position: math3d.V3(0, 0, 100)}
	obj := Object{Material: shading.IceWorld}

	draw := func(tris ...[]Vertex) *Framebuffer {
		fb := NewFramebuffer(32, 32)
		r := NewRenderer(fb)
		r.DisableCulling = true
		for _, tri := range tris {
			r.Render(obj, pixelUniforms(), tri, light)
		}
		return fb
	}

	nearFirst := draw(near, far)
	farFirst := draw(far, near)
	nearOnly := draw(near)

	for y := range 32 {
		for x := range 32 {
			if nearFirst.GetPixel(x, y) != farFirst.GetPixel(x, y) {
				t.Fatalf("pixel (%d, %d) depends on draw order", x, y)
			}
			if nearFirst.Depth(x, y) != farFirst.Depth(x, y) {
				t.Fatalf("depth (%d, %d) depends on draw order", x, y)
			}
			if !math.IsInf(nearOnly.Depth(x, y), 1) && nearFirst.GetPixel(x, y) != nearOnly.GetPixel(x, y) {
				t.Fatalf("pixel (%d, %d): far triangle shows through", x, y)
			}
		}
	}
}

func TestRenderZeroW(t *testing.T) {
	u := pixelUniforms()
	u.Projection = math3d.Mat4{}

	fb := NewFramebuffer(32, 32)
	r := NewRenderer(fb)
	r.DisableCulling = true

	st := r.Render(Object{Material: shading.Lava}, u, flatTriangle(0, 0, 16, 0, 0, 16, 1), Light{})
	if st.Fragments != 0 || st.Culled != 1 {
		t.Errorf("stats = %+v, want one culled triangle", st)
	}
}

func TestRenderPartialTriangle(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	r := NewRenderer(fb)
	r.DisableCulling = true

	verts := append(flatTriangle(0, 0, 16, 0, 0, 16, 1), NewVertex(math3d.V3(5, 5, 1), math3d.Vec3{}, math3d.Vec2{}))
	st := r.Render(Object{Material: shading.Rocky}, pixelUniforms(), verts, Light{})
	if st.Triangles != 1 {
		t.Errorf("triangles = %d, want 1", st.Triangles)
	}
	if st := r.Render(Object{}, pixelUniforms(), verts[:2], Light{}); st != (Stats{}) {
		t.Errorf("two vertices gave %+v", st)
	}
}

func TestRenderRings(t *testing.T) {
	fb := NewFramebuffer(testSize, testSize)
	r := NewRenderer(fb)
	f := testFrame(math3d.V3(0, 3, 5))
	ring := TriangleList(models.NewDisc(2.4, 5, 48))

	st := r.RenderRings(f.Uniforms(math3d.Identity()), ring, f.Light)
	if st.Written == 0 {
		t.Error("ring pass wrote nothing")
	}
	if st.Culled == 0 {
		t.Error("expected the inner disc to be discarded")
	}
	if st.Triangles+st.Culled != len(ring)/3 {
		t.Errorf("triangles %d + culled %d != %d", st.Triangles, st.Culled, len(ring)/3)
	}
}

type testScene []struct {
	model math3d.Mat4
	obj   Object
}

func (s testScene) Len() int { return len(s) }

func (s testScene) Object(i int) (math3d.Mat4, Object) {
	return s[i].model, s[i].obj
}

func TestRenderScene(t *testing.T) {
	f := testFrame(math3d.V3(0, 4, 12))
	meshes := Meshes{
		Body: sphereVerts(),
		Ring: TriangleList(models.NewDisc(2.5, 10, 48)),
	}
	scene := testScene{
		{math3d.ModelMatrix(math3d.Vec3{}, 2, math3d.Vec3{}), Object{Material: shading.Star}},
		{math3d.ModelMatrix(math3d.V3(4, 0, 0), 0.7, math3d.Vec3{}), Object{Material: shading.GasGiant, Rings: true}},
		{math3d.ModelMatrix(math3d.V3(0, 0, -500), 1, math3d.Vec3{}), Object{Material: shading.Rocky}},
	}

	fb := NewFramebuffer(testSize, testSize)
	st := NewRenderer(fb).RenderScene(f, scene, meshes)

	var want Stats
	ref := NewRenderer(NewFramebuffer(testSize, testSize))
	for i := range scene.Len() {
		model, obj := scene.Object(i)
		u := f.Uniforms(model)
		want.Add(ref.Render(obj, u, meshes.Body, f.Light))
		if obj.Rings {
			want.Add(ref.RenderRings(u, meshes.Ring, f.Light))
		}
	}

	if st != want {
		t.Errorf("RenderScene stats = %+v, want %+v", st, want)
	}
	if st.Written != fb.Writes() {
		t.Errorf("written %d != framebuffer writes %d", st.Written, fb.Writes())
	}
}

func BenchmarkRenderSphere(b *testing.B) {
	fb := NewFramebuffer(160, 100)
	r := NewRenderer(fb)
	verts := sphereVerts()
	f := testFrame(math3d.V3(0, 0, 4))
	f.Projection = math3d.Perspective(math.Pi/3, 1.6, 0.1, 100)
	f.Viewport = math3d.Viewport(0, 0, 160, 100)
	u := f.Uniforms(math3d.Identity())

	for b.Loop() {
		fb.Clear()
		r.Render(Object{Material: shading.GasGiant}, u, verts, f.Light)
	}
}
