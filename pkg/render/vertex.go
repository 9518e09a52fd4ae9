package render

import "github.com/taigrr/orrery/pkg/math3d"

// Vertex carries mesh attributes plus the outputs of TransformVertex.
// The Transformed* fields, WorldPosition and ClipW are only meaningful on
// values returned by TransformVertex.
type Vertex struct {
	Position  math3d.Vec3 // Model space
	Normal    math3d.Vec3 // Model space
	TexCoords math3d.Vec2 // Carried through, not sampled
	Color     math3d.Vec3 // Defaults to black

	TransformedPosition math3d.Vec3 // Screen space; z is depth
	TransformedNormal   math3d.Vec3 // World space, unit length or zero
	WorldPosition       math3d.Vec3
	ClipW               float64
}

// NewVertex creates an untransformed vertex.
func NewVertex(pos, normal math3d.Vec3, uv math3d.Vec2) Vertex {
	return Vertex{Position: pos, Normal: normal, TexCoords: uv}
}

// Uniforms is the per-object, per-frame transform state.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       float64
}

// Light is a single point light in world space.
type Light struct {
	Position math3d.Vec3
}

// TransformVertex runs v through model, view, projection and viewport.
// The returned copy keeps v's model-space position and normal. A clip-space
// w of zero skips the perspective divide.
func TransformVertex(v Vertex, u Uniforms) Vertex {
	world := u.Model.MulVec4(math3d.V4FromV3(v.Position, 1))
	clip := u.Projection.MulVec4(u.View.MulVec4(world))
	ndc := clip.PerspectiveDivide()

	v.WorldPosition = world.Vec3()
	v.TransformedPosition = u.Viewport.MulVec4(math3d.V4FromV3(ndc, 1)).Vec3()
	v.TransformedNormal = TransformNormal(u.Model, v.Normal)
	v.ClipW = clip.W
	return v
}

// TransformNormal rotates n by m and normalizes it. Translation is ignored,
// and a zero normal stays zero.
func TransformNormal(m math3d.Mat4, n math3d.Vec3) math3d.Vec3 {
	return m.MulVec3Dir(n).Normalize()
}

// ndcZ recovers normalized device depth from a transformed vertex.
func (v Vertex) ndcZ() float64 {
	return v.TransformedPosition.Z / math3d.DepthScale
}
