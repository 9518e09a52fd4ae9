package render

import "github.com/taigrr/orrery/pkg/math3d"

// MeshRenderer is an indexed triangle mesh. It is satisfied by models.Mesh
// without this package importing models.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// TriangleList expands an indexed mesh into the flat, three-vertices-per-
// triangle list the pipeline consumes. Faces referencing a vertex index out
// of range are skipped.
func TriangleList(mesh MeshRenderer) []Vertex {
	n := mesh.VertexCount()
	out := make([]Vertex, 0, mesh.TriangleCount()*3)
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		if face[0] < 0 || face[0] >= n || face[1] < 0 || face[1] >= n || face[2] < 0 || face[2] >= n {
			continue
		}
		for _, idx := range face {
			out = append(out, NewVertex(mesh.GetVertex(idx)))
		}
	}
	return out
}
