package models

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// NewUVSphere builds a unit sphere centered on the origin from stacks
// latitude bands and slices longitude segments. Normals equal positions.
// The seam column is duplicated so UVs wrap cleanly.
func NewUVSphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := NewMesh("sphere")
	m.Vertices = make([]MeshVertex, 0, (stacks+1)*(slices+1))
	m.Faces = make([]Face, 0, stacks*slices*2)

	for i := 0; i <= stacks; i++ {
		theta := float64(i) / float64(stacks) * math.Pi
		st, ct := math.Sincos(theta)
		for j := 0; j <= slices; j++ {
			phi := float64(j) / float64(slices) * 2 * math.Pi
			sp, cp := math.Sincos(phi)
			p := math3d.V3(st*cp, ct, st*sp)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: p,
				Normal:   p,
				UV:       math3d.V2(float64(j)/float64(slices), float64(i)/float64(stacks)),
			})
		}
	}

	row := slices + 1
	for i := range stacks {
		for j := range slices {
			a := i*row + j
			b := a + row
			// the pole rows would produce zero-area triangles
			if i != 0 {
				m.Faces = append(m.Faces, Face{V: [3]int{a, a + 1, b}})
			}
			if i != stacks-1 {
				m.Faces = append(m.Faces, Face{V: [3]int{a + 1, b + 1, b}})
			}
		}
	}

	m.CalculateBounds()
	return m
}

// NewDisc builds a flat disc of radius outer in the y = 0 plane, made of a
// center vertex and rings concentric circles of segments vertices each.
// All normals point up. UV is (angle fraction, radius fraction).
func NewDisc(outer float64, rings, segments int) *Mesh {
	rings = max(rings, 1)
	segments = max(segments, 3)

	m := NewMesh("disc")
	m.Vertices = make([]MeshVertex, 0, 1+rings*segments)
	m.Faces = make([]Face, 0, segments*(2*rings-1))

	up := math3d.Up()
	m.Vertices = append(m.Vertices, MeshVertex{Normal: up})
	for i := 1; i <= rings; i++ {
		frac := float64(i) / float64(rings)
		r := outer * frac
		for j := range segments {
			phi := float64(j) / float64(segments) * 2 * math.Pi
			sp, cp := math.Sincos(phi)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: math3d.V3(r*cp, 0, r*sp),
				Normal:   up,
				UV:       math3d.V2(float64(j)/float64(segments), frac),
			})
		}
	}

	// index of vertex j on ring i (1-based rings)
	at := func(i, j int) int {
		return 1 + (i-1)*segments + j%segments
	}

	for j := range segments {
		m.Faces = append(m.Faces, Face{V: [3]int{0, at(1, j+1), at(1, j)}})
	}
	for i := 1; i < rings; i++ {
		for j := range segments {
			a, b := at(i, j), at(i, j+1)
			c, d := at(i+1, j), at(i+1, j+1)
			m.Faces = append(m.Faces,
				Face{V: [3]int{a, b, c}},
				Face{V: [3]int{b, d, c}},
			)
		}
	}

	m.CalculateBounds()
	return m
}
