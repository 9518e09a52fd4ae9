package models

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestUVSphere(t *testing.T) {
	tests := []struct {
		stacks, slices int
	}{
		{2, 3},
		{8, 16},
		{16, 32},
	}

	for _, tc := range tests {
		m := NewUVSphere(tc.stacks, tc.slices)

		wantVerts := (tc.stacks + 1) * (tc.slices + 1)
		if m.VertexCount() != wantVerts {
			t.Errorf("%dx%d: vertices = %d, want %d", tc.stacks, tc.slices, m.VertexCount(), wantVerts)
		}
		wantFaces := 2*tc.stacks*tc.slices - 2*tc.slices
		if m.TriangleCount() != wantFaces {
			t.Errorf("%dx%d: faces = %d, want %d", tc.stacks, tc.slices, m.TriangleCount(), wantFaces)
		}

		for i, v := range m.Vertices {
			if math.Abs(v.Position.Len()-1) > 1e-9 {
				t.Fatalf("vertex %d not on unit sphere: %v", i, v.Position)
			}
			if v.Normal != v.Position {
				t.Fatalf("vertex %d normal %v != position %v", i, v.Normal, v.Position)
			}
		}

		for i, f := range m.Faces {
			if m.faceNormal(f).Len() < 1e-12 {
				t.Fatalf("face %d is degenerate", i)
			}
		}
	}
}

func TestUVSphereClampsResolution(t *testing.T) {
	m := NewUVSphere(0, 0)
	if m.TriangleCount() == 0 {
		t.Error("expected a minimal sphere, got no faces")
	}
}

func TestDisc(t *testing.T) {
	m := NewDisc(2.5, 5, 24)

	if got, want := m.VertexCount(), 1+5*24; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 24*(2*5-1); got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}

	for i, v := range m.Vertices {
		if v.Position.Y != 0 {
			t.Fatalf("vertex %d off plane: %v", i, v.Position)
		}
		r := math.Hypot(v.Position.X, v.Position.Z)
		if r > 2.5+1e-9 {
			t.Fatalf("vertex %d outside radius: %v", i, r)
		}
		if v.Normal != math3d.Up() {
			t.Fatalf("vertex %d normal = %v", i, v.Normal)
		}
	}

	if math.Abs(m.BoundsMax.X-2.5) > 1e-9 || math.Abs(m.BoundsMin.X+2.5) > 1e-9 {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
}

func TestSmoothNormals(t *testing.T) {
	m := NewUVSphere(12, 24)
	m.CalculateSmoothNormals()

	for i, v := range m.Vertices {
		// unreferenced pole copies keep a zero normal
		if v.Normal == (math3d.Vec3{}) {
			continue
		}
		if v.Normal.Dot(v.Position) < 0.9 {
			t.Fatalf("vertex %d: smooth normal %v points away from %v", i, v.Normal, v.Position)
		}
	}
}

func TestNormalize(t *testing.T) {
	m := NewUVSphere(8, 16)
	m.Transform(math3d.Translate(math3d.V3(3, -2, 7)).Mul(math3d.Scale(math3d.Splat(4))))

	if r := m.Radius(); math.Abs(r-4) > 1e-9 {
		t.Fatalf("radius after scale = %v, want 4", r)
	}

	m.Normalize()

	if r := m.Radius(); math.Abs(r-1) > 1e-9 {
		t.Errorf("radius after Normalize = %v, want 1", r)
	}
	if c := m.Center(); c.Len() > 1e-9 {
		t.Errorf("center after Normalize = %v, want origin", c)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	m := NewMesh("empty")
	m.Normalize()
	if m.VertexCount() != 0 {
		t.Error("empty mesh grew vertices")
	}
}

func BenchmarkUVSphere(b *testing.B) {
	for b.Loop() {
		NewUVSphere(32, 64)
	}
}
