package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// degenerateArea is the smallest |2*signed area| rasterized.
const degenerateArea = 1e-10

// maxExtent bounds the scanned pixel range when no bounds are set.
const maxExtent = 1 << 16

// baseGray is the neutral surface the rasterizer lights. Materials read the
// result as a lighting term, not as a surface color.
const baseGray = 0.5

// Fragment is one covered pixel of one triangle.
type Fragment struct {
	Position math3d.Vec2 // Pixel center (x+0.5, y+0.5)
	Color    math3d.Vec3 // Lighting only, channels in [0, 1]
	Depth    float64     // Smaller is closer
	// WorldPosition is the lit point in world space.
	WorldPosition math3d.Vec3
	// SurfacePosition is the interpolated model-space position. Materials
	// sample noise here so patterns stay attached to a moving body.
	SurfacePosition math3d.Vec3
}

// Pixel returns the integer pixel coordinates of the fragment.
func (f Fragment) Pixel() (x, y int) {
	return int(math.Floor(f.Position.X)), int(math.Floor(f.Position.Y))
}

// Rasterizer turns screen-space triangles into fragments. It owns a
// fragment buffer reused across calls, so the slice returned by Triangle is
// only valid until the next call.
type Rasterizer struct {
	frags  []Fragment
	width  int
	height int
}

// NewRasterizer creates a rasterizer whose fragment buffer starts with room
// for capacityHint fragments.
func NewRasterizer(capacityHint int) *Rasterizer {
	return &Rasterizer{frags: make([]Fragment, 0, max(capacityHint, 0))}
}

// SetBounds restricts scanning to [0, width) x [0, height). Pixels outside
// would be rejected by the frame buffer anyway. Zero means unbounded.
func (r *Rasterizer) SetBounds(width, height int) {
	r.width, r.height = width, height
}

// Triangle rasterizes a, b and c, which must have been through
// TransformVertex. Pixel centers on an edge count as inside. Degenerate
// triangles yield no fragments.
func (r *Rasterizer) Triangle(a, b, c Vertex, light Light) []Fragment {
	r.frags = r.frags[:0]

	p0 := a.TransformedPosition
	p1 := b.TransformedPosition
	p2 := c.TransformedPosition

	// Edge v1->v2 weighs v0, v2->v0 weighs v1 and v0->v1 weighs v2.
	A0, B0, C0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	A1, B1, C1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	A2, B2, C2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	area := edgeFunc(A0, B0, C0, p0.X, p0.Y)
	if math.Abs(area) < degenerateArea || math.IsNaN(area) || math.IsInf(area, 0) {
		return r.frags
	}
	inv := 1 / area
	// Inside means every edge value has the sign of the area, so both
	// windings rasterize.
	sign := 1.0
	if area < 0 {
		sign = -1
	}

	minX, maxX := scanRange(min3(p0.X, p1.X, p2.X), max3(p0.X, p1.X, p2.X), r.width)
	minY, maxY := scanRange(min3(p0.Y, p1.Y, p2.Y), max3(p0.Y, p1.Y, p2.Y), r.height)

	for y := minY; y <= maxY; y++ {
		px, py := float64(minX)+0.5, float64(y)+0.5
		// Evaluate at the row start, then step along x.
		e0 := edgeFunc(A0, B0, C0, px, py)
		e1 := edgeFunc(A1, B1, C1, px, py)
		e2 := edgeFunc(A2, B2, C2, px, py)

		for x := minX; x <= maxX; x++ {
			if e0*sign >= 0 && e1*sign >= 0 && e2*sign >= 0 {
				w1, w2 := e0*inv, e1*inv
				r.frags = append(r.frags, fragmentAt(a, b, c, w1, w2, 1-w1-w2, float64(x)+0.5, py, light))
			}
			e0 += A0
			e1 += A1
			e2 += A2
		}
	}
	return r.frags
}

func fragmentAt(a, b, c Vertex, w1, w2, w3, px, py float64, light Light) Fragment {
	normal := interpolate(a.TransformedNormal, b.TransformedNormal, c.TransformedNormal, w1, w2, w3).Normalize()
	world := interpolate(a.WorldPosition, b.WorldPosition, c.WorldPosition, w1, w2, w3)

	intensity := max(0, light.Position.Sub(world).Normalize().Dot(normal))

	return Fragment{
		Position:        math3d.V2(px, py),
		Color:           math3d.Splat(baseGray * intensity),
		Depth:           w1*a.TransformedPosition.Z + w2*b.TransformedPosition.Z + w3*c.TransformedPosition.Z,
		WorldPosition:   world,
		SurfacePosition: interpolate(a.Position, b.Position, c.Position, w1, w2, w3),
	}
}

func interpolate(a, b, c math3d.Vec3, w1, w2, w3 float64) math3d.Vec3 {
	return a.Scale(w1).Add(b.Scale(w2)).Add(c.Scale(w3))
}

// Barycentric returns the weights of p with respect to triangle (a, b, c)
// using the signed-area formula. The weights sum to 1; all are >= 0 exactly
// when p is inside or on an edge. A degenerate triangle yields (-1, -1, -1).
func Barycentric(a, b, c, p math3d.Vec2) (w1, w2, w3 float64) {
	area := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(area) < degenerateArea {
		return -1, -1, -1
	}
	w1 = b.Sub(p).Cross(c.Sub(p)) / area
	w2 = c.Sub(p).Cross(a.Sub(p)) / area
	return w1, w2, 1 - w1 - w2
}

// scanRange converts the float extent [lo, hi] to inclusive pixel indices
// within [0, size), or within maxExtent of the origin when size is 0. The
// clamp happens before the int conversion so huge coordinates cannot
// overflow.
func scanRange(lo, hi float64, size int) (first, last int) {
	floor, ceil := -float64(maxExtent), float64(maxExtent)
	if size > 0 {
		floor, ceil = 0, float64(size-1)
	}
	first = int(max(floor, min(math.Floor(lo), ceil+1)))
	last = int(max(floor-1, min(math.Ceil(hi), ceil)))
	return first, last
}

// edgeCoeffs returns A, B, C with edge(x, y) = A*x + B*y + C, the doubled
// signed area of (p0, p1, (x, y)).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
