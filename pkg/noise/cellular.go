package noise

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// The three candidate feature points probed by Voronoi: a base offset from
// the cell corner plus a hash jitter keyed by the cell shifted by shift.
var voronoiProbes = [3]struct {
	base  math3d.Vec3
	shift float64
}{
	{math3d.Vec3{}, 0},
	{math3d.V3(0.6, 0.2, 0.8), 1},
	{math3d.V3(-0.4, 0.3, -0.6), -1},
}

// Voronoi approximates the distance from p*scale to the nearest feature
// point using three jittered candidates anchored at the containing cell.
// Results are noisier than VoronoiCells and not bounded by the cell size;
// the planet materials are tuned against this variant.
func Voronoi(p math3d.Vec3, scale float64) float64 {
	q := p.Scale(scale)
	cell := q.Floor()

	best := math.Inf(1)
	for _, probe := range voronoiProbes {
		shift := probe.shift
		jitter := math3d.V3(
			Hash(math3d.V3(cell.X+shift, cell.Y, cell.Z)),
			Hash(math3d.V3(cell.Y+shift, cell.X, cell.Z)),
			Hash(math3d.V3(cell.Z+shift, cell.Y, cell.X)),
		)
		feature := cell.Add(probe.base).Add(jitter)
		best = min(best, q.Distance(feature))
	}
	return best
}

// VoronoiCells returns the exact distance from p*scale to the nearest
// feature point, scanning all 27 neighbouring cells. Each cell owns one
// feature point placed uniformly inside it.
func VoronoiCells(p math3d.Vec3, scale float64) float64 {
	q := p.Scale(scale)
	cell := q.Floor()
	frac := q.Sub(cell)

	best := math.Inf(1)
	for z := -1.0; z <= 1; z++ {
		for y := -1.0; y <= 1; y++ {
			for x := -1.0; x <= 1; x++ {
				off := math3d.V3(x, y, z)
				c := cell.Add(off)
				feature := off.Add(math3d.V3(
					hash01(c),
					hash01(c.Add(math3d.V3(17, 0, 0))),
					hash01(c.Add(math3d.V3(0, 31, 0))),
				))
				best = min(best, feature.Sub(frac).LenSq())
			}
		}
	}
	return math.Sqrt(best)
}
