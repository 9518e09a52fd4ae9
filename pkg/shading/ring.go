package shading

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

// Ring band limits in model space, measured from the body's spin axis.
const (
	RingInner     = 1.5
	RingOuter     = 2.5
	RingThickness = 0.05
)

var (
	ringDark  = math3d.V3(0.3, 0.25, 0.2)
	ringLight = math3d.V3(0.8, 0.75, 0.7)
)

// RingVertex flattens a model-space vertex onto the ring plane. Vertices
// whose distance from the Y axis falls outside [RingInner, RingOuter] are
// discarded (ok is false). Survivors get a small value-noise height jitter
// and an up-facing normal.
func RingVertex(pos math3d.Vec3) (ringPos, normal math3d.Vec3, ok bool) {
	r := math.Hypot(pos.X, pos.Z)
	if r < RingInner || r > RingOuter {
		return pos, math3d.Vec3{}, false
	}
	y := noise.ValueNoise(math3d.V3(pos.X*10, 0, pos.Z*10)) * RingThickness
	return math3d.V3(pos.X, y, pos.Z), math3d.Up(), true
}

// RingFragment colors a ring fragment with concentric bands and a fine
// value-noise grain for the particle field.
func RingFragment(pos, base math3d.Vec3) math3d.Vec3 {
	r := math.Hypot(pos.X, pos.Z)
	band := math.Sin(r*20)*0.5 + 0.5
	grain := noise.FBM(pos.Scale(15), 2, 2, 0.5)

	color := ringDark.Lerp(ringLight, band)
	color = color.Scale(0.8 + grain*0.2)

	return color.Mul(base.Add(math3d.Splat(0.3)))
}
