package shading

import "github.com/taigrr/orrery/pkg/math3d"

// Mix blends a towards b by t, with t clamped to [0, 1].
func Mix(a, b math3d.Vec3, t float64) math3d.Vec3 {
	return a.Lerp(b, clamp01(t))
}

// Smoothstep is the cubic Hermite ramp from 0 at edge0 to 1 at edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}

// Relight rescales lit so that its mean channel equals the mean of base plus
// boost. Colors whose mean is at or below 0.001 are returned unchanged.
func Relight(lit, base math3d.Vec3, boost float64) math3d.Vec3 {
	want := base.Mean() + boost
	have := lit.Mean()
	if have <= 0.001 {
		return lit
	}
	return lit.Scale(want / have)
}

// applyLighting multiplies the surface color by the lighting color and
// restores the lighting's average intensity.
func applyLighting(color, base math3d.Vec3) math3d.Vec3 {
	return Relight(color.Mul(base), base, 0)
}
