package noise

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// MaxOctaves bounds every fractal sum to keep per-pixel cost flat.
const MaxOctaves = 4

func clampOctaves(octaves int) int {
	return min(max(octaves, 1), MaxOctaves)
}

func fractal(base func(math3d.Vec3) float64, p math3d.Vec3, octaves int, lacunarity, gain float64) float64 {
	octaves = clampOctaves(octaves)
	var sum float64
	amp, freq := 1.0, 1.0
	for range octaves {
		sum += amp * base(p.Scale(freq))
		freq *= lacunarity
		amp *= gain
	}
	return sum
}

// FBM sums octaves of ValueNoise at geometrically increasing frequency and
// decreasing amplitude. Octaves are clamped to [1, MaxOctaves]; a single
// octave is exactly ValueNoise(p).
func FBM(p math3d.Vec3, octaves int, lacunarity, gain float64) float64 {
	return fractal(ValueNoise, p, octaves, lacunarity, gain)
}

// FBMSimplex is FBM over SimplexNoise.
func FBMSimplex(p math3d.Vec3, octaves int, lacunarity, gain float64) float64 {
	return fractal(SimplexNoise, p, octaves, lacunarity, gain)
}

// Turbulence folds FBMSimplex around zero, producing sharp creases where the
// sum changes sign.
func Turbulence(p math3d.Vec3, octaves int) float64 {
	return math.Abs(FBMSimplex(p, octaves, 2, 0.5))
}

// Ridged sums (1 - |n|) over octaves of simplex noise. Values peak along the
// zero crossings of the base noise.
func Ridged(p math3d.Vec3, octaves int) float64 {
	return fractal(func(q math3d.Vec3) float64 {
		return 1 - math.Abs(SimplexNoise(q))
	}, p, octaves, 2, 0.5)
}

// Warp displaces p by three decorrelated fBm samples scaled by amount and
// evaluates simplex noise at the displaced point.
func Warp(p math3d.Vec3, amount float64) float64 {
	offset := math3d.V3(
		FBMSimplex(p, 3, 2, 0.5),
		FBMSimplex(p.YZX(), 3, 2, 0.5),
		FBMSimplex(p.ZXY(), 3, 2, 0.5),
	)
	return SimplexNoise(p.Add(offset.Scale(amount)))
}
