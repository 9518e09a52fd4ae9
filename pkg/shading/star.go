package shading

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var (
	starCore   = math3d.V3(1.0, 1.0, 0.95)
	starYellow = math3d.V3(1.0, 0.9, 0.3)
	starOrange = math3d.V3(1.0, 0.5, 0.1)
	starSpot   = math3d.V3(0.8, 0.3, 0.1)
	starGlow   = math3d.V3(0.18, 0.12, 0)
)

const (
	// starBoost overdrives the ramp; the frame buffer clamps on write.
	starBoost = 1.4
	// starLit is the share of the final color that follows the lighting.
	starLit = 0.3
)

// StarShader is an emissive, animated stellar surface: boiling granulation,
// warped flares and dark sunspots on a yellow to white ramp.
func StarShader(pos, base math3d.Vec3, time float64) math3d.Vec3 {
	t := time * 0.3

	surface := 0.5 * noise.Turbulence(math3d.V3(pos.X*2, pos.Y*2+t*0.5, pos.Z*2), 3)
	flares := 0.7 * noise.Warp(math3d.V3(pos.X*3+t, pos.Y*3, pos.Z*3), 0.6)
	pulse := (noise.SimplexNoise(math3d.V3(pos.X*1.5, pos.Y*1.5, pos.Z*1.5+t*2))*0.5 + 0.5) * 0.7
	spotMask := Smoothstep(0.17, 0.28, noise.Voronoi(pos, 3.5))

	color := Mix(starYellow, starOrange, surface)
	color = Mix(color, starCore, pulse*0.5)
	color = Mix(color, starCore, Smoothstep(0.35, 0.7, math.Abs(flares))*0.4)
	color = Mix(color, starSpot, 1-spotMask)
	color = color.Scale(starBoost).Add(starGlow.Scale(pulse))

	return color.Mul(base.Scale(starLit).Add(math3d.Splat(1 - starLit)))
}
