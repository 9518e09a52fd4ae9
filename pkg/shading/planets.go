package shading

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

// Planet surfaces sample the simplex noise family. Fractal sums are halved
// before use so they stay inside the ramps' [-1, 1] working range.

var (
	rockDark  = math3d.V3(0.25, 0.15, 0.10)
	rockMid   = math3d.V3(0.55, 0.35, 0.22)
	rockLight = math3d.V3(0.85, 0.65, 0.45)
)

// rockFloor keeps crater floors from going fully black.
const rockFloor = 0.08

// RockyShader is a cratered, Mars-like surface.
func RockyShader(pos, base math3d.Vec3, _ float64) math3d.Vec3 {
	terrain := 0.5 * noise.FBMSimplex(pos.Scale(3), 3, 2, 0.5)
	craters := noise.Voronoi(pos, 3.5)
	craterMask := Smoothstep(0.28, 0.48, craters)

	color := Mix(rockDark, rockMid, terrain*0.5+0.5)
	color = Mix(color, rockLight, math.Abs(terrain)*0.8+0.2)
	color = Mix(color, rockDark.Scale(0.9), 1-craterMask)
	color = color.Max(math3d.Splat(rockFloor))

	return applyLighting(color, base)
}

var (
	bandLight = math3d.V3(0.95, 0.85, 0.7)
	bandMid   = math3d.V3(0.85, 0.55, 0.35)
	bandDark  = math3d.V3(0.55, 0.35, 0.25)
	stormTint = math3d.V3(1.0, 0.9, 0.85)
)

// GasGiantShader draws latitude bands broken up by turbulence, with warped
// storm cells drifting slowly over time.
func GasGiantShader(pos, base math3d.Vec3, time float64) math3d.Vec3 {
	t := time * 0.05

	band := math.Sin(pos.Y*10+t)*0.5 + 0.5
	turb := 0.5 * noise.Turbulence(math3d.V3(pos.X*2+t, pos.Y*4, pos.Z*2), 3)
	swirl := 0.7 * noise.Warp(math3d.V3(pos.X+t*0.5, pos.Y*2, pos.Z), 0.5)

	color := Mix(bandLight, bandMid, band)
	color = Mix(color, bandDark, turb*0.35)
	color = Mix(color, stormTint, Smoothstep(0.68, 0.82, swirl)*0.6)

	return applyLighting(color, base)
}

var (
	lavaCrust  = math3d.V3(0.1, 0.05, 0)
	lavaHot    = math3d.V3(1.0, 0.3, 0)
	lavaBright = math3d.V3(1.0, 0.8, 0.1)
)

// LavaShader is a molten surface. It is half emissive: the lighting color
// only dims it by up to 50% and no renormalization is applied.
func LavaShader(pos, base math3d.Vec3, time float64) math3d.Vec3 {
	t := time * 0.3

	flow := 0.7 * noise.Warp(math3d.V3(pos.X*2, pos.Y*2+t, pos.Z*2), 0.6)
	cracks := noise.Ridged(pos.Scale(5), 2)
	pulse := (math.Sin(t*2)*0.5 + 0.5) * 0.28

	color := Mix(lavaCrust, lavaHot, flow*0.5+0.5)
	color = Mix(color, lavaBright, Smoothstep(0.62, 0.72, cracks))
	color = color.Add(math3d.V3(pulse, pulse*0.25, 0))

	return color.Mul(base.Scale(0.5).Add(math3d.Splat(0.5)))
}

var (
	iceDeep    = math3d.V3(0.3, 0.6, 0.9)
	iceSurface = math3d.V3(0.8, 0.9, 1.0)
	iceSnow    = math3d.V3(1, 1, 1)
	iceAmbient = math3d.V3(0.18, 0.22, 0.28)
)

// iceBoost lifts the relit intensity so shadowed ice keeps a blue glow.
const iceBoost = 0.18

// IceShader is a frozen world with snow drifts and glinting crystals.
func IceShader(pos, base math3d.Vec3, time float64) math3d.Vec3 {
	t := time * 0.02

	crystals := noise.Voronoi(pos, 4)
	snow := 0.5 * noise.FBMSimplex(pos.Scale(8), 3, 2, 0.5)
	frost := noise.SimplexNoise(math3d.V3(pos.X*12+t, pos.Y*12, pos.Z*12))

	color := Mix(iceDeep, iceSurface, snow*0.45+0.55)
	sparkle := Smoothstep(0.78, 0.88, crystals)
	color = Mix(color, iceSnow, sparkle*(frost*0.5+0.5)*1.1)

	lit := color.Mul(base.Add(iceAmbient))
	return Relight(lit, base, iceBoost)
}

var (
	earthOcean  = math3d.V3(0.1, 0.3, 0.6)
	earthLand   = math3d.V3(0.4, 0.5, 0.3)
	earthForest = math3d.V3(0.2, 0.4, 0.2)
	cloudWhite  = math3d.V3(1, 1, 1)
)

// CloudShader is an Earth-like world: continents over ocean under a drifting
// cloud layer.
func CloudShader(pos, base math3d.Vec3, time float64) math3d.Vec3 {
	t := time * 0.1

	land := noise.FBMSimplex(pos.Scale(2), 6, 2, 0.5)
	clouds := noise.FBMSimplex(math3d.V3(pos.X*4+t, pos.Y*4, pos.Z*4), 4, 2, 0.6)

	color := earthOcean
	if land > 0 {
		vegetation := noise.SimplexNoise(pos.Scale(10))
		color = Mix(earthLand, earthForest, vegetation*0.5+0.5)
	}
	color = Mix(color, cloudWhite, Smoothstep(0.3, 0.5, clouds)*0.7)

	return applyLighting(color, base)
}
