package shading

import "github.com/taigrr/orrery/pkg/math3d"

// Func shades one fragment. pos is the fragment's model-space position, base
// the lighting color produced by the rasterizer.
type Func func(pos, base math3d.Vec3, time float64) math3d.Vec3

// shaders maps every Material to its surface. The array length ties it to
// the enumeration, so a new Material without an entry leaves a nil slot
// that TestShadersComplete catches.
var shaders = [numMaterials]Func{
	Rocky:       RockyShader,
	GasGiant:    GasGiantShader,
	Lava:        LavaShader,
	IceWorld:    IceShader,
	CloudPlanet: CloudShader,
	Star:        StarShader,
	Rings:       RockyShader,
}

// Shader returns the surface function for m, or nil if m is not a declared
// material.
func Shader(m Material) Func {
	if !m.Valid() {
		return nil
	}
	return shaders[m]
}

// Shade evaluates material m for one fragment. A value outside the
// enumeration has no surface and returns the lighting color unchanged.
func Shade(m Material, pos, base math3d.Vec3, time float64) math3d.Vec3 {
	if fn := Shader(m); fn != nil {
		return fn(pos, base, time)
	}
	return base
}
