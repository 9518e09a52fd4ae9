package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/taigrr/orrery/pkg/shading"
)

// ErrUnknownPreset is returned by Preset for an unregistered name.
var ErrUnknownPreset = errors.New("unknown preset")

var presets = map[string]func(seed uint64) *System{
	"basic": Basic,
	"alien": Alien,
}

// Preset builds the named built-in system. seed fixes the planets' random
// starting angles.
func Preset(name string, seed uint64) (*System, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(seed), nil
}

// PresetNames lists the built-in systems in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Basic is a sun with five planets: a rocky inner world, a lava world, a
// clouded world with one moon, a ringed gas giant with two moons and an
// outer ice world.
func Basic(seed uint64) *System {
	rng := newRand(seed)
	angle := func() float64 { return rng.Float64() * 2 * math.Pi }

	s := NewSystem("basic")
	sun := s.Add(NewStar("sun", 3))

	s.Add(NewPlanet("cinder", sun, 8, 0.08, 0.4, shading.Rocky, angle()))
	s.Add(NewPlanet("forge", sun, 12, 0.06, 0.65, shading.Lava, angle()))

	home := s.Add(NewPlanet("home", sun, 17, 0.05, 1.0, shading.CloudPlanet, angle()))
	s.Add(NewMoon("pale", home, 0.8, 0.15, 0.12, shading.Rocky))

	giant := NewPlanet("colossus", sun, 24, 0.03, 1.5, shading.GasGiant, angle())
	giant.Rings = true
	g := s.Add(giant)
	s.Add(NewMoon("rime", g, 1.3, 0.12, 0.15, shading.IceWorld))
	s.Add(NewMoon("shard", g, 1.8, 0.09, 0.18, shading.Rocky))

	s.Add(NewPlanet("frost", sun, 30, 0.02, 0.8, shading.IceWorld, angle()))
	return s
}

// Alien is a binary: a star with a lava-surfaced dwarf companion on a
// tight orbit, a lava world, a gas giant with three moons and a distant ice
// world.
func Alien(seed uint64) *System {
	rng := newRand(seed)
	angle := func() float64 { return rng.Float64() * 2 * math.Pi }

	s := NewSystem("alien")
	primary := s.Add(NewStar("primary", 1.2))

	dwarf := NewStar("dwarf", 0.8)
	dwarf.Material = shading.Lava
	dwarf.Parent = primary
	dwarf.OrbitRadius = 3
	dwarf.OrbitSpeed = 0.1
	s.Add(dwarf)

	s.Add(NewPlanet("ember", primary, 6, 0.12, 0.5, shading.Lava, angle()))

	giant := s.Add(NewPlanet("titan", primary, 10, 0.04, 1.2, shading.GasGiant, angle()))
	s.Add(NewMoon("glint", giant, 1.8, 0.15, 0.2, shading.IceWorld))
	s.Add(NewMoon("scorch", giant, 2.3, 0.11, 0.25, shading.Lava))
	s.Add(NewMoon("haze", giant, 2.9, 0.08, 0.18, shading.CloudPlanet))

	s.Add(NewPlanet("rimeward", primary, 16, 0.02, 0.6, shading.IceWorld, angle()))
	return s
}
