// Package scene models a star system as a flat list of bodies, each
// optionally orbiting an earlier one, and exposes it to the renderer.
package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shading"
)

// Kind classifies a body. Planets get an extra spin about y on every
// update; moons orbit faster than the planet constructor would give them.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindMoon
)

var kindNames = [...]string{
	KindStar:   "star",
	KindPlanet: "planet",
	KindMoon:   "moon",
}

// ErrUnknownKind is returned when parsing an unrecognised body kind.
var ErrUnknownKind = errors.New("unknown body kind")

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range kindNames {
		if n == key {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

// Spin rates in radians per second about y.
const (
	starSpin   = 0.02
	planetSpin = 0.03
	moonSpin   = 0.05

	// planetExtraSpin is added to planets on top of their own rate.
	planetExtraSpin = 1.0
)

// NoParent marks a body that does not orbit anything.
const NoParent = -1

// Body is one star, planet or moon.
type Body struct {
	Name     string
	Kind     Kind
	Material shading.Material
	Rings    bool

	Position      math3d.Vec3
	Scale         float64
	Rotation      math3d.Vec3 // Euler angles, radians
	RotationSpeed math3d.Vec3 // Radians per second

	// Orbit around Parent, an index into System.Bodies.
	Parent      int
	OrbitRadius float64
	OrbitSpeed  float64 // Before the 1/sqrt(radius) adjustment
	OrbitAngle  float64
}

// NewStar creates a star at the origin.
func NewStar(name string, scale float64) Body {
	return Body{
		Name:          name,
		Kind:          KindStar,
		Material:      shading.Star,
		Scale:         scale,
		RotationSpeed: math3d.V3(0, starSpin, 0),
		Parent:        NoParent,
	}
}

// NewPlanet creates a planet orbiting parent, starting at angle.
func NewPlanet(name string, parent int, radius, speed, scale float64, m shading.Material, angle float64) Body {
	b := Body{
		Name:          name,
		Kind:          KindPlanet,
		Material:      m,
		Scale:         scale,
		RotationSpeed: math3d.V3(0, planetSpin, 0),
		Parent:        parent,
		OrbitRadius:   radius,
		OrbitSpeed:    speed,
		OrbitAngle:    angle,
	}
	b.Position = math3d.V3(radius*math.Cos(angle), 0, radius*math.Sin(angle))
	return b
}

// NewMoon creates a moon orbiting parent. Moons start at angle zero and
// orbit at twice the given speed.
func NewMoon(name string, parent int, radius, speed, scale float64, m shading.Material) Body {
	b := NewPlanet(name, parent, radius, speed*2, scale, m, 0)
	b.Kind = KindMoon
	b.RotationSpeed = math3d.V3(0, moonSpin, 0)
	return b
}

// Model returns the body's model matrix.
func (b *Body) Model() math3d.Mat4 {
	return math3d.ModelMatrix(b.Position, b.Scale, b.Rotation)
}

// angularSpeed is the orbital rate after the Kepler-style falloff: farther
// bodies move more slowly.
func (b *Body) angularSpeed() float64 {
	if b.OrbitRadius <= 0 {
		return 0
	}
	return b.OrbitSpeed / math.Sqrt(b.OrbitRadius)
}

func (b *Body) spin(dt float64) {
	if b.Kind == KindPlanet {
		b.Rotation.Y += planetExtraSpin * dt
	}
	b.Rotation = b.Rotation.Add(b.RotationSpeed.Scale(dt))
}

func (b *Body) orbit(center math3d.Vec3, dt float64) {
	b.OrbitAngle += b.angularSpeed() * dt
	s, c := math.Sincos(b.OrbitAngle)
	b.Position = math3d.V3(center.X+b.OrbitRadius*c, center.Y, center.Z+b.OrbitRadius*s)
}
