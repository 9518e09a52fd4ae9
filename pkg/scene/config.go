package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shading"
)

// ErrBadVector is returned for a vector that is not three numbers.
var ErrBadVector = errors.New("vector must have 3 components")

// Vec is a 3-vector written in YAML as a three-element sequence.
type Vec math3d.Vec3

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: %w, got %d", node.Line, ErrBadVector, len(xs))
	}
	*v = Vec{X: xs[0], Y: xs[1], Z: xs[2]}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Vec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range []float64{v.X, v.Y, v.Z} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: fmt.Sprint(x),
		})
	}
	return node, nil
}

func vecOr(v *Vec, def math3d.Vec3) math3d.Vec3 {
	if v == nil {
		return def
	}
	return math3d.Vec3(*v)
}

// Config is the on-disk description of a system.
//
//	name: twin
//	seed: 7
//	camera: {eye: [0, 5, 15], target: [0, 0, 0]}
//	light: [0, 10, 10]
//	background: [5, 5, 15]
//	bodies:
//	  - {name: sun, kind: star, scale: 3}
//	  - {name: rock, parent: sun, material: rocky, scale: 0.4, orbit_radius: 8, orbit_speed: 0.08}
type Config struct {
	Name       string       `yaml:"name,omitempty"`
	Seed       uint64       `yaml:"seed,omitempty"`
	Camera     CameraConfig `yaml:"camera,omitempty"`
	Light      *Vec         `yaml:"light,omitempty"`
	Background *Vec         `yaml:"background,omitempty"` // 0-255 per channel
	Bodies     []BodyConfig `yaml:"bodies"`
}

// CameraConfig places the initial camera.
type CameraConfig struct {
	Eye    *Vec `yaml:"eye,omitempty"`
	Target *Vec `yaml:"target,omitempty"`
}

// BodyConfig describes one body. Kind defaults to planet when a parent is
// named and to star otherwise; material defaults to star for stars and
// rocky for everything else. A planet without orbit_angle starts at a
// random angle drawn from the seed. Moons orbit at twice orbit_speed.
type BodyConfig struct {
	Name          string            `yaml:"name"`
	Kind          *Kind             `yaml:"kind,omitempty"`
	Material      *shading.Material `yaml:"material,omitempty"`
	Parent        string            `yaml:"parent,omitempty"`
	Scale         float64           `yaml:"scale"`
	OrbitRadius   float64           `yaml:"orbit_radius,omitempty"`
	OrbitSpeed    float64           `yaml:"orbit_speed,omitempty"`
	OrbitAngle    *float64          `yaml:"orbit_angle,omitempty"`
	RotationSpeed *Vec              `yaml:"rotation_speed,omitempty"`
	Rings         bool              `yaml:"rings,omitempty"`
}

// View is the camera, light and background a scene starts with.
type View struct {
	Eye        math3d.Vec3
	Target     math3d.Vec3
	Light      math3d.Vec3
	Background math3d.Vec3 // Channels in [0, 1]
}

// DefaultView looks at the origin from above and in front, lit from the
// same side, against a near-black blue.
func DefaultView() View {
	return View{
		Eye:        math3d.V3(0, 5, 15),
		Light:      math3d.V3(0, 10, 10),
		Background: math3d.V3(5, 5, 15).Scale(1.0 / 255),
	}
}

// View returns the configured view, with defaults for anything unset.
func (c *Config) View() View {
	def := DefaultView()
	v := View{
		Eye:    vecOr(c.Camera.Eye, def.Eye),
		Target: vecOr(c.Camera.Target, def.Target),
		Light:  vecOr(c.Light, def.Light),
	}
	v.Background = def.Background
	if c.Background != nil {
		v.Background = math3d.Vec3(*c.Background).Scale(1.0 / 255)
	}
	return v
}

// LoadConfig reads a YAML scene file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML scene. Unknown keys are errors.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &cfg, nil
}

// Build turns the config into a validated system.
func (c *Config) Build() (*System, error) {
	if len(c.Bodies) == 0 {
		return nil, ErrNoBodies
	}

	rng := newRand(c.Seed)
	s := NewSystem(c.Name)
	index := make(map[string]int, len(c.Bodies))
	declared := make(map[string]bool, len(c.Bodies))
	for _, bc := range c.Bodies {
		declared[bc.Name] = true
	}

	for i, bc := range c.Bodies {
		parent := NoParent
		if bc.Parent != "" {
			p, ok := index[bc.Parent]
			switch {
			case ok:
				parent = p
			case declared[bc.Parent]:
				return nil, fmt.Errorf("body %d (%s): %w: %q", i, bc.Name, ErrParentOrder, bc.Parent)
			default:
				return nil, fmt.Errorf("body %d (%s): %w: %q", i, bc.Name, ErrUnknownParent, bc.Parent)
			}
		}

		b := bc.body(parent, rng)
		if bc.Name != "" {
			if _, dup := index[bc.Name]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, bc.Name)
			}
			index[bc.Name] = s.Add(b)
		} else {
			s.Add(b)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (bc *BodyConfig) body(parent int, rng *rand.Rand) Body {
	kind := KindStar
	if parent != NoParent {
		kind = KindPlanet
	}
	if bc.Kind != nil {
		kind = *bc.Kind
	}
	material := shading.Rocky
	if kind == KindStar {
		material = shading.Star
	}
	if bc.Material != nil {
		material = *bc.Material
	}

	var b Body
	switch kind {
	case KindMoon:
		b = NewMoon(bc.Name, parent, bc.OrbitRadius, bc.OrbitSpeed, bc.Scale, material)
	case KindPlanet:
		angle := rng.Float64() * 2 * math.Pi
		if bc.OrbitAngle != nil {
			angle = *bc.OrbitAngle
		}
		b = NewPlanet(bc.Name, parent, bc.OrbitRadius, bc.OrbitSpeed, bc.Scale, material, angle)
	default:
		b = NewStar(bc.Name, bc.Scale)
		b.Kind = kind
		b.Material = material
		b.Parent = parent
		b.OrbitRadius = bc.OrbitRadius
		b.OrbitSpeed = bc.OrbitSpeed
	}
	if bc.OrbitAngle != nil {
		b.OrbitAngle = *bc.OrbitAngle
	}
	if bc.RotationSpeed != nil {
		b.RotationSpeed = math3d.Vec3(*bc.RotationSpeed)
	}
	b.Rings = bc.Rings
	return b
}

// ConfigOf describes s and view as a Config that builds an equivalent
// system. Orbit angles are written out, so the result does not depend on
// the seed.
func ConfigOf(s *System, view View) *Config {
	eye, target, light := Vec(view.Eye), Vec(view.Target), Vec(view.Light)
	bg := Vec(view.Background.Scale(255))
	cfg := &Config{
		Name:       s.Name,
		Camera:     CameraConfig{Eye: &eye, Target: &target},
		Light:      &light,
		Background: &bg,
	}
	for _, b := range s.Bodies {
		kind, material := b.Kind, b.Material
		angle := b.OrbitAngle
		speed := b.OrbitSpeed
		if b.Kind == KindMoon {
			speed /= 2
		}
		rot := Vec(b.RotationSpeed)
		bc := BodyConfig{
			Name:          b.Name,
			Kind:          &kind,
			Material:      &material,
			Scale:         b.Scale,
			OrbitRadius:   b.OrbitRadius,
			OrbitSpeed:    speed,
			OrbitAngle:    &angle,
			RotationSpeed: &rot,
			Rings:         b.Rings,
		}
		if b.Parent != NoParent {
			bc.Parent = s.Bodies[b.Parent].Name
		}
		cfg.Bodies = append(cfg.Bodies, bc)
	}
	return cfg
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return buf.Bytes(), nil
}
