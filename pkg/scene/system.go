package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shading"
)

// Validation errors.
var (
	ErrNoBodies      = errors.New("system has no bodies")
	ErrUnknownParent = errors.New("unknown parent")
	ErrParentOrder   = errors.New("parent must precede its satellites")
	ErrDuplicateName = errors.New("duplicate body name")
	ErrBadScale      = errors.New("scale must be positive")
)

// System is an ordered list of bodies. A body's parent always has a lower
// index, so a single forward pass updates parents before their satellites.
// It implements render.Scene.
type System struct {
	Name   string
	Bodies []Body
	Time   float64 // Seconds of simulated time
}

var _ render.Scene = (*System)(nil)

// NewSystem creates an empty system.
func NewSystem(name string) *System {
	return &System{Name: name}
}

// Add appends b and returns its index.
func (s *System) Add(b Body) int {
	s.Bodies = append(s.Bodies, b)
	return len(s.Bodies) - 1
}

// Find returns the index of the body called name, or NoParent.
func (s *System) Find(name string) int {
	for i := range s.Bodies {
		if s.Bodies[i].Name == name {
			return i
		}
	}
	return NoParent
}

// Validate checks parent references and body parameters.
func (s *System) Validate() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name != "" {
			if seen[b.Name] {
				return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
			}
			seen[b.Name] = true
		}
		if b.Scale <= 0 {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, ErrBadScale)
		}
		if !b.Material.Valid() {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, shading.ErrUnknownMaterial)
		}
		switch {
		case b.Parent == NoParent:
		case b.Parent < 0 || b.Parent >= len(s.Bodies):
			return fmt.Errorf("body %d (%s): %w: index %d", i, b.Name, ErrUnknownParent, b.Parent)
		case b.Parent >= i:
			return fmt.Errorf("body %d (%s): %w", i, b.Name, ErrParentOrder)
		}
	}
	return nil
}

// Update advances the system by dt seconds. Every body spins; then, in
// index order, every satellite moves along its orbit around its parent's
// already updated position, staying in the parent's horizontal plane.
func (s *System) Update(dt float64) {
	s.Time += dt
	for i := range s.Bodies {
		s.Bodies[i].spin(dt)
	}
	for i := range s.Bodies {
		b := &s.Bodies[i]
		if b.Parent == NoParent {
			continue
		}
		b.orbit(s.Bodies[b.Parent].Position, dt)
	}
}

// Len implements render.Scene.
func (s *System) Len() int {
	return len(s.Bodies)
}

// Object implements render.Scene.
func (s *System) Object(i int) (math3d.Mat4, render.Object) {
	b := &s.Bodies[i]
	return b.Model(), render.Object{Material: b.Material, Rings: b.Rings}
}

// Orbits calls fn with the center and radius of every orbit, for overlays.
func (s *System) Orbits(fn func(center math3d.Vec3, radius float64)) {
	for _, b := range s.Bodies {
		if b.Parent == NoParent || b.OrbitRadius <= 0 {
			continue
		}
		fn(s.Bodies[b.Parent].Position, b.OrbitRadius)
	}
}
